package play

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/command"
	"github.com/impodog/termichess/internal/display"
	"github.com/impodog/termichess/internal/engine"
	"github.com/impodog/termichess/internal/errors"
)

// Relay is the connection to the opponent. relay.Client implements it.
type Relay interface {
	Play(ctx context.Context, cmd, board string) error
	Query(ctx context.Context) (string, error)
	IsOK(ctx context.Context) (bool, error)
	LogBack(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// Remote is one side of a game played through a relay.
type Remote struct {
	eng  *engine.Engine
	view *display.Renderer
	term terminal
	conn Relay

	me   chess.Colour
	poll time.Duration
}

// NewRemote creates the session of the player with colour me.
func NewRemote(eng *engine.Engine, view *display.Renderer, conn Relay, me chess.Colour, in io.Reader, out io.Writer, poll time.Duration) *Remote {
	return &Remote{
		eng:  eng,
		view: view,
		term: newTerminal(in, out),
		conn: conn,
		me:   me,
		poll: poll,
	}
}

// Run plays a new game once the opponent has joined.
func (r *Remote) Run(ctx context.Context) (*chess.Board, error) {
	if err := r.waitForOpponent(ctx); err != nil {
		return nil, err
	}
	return r.RunFrom(ctx, r.eng.NewGame())
}

// Resume restores the last stored board of the room, retrying until
// timeout elapses, and continues the game from it.
func (r *Remote) Resume(ctx context.Context, timeout time.Duration) (*chess.Board, error) {
	deadline := time.Now().Add(timeout)
	for {
		record, err := r.conn.LogBack(ctx)
		if err == nil {
			b, err := r.eng.Deserialize(record)
			if err != nil {
				return nil, err
			}
			fmt.Fprintln(r.term.out, "Reconnected to the server!")
			return r.RunFrom(ctx, b)
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("reconnection timed out: %w", err)
		}
		if err := sleep(ctx, r.poll); err != nil {
			return nil, err
		}
	}
}

func (r *Remote) waitForOpponent(ctx context.Context) error {
	fmt.Fprintln(r.term.out, "Waiting for opponent to join...")
	for {
		ok, err := r.conn.IsOK(ctx)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(r.term.out, "Opponent joined!")
			return nil
		}
		if err := sleep(ctx, r.poll); err != nil {
			return err
		}
	}
}

// RunFrom plays from board b. The player whose command ends the game
// leaves the room open; the receiving side closes it.
func (r *Remote) RunFrom(ctx context.Context, b *chess.Board) (*chess.Board, error) {
	out := r.term.out
	// A pending draw offer hands the turn to the side not to move.
	mine := (b.SideToMove() == r.me) != b.DrawOffer
	sentLast := false
	var lastErr error

	for b.Status == chess.Playing {
		if err := r.view.Render(out, b, display.View{Bottom: r.me, Offerer: !mine}); err != nil {
			return b, err
		}
		if lastErr != nil {
			r.view.Error(out, lastErr)
			lastErr = nil
		}

		var raw string
		var err error
		if mine {
			raw, err = r.term.readLine()
		} else {
			raw, err = r.await(ctx)
			if err == nil && !command.IsChat(raw) {
				fmt.Fprintf(out, "Opponent: %s\n", raw)
			}
		}
		if err != nil {
			return b, err
		}
		raw = strings.TrimSpace(raw)
		cmd := command.Parse(raw)

		if b.DrawOffer && cmd.Kind != command.Draw {
			r.view.Notice(out, "Draw offer has been declined!")
			b = engine.DeclineDraw(b)
			if mine {
				if err := r.send(ctx, raw, b); err != nil {
					return b, err
				}
			}
			mine = !mine
			fmt.Fprintln(out)
			continue
		}

		switch cmd.Kind {
		case command.Move:
			next, err := r.move(b, cmd.Text)
			if err != nil {
				if !mine {
					return b, fmt.Errorf("opponent sent %q: %w", raw, err)
				}
				lastErr = err
				break
			}
			b = next
			if err := r.finish(ctx, mine, raw, b); err != nil {
				return b, err
			}
			sentLast = mine
			mine = !mine
		case command.Resign:
			if mine {
				fmt.Fprintln(out, "You resigned!")
			} else {
				fmt.Fprintln(out, "Opponent resigned!")
			}
			b = engine.Resign(b)
			if err := r.finish(ctx, mine, raw, b); err != nil {
				return b, err
			}
			sentLast = mine
			mine = !mine
		case command.Draw:
			b = engine.OfferDraw(b)
			if err := r.finish(ctx, mine, raw, b); err != nil {
				return b, err
			}
			sentLast = mine
			mine = !mine
		case command.Chat:
			if mine {
				if err := r.send(ctx, raw, b); err != nil {
					return b, err
				}
			} else {
				r.view.Chat(out, cmd.Text)
			}
		case command.Moves:
			if mine {
				listMoves(out, r.eng, b)
			}
		}
		fmt.Fprintln(out)
	}

	if err := r.view.Render(out, b, display.View{Bottom: r.me}); err != nil {
		return b, err
	}
	if !sentLast {
		if err := r.conn.Logout(ctx); err != nil && !errors.Is(err, errors.ErrRoomNotFound) {
			return b, err
		}
	}
	return b, nil
}

// finish sends a state-changing command of this player to the opponent.
func (r *Remote) finish(ctx context.Context, mine bool, raw string, b *chess.Board) error {
	if !mine {
		return nil
	}
	return r.send(ctx, raw, b)
}

// send plays a command, waiting while the opponent has not yet collected
// the previous one.
func (r *Remote) send(ctx context.Context, raw string, b *chess.Board) error {
	record := engine.Serialize(b)
	for {
		err := r.conn.Play(ctx, raw, record)
		if !errors.Is(err, errors.ErrNotYourTurn) {
			return err
		}
		if err := sleep(ctx, r.poll); err != nil {
			return err
		}
	}
}

// await polls the relay until the opponent's next command arrives.
func (r *Remote) await(ctx context.Context) (string, error) {
	for {
		cmd, err := r.conn.Query(ctx)
		if err == nil {
			return cmd, nil
		}
		if !errors.Is(err, errors.ErrNotYourTurn) && !errors.Is(err, errors.ErrNothingQueued) {
			return "", err
		}
		if err := sleep(ctx, r.poll); err != nil {
			return "", err
		}
	}
}

func (r *Remote) move(b *chess.Board, text string) (*chess.Board, error) {
	mv, err := r.eng.Translate(b, text)
	if err != nil {
		return nil, err
	}
	return r.eng.Perform(b, mv)
}
