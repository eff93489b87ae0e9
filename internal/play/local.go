package play

import (
	"context"
	"fmt"
	"io"

	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/command"
	"github.com/impodog/termichess/internal/display"
	"github.com/impodog/termichess/internal/engine"
)

// Local is a hot-seat game with both players sharing one terminal.
type Local struct {
	eng  *engine.Engine
	view *display.Renderer
	term terminal

	// flip turns the board towards the side to move.
	flip bool
}

// NewLocal creates a hot-seat game reading commands from in.
func NewLocal(eng *engine.Engine, view *display.Renderer, in io.Reader, out io.Writer, flip bool) *Local {
	return &Local{eng: eng, view: view, term: newTerminal(in, out), flip: flip}
}

// Run plays a new game until it ends, the input closes, or ctx is done.
func (l *Local) Run(ctx context.Context) (*chess.Board, error) {
	return l.RunFrom(ctx, l.eng.NewGame())
}

// RunFrom plays from board b.
func (l *Local) RunFrom(ctx context.Context, b *chess.Board) (*chess.Board, error) {
	out := l.term.out
	var lastErr error

	for b.Status == chess.Playing {
		if err := ctx.Err(); err != nil {
			return b, err
		}

		if err := l.view.Render(out, b, l.viewFor(b)); err != nil {
			return b, err
		}
		if lastErr != nil {
			l.view.Error(out, lastErr)
			lastErr = nil
		}

		line, err := l.term.readLine()
		if err != nil {
			return b, err
		}
		cmd := command.Parse(line)

		if b.DrawOffer && cmd.Kind != command.Draw {
			l.view.Notice(out, "Draw offer declined!")
			b = engine.DeclineDraw(b)
			fmt.Fprintln(out)
			continue
		}

		switch cmd.Kind {
		case command.Move:
			next, err := l.move(b, cmd.Text)
			if err != nil {
				lastErr = err
			} else {
				b = next
			}
		case command.Resign:
			fmt.Fprintf(out, "%s resigned!\n", b.SideToMove())
			b = engine.Resign(b)
		case command.Draw:
			if !b.DrawOffer {
				fmt.Fprintf(out, "%s offered a draw!\n", b.SideToMove())
			}
			b = engine.OfferDraw(b)
		case command.Chat:
			l.view.Notice(out, "Chat is only available in remote games.")
		case command.Moves:
			listMoves(out, l.eng, b)
		}
		fmt.Fprintln(out)
	}

	if err := l.view.Render(out, b, l.viewFor(b)); err != nil {
		return b, err
	}
	return b, nil
}

func (l *Local) viewFor(b *chess.Board) display.View {
	if l.flip {
		return display.View{Bottom: b.SideToMove()}
	}
	return display.View{Bottom: chess.White}
}

func (l *Local) move(b *chess.Board, text string) (*chess.Board, error) {
	mv, err := l.eng.Translate(b, text)
	if err != nil {
		return nil, err
	}
	return l.eng.Perform(b, mv)
}
