// Package display renders boards and game messages for terminals.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/config"
)

// View selects how a board is presented to one player.
type View struct {
	// Bottom is the colour drawn nearest to the viewer.
	Bottom chess.Colour

	// Offerer is true when the viewer made the pending draw offer.
	Offerer bool
}

// Renderer draws boards according to a DisplayConfig.
type Renderer struct {
	cfg config.DisplayConfig

	light  *color.Color
	dark   *color.Color
	recent *color.Color

	alert  *color.Color
	notice *color.Color
	win    *color.Color
	bold   *color.Color
}

// NewRenderer creates a Renderer. Colours are forced on or off by
// cfg.Color regardless of whether the output is a terminal.
func NewRenderer(cfg config.DisplayConfig) *Renderer {
	if cfg.Spacing < config.MinSpacing {
		cfg.Spacing = config.MinSpacing
	}
	r := &Renderer{
		cfg:    cfg,
		light:  color.New(color.FgBlack, color.Bold, color.BgMagenta),
		dark:   color.New(color.FgBlack, color.Bold, color.BgWhite),
		recent: color.New(color.FgBlack, color.Bold, color.BgRed),
		alert:  color.New(color.FgRed, color.Bold),
		notice: color.New(color.FgYellow),
		win:    color.New(color.FgGreen, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{r.light, r.dark, r.recent, r.alert, r.notice, r.win, r.bold} {
		if cfg.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// cellWidth returns the number of columns one square occupies.
func (r *Renderer) cellWidth() int {
	if r.cfg.Unicode {
		return r.cfg.Spacing
	}
	return 3
}

func (r *Renderer) cell(p chess.Piece) string {
	if r.cfg.Unicode {
		return glyphCell(p, r.cfg.Spacing)
	}
	return letterCell(p)
}

// Render writes the board followed by its status lines.
func (r *Renderer) Render(w io.Writer, b *chess.Board, v View) error {
	var sb strings.Builder
	r.layout(&sb, b, v.Bottom)

	if b.Status == chess.Playing {
		if b.DrawOffer {
			if v.Offerer {
				sb.WriteString(r.notice.Sprint("You offered opponent a draw.") + "\n")
			} else {
				sb.WriteString(r.notice.Sprint("Opponent offered you a draw.") + "\n")
			}
		} else if b.Check {
			sb.WriteString(r.alert.Sprint("CHECK!") + "\n")
		}
	} else {
		if b.NoSafeMove {
			if b.Check {
				sb.WriteString(r.alert.Sprint("CHECKMATE!") + "\n")
			} else {
				sb.WriteString(r.notice.Sprint("STALEMATE!") + "\n")
			}
		}
		sb.WriteString("Game has ended! Result: " + r.Result(b.Status) + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Result describes a finished game's status.
func (r *Renderer) Result(s chess.Status) string {
	switch s {
	case chess.WhiteWins:
		return "White " + r.win.Sprint("Wins")
	case chess.BlackWins:
		return "Black " + r.win.Sprint("Wins")
	case chess.Draw:
		return r.notice.Sprint("Draw")
	}
	return "Playing"
}

func (r *Renderer) layout(sb *strings.Builder, b *chess.Board, bottom chess.Colour) {
	last, hasLast := b.LastMove()
	width := r.cellWidth()

	for row := 0; row < chess.BoardSize; row++ {
		rank := chess.BoardSize - 1 - row
		if bottom == chess.Black {
			rank = row
		}
		fmt.Fprintf(sb, "%d ", rank+1)

		for col := 0; col < chess.BoardSize; col++ {
			file := col
			if bottom == chess.Black {
				file = chess.BoardSize - 1 - col
			}
			sq := chess.Square{File: file, Rank: rank}
			text := r.cell(b.Get(sq))
			switch {
			case hasLast && (last.From == sq || last.To == sq):
				sb.WriteString(r.recent.Sprint(text))
			case (file+rank)%2 == 1:
				sb.WriteString(r.dark.Sprint(text))
			default:
				sb.WriteString(r.light.Sprint(text))
			}
		}

		switch row {
		case 0:
			sb.WriteString(r.sideLabel(b, bottom.Opposite()))
		case chess.BoardSize - 1:
			sb.WriteString(r.sideLabel(b, bottom))
		default:
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	for col := 0; col < chess.BoardSize; col++ {
		file := col
		if bottom == chess.Black {
			file = chess.BoardSize - 1 - col
		}
		sb.WriteString(pad(string(rune('a'+file)), width))
	}
	sb.WriteByte('\n')
}

// sideLabel marks the edge of colour, pointing at it when it is to move.
func (r *Renderer) sideLabel(b *chess.Board, colour chess.Colour) string {
	if b.Status == chess.Playing && b.SideToMove() == colour {
		return fmt.Sprintf(" > %s's Turn %d", colour, (b.Turn+1)/2)
	}
	return " - " + colour.String()
}

// Error writes a recoverable error line.
func (r *Renderer) Error(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %v\n", r.alert.Sprint("Error"), err)
}

// Chat writes a chat message from the opponent.
func (r *Renderer) Chat(w io.Writer, text string) {
	fmt.Fprintf(w, "%s: %s\n", r.bold.Sprint("Chat"), text)
}

// Notice writes an informational line such as a declined draw.
func (r *Renderer) Notice(w io.Writer, text string) {
	fmt.Fprintln(w, r.notice.Sprint(text))
}

// Welcome announces the colour assigned to a remote player.
func (r *Renderer) Welcome(w io.Writer, room string, colour chess.Colour) {
	fmt.Fprintf(w, "%s You are %s in room %s!\n", r.win.Sprint("Welcome!"), colour, r.bold.Sprint(room))
}
