package engine

import (
	"testing"

	"github.com/impodog/termichess/internal/chess"
)

// placement describes one piece of a constructed test position.
type placement struct {
	sq     string
	kind   chess.PieceKind
	colour chess.Colour
	moved  int
}

func sq(t *testing.T, s string) chess.Square {
	t.Helper()
	square, ok := chess.ParseSquare(s)
	if !ok {
		t.Fatalf("bad square %q", s)
	}
	return square
}

// position builds an updated board holding only the given pieces.
func position(t *testing.T, turn int, pieces ...placement) *chess.Board {
	t.Helper()
	b := chess.NewBoard()
	b.Turn = turn
	for _, p := range pieces {
		b.Set(sq(t, p.sq), chess.Piece{Kind: p.kind, Colour: p.colour, Moved: p.moved})
	}
	Update(b)
	return b
}

// play translates and performs each move on b in turn.
func play(t *testing.T, e *Engine, b *chess.Board, moves ...string) *chess.Board {
	t.Helper()
	for _, text := range moves {
		mv, err := e.Translate(b, text)
		if err != nil {
			t.Fatalf("Translate(%q): %v", text, err)
		}
		b, err = e.Perform(b, mv)
		if err != nil {
			t.Fatalf("Perform(%q): %v", text, err)
		}
	}
	return b
}

// hasTarget reports whether the piece on from can reach to.
func hasTarget(t *testing.T, b *chess.Board, from, to string) bool {
	t.Helper()
	return b.ReachableFrom(sq(t, from)).Has(sq(t, to))
}
