package engine

import (
	"testing"

	"github.com/impodog/termichess/internal/chess"
)

func TestStartingPosition(t *testing.T) {
	b := New(nil).NewGame()

	if b.Turn != 1 {
		t.Errorf("Turn = %d, want 1", b.Turn)
	}
	if b.SideToMove() != chess.White {
		t.Errorf("SideToMove() = %v, want White", b.SideToMove())
	}
	if b.Check {
		t.Error("Check should be false in the starting position")
	}

	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			square := chess.Square{File: file, Rank: rank}
			piece := b.Get(square)
			n := b.ReachableFrom(square).Len()
			switch piece.Kind {
			case chess.Pawn, chess.Knight:
				if n != 2 {
					t.Errorf("%s %s on %s reaches %d squares, want 2", piece.Colour, piece.Kind, square, n)
				}
			case chess.Empty:
				if n != 0 {
					t.Errorf("empty %s reaches %d squares", square, n)
				}
			default:
				if n != 0 {
					t.Errorf("%s %s on %s reaches %d squares, want 0", piece.Colour, piece.Kind, square, n)
				}
			}
		}
	}
}

func TestReachableSliders(t *testing.T) {
	tests := []struct {
		name   string
		pieces []placement
		from   string
		want   int
	}{
		{"rook on empty board", []placement{{"d4", chess.Rook, chess.White, 1}}, "d4", 14},
		{"bishop on empty board", []placement{{"d4", chess.Bishop, chess.White, 1}}, "d4", 13},
		{"queen on empty board", []placement{{"d4", chess.Queen, chess.White, 1}}, "d4", 27},
		{"knight in corner", []placement{{"a1", chess.Knight, chess.White, 1}}, "a1", 2},
		{"king in centre", []placement{{"e4", chess.King, chess.White, 1}}, "e4", 8},
		{
			name: "rook blocked by friend and enemy",
			pieces: []placement{
				{"a1", chess.Rook, chess.White, 1},
				{"a3", chess.Pawn, chess.White, 1},
				{"c1", chess.Knight, chess.Black, 1},
			},
			from: "a1",
			want: 3, // a2, b1, c1
		},
		{
			name: "knight skips friends only",
			pieces: []placement{
				{"b1", chess.Knight, chess.White, 0},
				{"d2", chess.Pawn, chess.White, 0},
				{"c3", chess.Pawn, chess.Black, 3},
			},
			from: "b1",
			want: 2, // a3, c3
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := position(t, 1, tt.pieces...)
			if got := Reachable(b, sq(t, tt.from)).Len(); got != tt.want {
				t.Errorf("Reachable(%s).Len() = %d, want %d", tt.from, got, tt.want)
			}
		})
	}
}

func TestReachablePawn(t *testing.T) {
	t.Run("blocked pawn cannot double step", func(t *testing.T) {
		b := position(t, 1,
			placement{"e2", chess.Pawn, chess.White, 0},
			placement{"e3", chess.Knight, chess.Black, 5},
		)
		if got := b.ReachableFrom(sq(t, "e2")).Len(); got != 0 {
			t.Errorf("blocked pawn reaches %d squares, want 0", got)
		}
	})

	t.Run("moved pawn single steps", func(t *testing.T) {
		b := position(t, 1, placement{"e3", chess.Pawn, chess.White, 1})
		if !hasTarget(t, b, "e3", "e4") || hasTarget(t, b, "e3", "e5") {
			t.Error("moved pawn should reach only one square forward")
		}
	})

	t.Run("diagonals only onto enemies", func(t *testing.T) {
		b := position(t, 1,
			placement{"d4", chess.Pawn, chess.White, 1},
			placement{"c5", chess.Pawn, chess.Black, 2},
			placement{"e5", chess.Pawn, chess.White, 3},
		)
		if !hasTarget(t, b, "d4", "c5") {
			t.Error("pawn should capture onto c5")
		}
		if hasTarget(t, b, "d4", "e5") {
			t.Error("pawn should not capture its own piece on e5")
		}
	})

	t.Run("black pawns move down", func(t *testing.T) {
		b := position(t, 2, placement{"c7", chess.Pawn, chess.Black, 0})
		if !hasTarget(t, b, "c7", "c6") || !hasTarget(t, b, "c7", "c5") {
			t.Error("unmoved black pawn should reach c6 and c5")
		}
	})
}

func TestEnPassantWindow(t *testing.T) {
	e := New(nil)
	b := play(t, e, e.NewGame(), "e4", "a6", "e5", "d5")

	target, ok := b.PossibleEnPassant()
	if !ok || target != sq(t, "d6") {
		t.Fatalf("PossibleEnPassant() = %v, %v; want d6, true", target, ok)
	}
	if !hasTarget(t, b, "e5", "d6") {
		t.Error("pawn on e5 should reach d6 en passant")
	}

	later := play(t, e, b, "h3", "h6")
	if _, ok := later.PossibleEnPassant(); ok {
		t.Error("en passant target should disappear after another move")
	}
	if hasTarget(t, later, "e5", "d6") {
		t.Error("pawn on e5 should no longer reach d6")
	}
}

func TestUpdateThreatAndCheck(t *testing.T) {
	b := position(t, 1,
		placement{"e1", chess.King, chess.White, 1},
		placement{"e8", chess.Rook, chess.Black, 4},
		placement{"a8", chess.King, chess.Black, 2},
	)

	if !b.Check {
		t.Error("rook on the open e-file should give check")
	}
	if !b.IsThreatened(sq(t, "e4")) {
		t.Error("e4 should be threatened by the rook")
	}
	if b.IsThreatened(sq(t, "d4")) {
		t.Error("d4 should not be threatened")
	}
}
