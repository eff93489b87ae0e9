package engine

import (
	"errors"
	"testing"

	"github.com/impodog/termichess/internal/chess"
	terrors "github.com/impodog/termichess/internal/errors"
)

// castlingBoard is White to move with an unmoved king and both rooks.
func castlingBoard(t *testing.T, extra ...placement) *chess.Board {
	t.Helper()
	pieces := append([]placement{
		{"e1", chess.King, chess.White, 0},
		{"a1", chess.Rook, chess.White, 0},
		{"h1", chess.Rook, chess.White, 0},
	}, extra...)
	return position(t, 1, pieces...)
}

func TestCastlingRights(t *testing.T) {
	blackKingA8 := placement{"a8", chess.King, chess.Black, 2}
	blackKingH8 := placement{"h8", chess.King, chess.Black, 2}

	tests := []struct {
		name      string
		board     func(t *testing.T) *chess.Board
		kingside  bool
		queenside bool
	}{
		{
			name:      "both sides open",
			board:     func(t *testing.T) *chess.Board { return castlingBoard(t, blackKingH8) },
			kingside:  true,
			queenside: true,
		},
		{
			name: "king has moved",
			board: func(t *testing.T) *chess.Board {
				return position(t, 1,
					placement{"e1", chess.King, chess.White, 3},
					placement{"a1", chess.Rook, chess.White, 0},
					placement{"h1", chess.Rook, chess.White, 0},
					blackKingH8,
				)
			},
		},
		{
			name: "kingside rook has moved",
			board: func(t *testing.T) *chess.Board {
				return position(t, 1,
					placement{"e1", chess.King, chess.White, 0},
					placement{"a1", chess.Rook, chess.White, 0},
					placement{"h1", chess.Rook, chess.White, 5},
					blackKingH8,
				)
			},
			queenside: true,
		},
		{
			name: "piece between king and rook",
			board: func(t *testing.T) *chess.Board {
				return castlingBoard(t, blackKingH8, placement{"g1", chess.Knight, chess.White, 0})
			},
			queenside: true,
		},
		{
			name: "knight on b1 blocks queenside",
			board: func(t *testing.T) *chess.Board {
				return castlingBoard(t, blackKingH8, placement{"b1", chess.Knight, chess.White, 0})
			},
			kingside: true,
		},
		{
			name: "king in check",
			board: func(t *testing.T) *chess.Board {
				return castlingBoard(t, blackKingA8, placement{"e8", chess.Rook, chess.Black, 4})
			},
		},
		{
			name: "passing through an attacked square",
			board: func(t *testing.T) *chess.Board {
				return castlingBoard(t, blackKingA8, placement{"f8", chess.Rook, chess.Black, 4})
			},
			queenside: true,
		},
		{
			name: "landing on an attacked square",
			board: func(t *testing.T) *chess.Board {
				return castlingBoard(t, blackKingA8, placement{"c8", chess.Rook, chess.Black, 4})
			},
			kingside: true,
		},
		{
			name: "attacked b1 does not stop queenside",
			board: func(t *testing.T) *chess.Board {
				return castlingBoard(t, blackKingH8, placement{"b8", chess.Rook, chess.Black, 4})
			},
			kingside:  true,
			queenside: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.board(t)
			if got := hasTarget(t, b, "e1", "g1"); got != tt.kingside {
				t.Errorf("kingside castling = %v, want %v", got, tt.kingside)
			}
			if got := hasTarget(t, b, "e1", "c1"); got != tt.queenside {
				t.Errorf("queenside castling = %v, want %v", got, tt.queenside)
			}
		})
	}
}

func TestPerformCastling(t *testing.T) {
	e := New(nil)

	t.Run("white kingside", func(t *testing.T) {
		b := play(t, e, castlingBoard(t, placement{"h8", chess.King, chess.Black, 2}), "00")
		king, rook := b.Get(sq(t, "g1")), b.Get(sq(t, "f1"))
		if king.Kind != chess.King || rook.Kind != chess.Rook {
			t.Fatalf("g1 = %v, f1 = %v; want king and rook", king.Kind, rook.Kind)
		}
		if !b.Get(sq(t, "h1")).IsEmpty() || !b.Get(sq(t, "e1")).IsEmpty() {
			t.Error("e1 and h1 should be vacant after castling")
		}
		if king.Moved != 1 || rook.Moved != 1 {
			t.Errorf("moved stamps = %d, %d; want 1, 1", king.Moved, rook.Moved)
		}
	})

	t.Run("white queenside", func(t *testing.T) {
		b := play(t, e, castlingBoard(t, placement{"h8", chess.King, chess.Black, 2}), "000")
		if b.Get(sq(t, "c1")).Kind != chess.King || b.Get(sq(t, "d1")).Kind != chess.Rook {
			t.Error("queenside castling should put the king on c1 and the rook on d1")
		}
		if !b.Get(sq(t, "a1")).IsEmpty() {
			t.Error("a1 should be vacant")
		}
	})

	t.Run("black kingside", func(t *testing.T) {
		b := position(t, 2,
			placement{"e1", chess.King, chess.White, 1},
			placement{"e8", chess.King, chess.Black, 0},
			placement{"h8", chess.Rook, chess.Black, 0},
		)
		b = play(t, e, b, "00")
		if b.Get(sq(t, "g8")).Kind != chess.King || b.Get(sq(t, "f8")).Kind != chess.Rook {
			t.Error("black castling should put the king on g8 and the rook on f8")
		}
	})

	t.Run("from a real game", func(t *testing.T) {
		b := play(t, e, e.NewGame(), "e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "00")
		if b.Get(sq(t, "g1")).Kind != chess.King || b.Get(sq(t, "f1")).Kind != chess.Rook {
			t.Error("castling after developing should succeed")
		}
		if b.Turn != 8 {
			t.Errorf("Turn = %d, want 8", b.Turn)
		}
	})
}

func TestPerformEnPassant(t *testing.T) {
	e := New(nil)
	b := play(t, e, e.NewGame(), "e4", "a6", "e5", "d5", "ed6")

	if !b.Get(sq(t, "d5")).IsEmpty() {
		t.Error("captured pawn on d5 should be removed")
	}
	if p := b.Get(sq(t, "d6")); p.Kind != chess.Pawn || p.Colour != chess.White {
		t.Errorf("d6 = %+v, want the white pawn", p)
	}
	if !b.Get(sq(t, "e5")).IsEmpty() {
		t.Error("e5 should be vacant")
	}
}

// promotionBoard has a white pawn ready to promote on a8 or capture on b8.
func promotionBoard(t *testing.T) *chess.Board {
	t.Helper()
	return position(t, 11,
		placement{"a7", chess.Pawn, chess.White, 9},
		placement{"b8", chess.Rook, chess.Black, 4},
		placement{"e1", chess.King, chess.White, 3},
		placement{"h5", chess.King, chess.Black, 6},
	)
}

func TestPerformPromotion(t *testing.T) {
	e := New(nil)

	tests := []struct {
		text string
		sq   string
		want chess.PieceKind
	}{
		{"a8=Q", "a8", chess.Queen},
		{"a8=N", "a8", chess.Knight},
		{"a8=R", "a8", chess.Rook},
		{"axb8=B", "b8", chess.Bishop},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			b := play(t, e, promotionBoard(t), tt.text)
			p := b.Get(sq(t, tt.sq))
			if p.Kind != tt.want || p.Colour != chess.White {
				t.Errorf("%s = %+v, want white %v", tt.sq, p, tt.want)
			}
			if p.Moved != 11 {
				t.Errorf("promoted piece Moved = %d, want 11", p.Moved)
			}
			if !b.Get(sq(t, "a7")).IsEmpty() {
				t.Error("a7 should be vacant after promotion")
			}
		})
	}
}

func TestPerformErrors(t *testing.T) {
	e := New(nil)

	t.Run("leaves king in check", func(t *testing.T) {
		b := play(t, e, e.NewGame(), "e4", "d5", "Bb5")
		before := Serialize(b)

		_, err := e.Perform(b, chess.NewMove(sq(t, "a7"), sq(t, "a6")))
		if !errors.Is(err, terrors.ErrLeavesKingInCheck) {
			t.Errorf("Perform() error = %v, want ErrLeavesKingInCheck", err)
		}
		if Serialize(b) != before {
			t.Error("rejected move must not change the input board")
		}
	})

	t.Run("pinned piece", func(t *testing.T) {
		b := position(t, 1,
			placement{"e1", chess.King, chess.White, 1},
			placement{"e2", chess.Knight, chess.White, 1},
			placement{"e8", chess.Rook, chess.Black, 2},
			placement{"a8", chess.King, chess.Black, 2},
		)
		_, err := e.Perform(b, chess.NewMove(sq(t, "e2"), sq(t, "c3")))
		if !errors.Is(err, terrors.ErrLeavesKingInCheck) {
			t.Errorf("Perform() error = %v, want ErrLeavesKingInCheck", err)
		}
	})

	t.Run("empty origin", func(t *testing.T) {
		_, err := e.Perform(e.NewGame(), chess.NewMove(sq(t, "e3"), sq(t, "e4")))
		if !errors.Is(err, terrors.ErrIllegalMove) {
			t.Errorf("Perform() error = %v, want ErrIllegalMove", err)
		}
	})

	t.Run("enemy origin", func(t *testing.T) {
		_, err := e.Perform(e.NewGame(), chess.NewMove(sq(t, "e7"), sq(t, "e5")))
		if !errors.Is(err, terrors.ErrIllegalMove) {
			t.Errorf("Perform() error = %v, want ErrIllegalMove", err)
		}
	})

	t.Run("unreachable target", func(t *testing.T) {
		_, err := e.Perform(e.NewGame(), chess.NewMove(sq(t, "e2"), sq(t, "e5")))
		if !errors.Is(err, terrors.ErrIllegalMove) {
			t.Errorf("Perform() error = %v, want ErrIllegalMove", err)
		}
	})

	t.Run("missing promotion", func(t *testing.T) {
		_, err := e.Perform(promotionBoard(t), chess.NewMove(sq(t, "a7"), sq(t, "a8")))
		if !errors.Is(err, terrors.ErrPromotionRequired) {
			t.Errorf("Perform() error = %v, want ErrPromotionRequired", err)
		}
	})

	t.Run("game over", func(t *testing.T) {
		b := play(t, e, e.NewGame(), "f3", "e5", "g4", "Qh4")
		_, err := e.Perform(b, chess.NewMove(sq(t, "a2"), sq(t, "a3")))
		if !errors.Is(err, terrors.ErrGameOver) {
			t.Errorf("Perform() error = %v, want ErrGameOver", err)
		}
	})
}

func TestPerformKeepsInputUntouched(t *testing.T) {
	e := New(nil)
	b := e.NewGame()
	before := Serialize(b)

	next := play(t, e, b, "e4")

	if Serialize(b) != before {
		t.Error("Perform must not modify its input")
	}
	if next.Turn != b.Turn+1 {
		t.Errorf("Turn = %d, want %d", next.Turn, b.Turn+1)
	}
	if len(next.Moves) != 1 || len(b.Moves) != 0 {
		t.Errorf("history lengths = %d, %d; want 1, 0", len(next.Moves), len(b.Moves))
	}
}

func TestLegalMoves(t *testing.T) {
	e := New(nil)

	if got := len(e.LegalMoves(e.NewGame())); got != 20 {
		t.Errorf("starting position has %d legal moves, want 20", got)
	}

	var promotions int
	for _, mv := range e.LegalMoves(promotionBoard(t)) {
		if mv.IsPromotion() {
			promotions++
		}
	}
	if promotions != 8 {
		t.Errorf("found %d promotion moves, want 8 (a8 and b8, four kinds each)", promotions)
	}

	mated := play(t, e, e.NewGame(), "f3", "e5", "g4", "Qh4")
	if got := e.LegalMoves(mated); len(got) != 0 {
		t.Errorf("finished game has %d legal moves, want 0", len(got))
	}
}
