package chess

// Move is a relocation of the piece on From to To.
type Move struct {
	From Square
	To   Square

	// The piece promoted to (Empty if not a promotion).
	Promotion PieceKind
}

// NewMove creates a move without promotion.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Promotion: Empty}
}

// NewPromotion creates a promoting move. It returns false unless kind
// is a queen, rook, bishop or knight.
func NewPromotion(from, to Square, kind PieceKind) (Move, bool) {
	if !kind.IsPromotion() {
		return Move{}, false
	}
	return Move{From: from, To: to, Promotion: kind}, true
}

// IsPromotion returns true if this move carries a promotion kind.
func (m Move) IsPromotion() bool {
	return m.Promotion != Empty
}

// String returns the long algebraic form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(rune(m.Promotion.Letter() + 'a' - 'A'))
	}
	return s
}
