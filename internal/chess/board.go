package chess

// Board represents a chess position with everything needed to continue the game.
type Board struct {
	// The board squares, indexed Squares[file][rank].
	// Vacant squares hold an Empty piece.
	Squares [BoardSize][BoardSize]Piece

	// Turn counts applied moves starting at 1. White moves on odd turns.
	Turn int

	// Reachable caches the pseudo-legal destinations of every piece.
	Reachable [BoardSize][BoardSize]SquareSet

	// Threatened is the union of the reachable sets of the side not to move.
	Threatened SquareSet

	// Check is true when the side to move has its king in Threatened.
	Check bool

	// Moves is the history of applied moves, oldest first.
	Moves []Move

	Status    Status
	DrawOffer bool

	// NoSafeMove is set when the side to move has no reply that keeps its king safe.
	NoSafeMove bool
}

// NewBoard creates a board with every square vacant.
func NewBoard() *Board {
	b := &Board{Turn: 1, Status: Playing}
	for file := 0; file < BoardSize; file++ {
		for rank := 0; rank < BoardSize; rank++ {
			b.Squares[file][rank] = EmptyPiece()
		}
	}
	return b
}

// SetupInitialPosition places the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		for rank := 2; rank < BoardSize-2; rank++ {
			b.Squares[file][rank] = EmptyPiece()
		}
		b.Squares[file][0] = NewPiece(backRank[file], White)
		b.Squares[file][1] = NewPiece(Pawn, White)
		b.Squares[file][6] = NewPiece(Pawn, Black)
		b.Squares[file][7] = NewPiece(backRank[file], Black)
	}
	b.Turn = 1
	b.Moves = nil
	b.Status = Playing
	b.DrawOffer = false
	b.NoSafeMove = false
}

// Get returns the piece on sq.
func (b *Board) Get(sq Square) Piece {
	return b.Squares[sq.File][sq.Rank]
}

// Set places a piece on sq.
func (b *Board) Set(sq Square, piece Piece) {
	b.Squares[sq.File][sq.Rank] = piece
}

// Force moves the piece on from to to without any legality checks,
// stamping it with the current turn. It returns false if from is vacant.
func (b *Board) Force(from, to Square) bool {
	piece := b.Get(from)
	if piece.IsEmpty() {
		return false
	}
	piece.Moved = b.Turn
	b.Set(to, piece)
	b.Set(from, EmptyPiece())
	return true
}

// SideToMove returns the colour whose turn it is.
func (b *Board) SideToMove() Colour {
	if b.Turn%2 == 0 {
		return Black
	}
	return White
}

// ReachableFrom returns the cached destinations of the piece on sq.
func (b *Board) ReachableFrom(sq Square) SquareSet {
	return b.Reachable[sq.File][sq.Rank]
}

// IsThreatened reports whether the side not to move attacks sq.
func (b *Board) IsThreatened(sq Square) bool {
	return b.Threatened.Has(sq)
}

// LastMove returns the most recent move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.Moves) == 0 {
		return Move{}, false
	}
	return b.Moves[len(b.Moves)-1], true
}

// PossibleEnPassant returns the square a pawn could capture onto en passant.
// It is derived from the last move only: a pawn that has just advanced two
// ranks from its starting rank leaves the square behind it capturable.
func (b *Board) PossibleEnPassant() (Square, bool) {
	last, ok := b.LastMove()
	if !ok || b.Get(last.To).Kind != Pawn {
		return Square{}, false
	}
	switch {
	case last.From.Rank == 1 && last.To.Rank == 3:
		return Square{File: last.To.File, Rank: 2}, true
	case last.From.Rank == 6 && last.To.Rank == 4:
		return Square{File: last.To.File, Rank: 5}, true
	}
	return Square{}, false
}

// FindShortcut resolves a single file letter or rank digit to the unique
// piece of kind belonging to the side to move on that line.
func (b *Board) FindShortcut(short byte, kind PieceKind) (Square, bool) {
	colour := b.SideToMove()
	var candidate Square
	found := false
	for i := 0; i < BoardSize; i++ {
		var sq Square
		switch {
		case short >= 'a' && short <= 'h':
			sq = Square{File: int(short - 'a'), Rank: i}
		case short >= '1' && short <= '8':
			sq = Square{File: i, Rank: int(short - '1')}
		default:
			return Square{}, false
		}
		piece := b.Get(sq)
		if !piece.IsFriend(colour) || piece.Kind != kind {
			continue
		}
		if found {
			return Square{}, false
		}
		candidate, found = sq, true
	}
	return candidate, found
}

// KingSquare finds the king of the given colour.
func (b *Board) KingSquare(colour Colour) (Square, bool) {
	for file := 0; file < BoardSize; file++ {
		for rank := 0; rank < BoardSize; rank++ {
			p := b.Squares[file][rank]
			if p.Kind == King && p.Colour == colour {
				return Square{File: file, Rank: rank}, true
			}
		}
	}
	return Square{}, false
}

// IsOver reports whether the game has finished.
func (b *Board) IsOver() bool {
	return b.Status != Playing
}

// Clone creates a deep copy of the board. The move history is copied so
// appending to the clone never aliases the original.
func (b *Board) Clone() *Board {
	newBoard := &Board{}
	*newBoard = *b
	if b.Moves != nil {
		newBoard.Moves = make([]Move, len(b.Moves), len(b.Moves)+1)
		copy(newBoard.Moves, b.Moves)
	}
	return newBoard
}
