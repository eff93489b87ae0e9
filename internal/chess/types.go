// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Letter returns the single lowercase letter used for the colour in records.
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// ParseColour converts a record letter back to a colour.
func ParseColour(c byte) (Colour, bool) {
	switch c {
	case 'w':
		return White, true
	case 'b':
		return Black, true
	}
	return White, false
}

// HomeRank returns the back rank index of the colour.
func HomeRank(c Colour) int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// PieceKind represents a chess piece type. Emptiness is a kind of its own.
type PieceKind int

const (
	Empty PieceKind = iota
	King
	Queen
	Bishop
	Knight
	Rook
	Pawn
)

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"Empty", "King", "Queen", "Bishop", "Knight", "Rook", "Pawn"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single uppercase letter of a piece kind, or 0 for Empty.
func (k PieceKind) Letter() byte {
	letters := []byte{0, 'K', 'Q', 'B', 'N', 'R', 'P'}
	if int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// ParsePieceKind converts an uppercase piece letter to a kind.
// 'P' is accepted for pawns.
func ParsePieceKind(c byte) (PieceKind, bool) {
	switch c {
	case 'K':
		return King, true
	case 'Q':
		return Queen, true
	case 'B':
		return Bishop, true
	case 'N':
		return Knight, true
	case 'R':
		return Rook, true
	case 'P':
		return Pawn, true
	}
	return Empty, false
}

// IsPromotion reports whether a pawn may promote to the kind.
func (k PieceKind) IsPromotion() bool {
	switch k {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

// Piece is a kind and colour together with the turn it last moved on.
type Piece struct {
	Kind   PieceKind
	Colour Colour
	// Moved is the turn number of the piece's most recent move; 0 means never.
	Moved int
}

// NewPiece creates an unmoved piece.
func NewPiece(kind PieceKind, colour Colour) Piece {
	return Piece{Kind: kind, Colour: colour}
}

// EmptyPiece returns the value stored on vacant squares.
func EmptyPiece() Piece {
	return Piece{Kind: Empty, Colour: White}
}

// IsEmpty reports whether the piece is the vacant marker.
func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// IsFriend reports whether the piece is occupied and belongs to colour.
func (p Piece) IsFriend(colour Colour) bool {
	return !p.IsEmpty() && p.Colour == colour
}

// IsEnemy reports whether the piece is occupied and belongs to the opponent of colour.
func (p Piece) IsEnemy(colour Colour) bool {
	return !p.IsEmpty() && p.Colour != colour
}

// IsReplaceable reports whether a piece of colour could land on this square.
func (p Piece) IsReplaceable(colour Colour) bool {
	return p.IsEmpty() || p.Colour != colour
}

// Status is the outcome state of a game.
type Status int

const (
	Playing Status = iota
	WhiteWins
	BlackWins
	Draw
)

// String returns a human readable status.
func (s Status) String() string {
	switch s {
	case Playing:
		return "Playing"
	case WhiteWins:
		return "White wins"
	case BlackWins:
		return "Black wins"
	case Draw:
		return "Draw"
	}
	return "Unknown"
}

// Letter returns the record letter of the status.
func (s Status) Letter() byte {
	switch s {
	case WhiteWins:
		return 'W'
	case BlackWins:
		return 'B'
	case Draw:
		return 'D'
	default:
		return 'P'
	}
}

// ParseStatus converts a record letter back to a status.
func ParseStatus(c byte) (Status, bool) {
	switch c {
	case 'P':
		return Playing, true
	case 'W':
		return WhiteWins, true
	case 'B':
		return BlackWins, true
	case 'D':
		return Draw, true
	}
	return Playing, false
}

// Winner returns the status in which colour has won.
func Winner(colour Colour) Status {
	if colour == White {
		return WhiteWins
	}
	return BlackWins
}

// BoardSize is the number of files and ranks.
const BoardSize = 8
