package chess

import "math/bits"

// Square is a board coordinate. File and Rank are both 0-7.
type Square struct {
	File int
	Rank int
}

// NewSquare returns the square at file, rank, or false when off the board.
func NewSquare(file, rank int) (Square, bool) {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return Square{}, false
	}
	return Square{File: file, Rank: rank}, true
}

// ParseSquare converts notation such as "e4" to a square.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return Square{}, false
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, false
	}
	return Square{File: int(s[0] - 'a'), Rank: int(s[1] - '1')}, true
}

// String returns the notation of the square.
func (s Square) String() string {
	return string([]byte{byte('a' + s.File), byte('1' + s.Rank)})
}

// Offset returns the square displaced by df files and dr ranks,
// or false when the result is off the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	return NewSquare(s.File+df, s.Rank+dr)
}

// Index returns the 0-63 index of the square (rank-major).
func (s Square) Index() int {
	return s.Rank*BoardSize + s.File
}

// SquareAt is the inverse of Index.
func SquareAt(index int) Square {
	return Square{File: index % BoardSize, Rank: index / BoardSize}
}

// SquareSet is a set of squares stored as a 64-bit mask.
type SquareSet uint64

// Add returns the set with sq included.
func (s SquareSet) Add(sq Square) SquareSet {
	return s | 1<<uint(sq.Index())
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	return s&(1<<uint(sq.Index())) != 0
}

// Union returns the squares in either set.
func (s SquareSet) Union(o SquareSet) SquareSet {
	return s | o
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// IsEmpty reports whether the set has no squares.
func (s SquareSet) IsEmpty() bool {
	return s == 0
}

// Squares lists the members in ascending index order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for m := uint64(s); m != 0; m &= m - 1 {
		out = append(out, SquareAt(bits.TrailingZeros64(m)))
	}
	return out
}
