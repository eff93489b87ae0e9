package engine

import "github.com/impodog/termichess/internal/chess"

var (
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	bishopDirs    = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirs      = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// Castling files on the home rank.
const (
	kingFile          = 4
	kingsideRookFile  = 7
	queensideRookFile = 0
	kingsideTarget    = 6
	queensideTarget   = 2
)

// Reachable returns the squares the piece on sq can move to, ignoring
// whether the move would leave its own king in check.
// Castling destinations depend on b.Threatened, so they are only offered
// once the threatened set for the side to move has been computed.
func Reachable(b *chess.Board, sq chess.Square) chess.SquareSet {
	piece := b.Get(sq)

	switch piece.Kind {
	case chess.King:
		return reachableKing(b, sq, piece)
	case chess.Queen:
		return slide(b, sq, piece, bishopDirs).Union(slide(b, sq, piece, rookDirs))
	case chess.Bishop:
		return slide(b, sq, piece, bishopDirs)
	case chess.Rook:
		return slide(b, sq, piece, rookDirs)
	case chess.Knight:
		return jump(b, sq, piece, knightOffsets)
	case chess.Pawn:
		return reachablePawn(b, sq, piece)
	default:
		return 0
	}
}

// jump adds every offset square not held by a friendly piece.
func jump(b *chess.Board, sq chess.Square, piece chess.Piece, offsets [][2]int) chess.SquareSet {
	var set chess.SquareSet
	for _, off := range offsets {
		target, ok := sq.Offset(off[0], off[1])
		if ok && b.Get(target).IsReplaceable(piece.Colour) {
			set = set.Add(target)
		}
	}
	return set
}

// slide walks each direction until the edge, stopping before a friend
// and after the first enemy.
func slide(b *chess.Board, sq chess.Square, piece chess.Piece, dirs [][2]int) chess.SquareSet {
	var set chess.SquareSet
	for _, dir := range dirs {
		target, ok := sq.Offset(dir[0], dir[1])
		for ok {
			occupant := b.Get(target)
			if occupant.IsFriend(piece.Colour) {
				break
			}
			set = set.Add(target)
			if occupant.IsEnemy(piece.Colour) {
				break
			}
			target, ok = target.Offset(dir[0], dir[1])
		}
	}
	return set
}

func reachableKing(b *chess.Board, sq chess.Square, piece chess.Piece) chess.SquareSet {
	set := jump(b, sq, piece, kingOffsets)

	home := chess.HomeRank(piece.Colour)
	if piece.Moved != 0 || piece.Colour != b.SideToMove() || sq.File != kingFile || sq.Rank != home {
		return set
	}
	if canCastle(b, piece.Colour, home, kingsideRookFile, kingsideTarget) {
		set = set.Add(chess.Square{File: kingsideTarget, Rank: home})
	}
	if canCastle(b, piece.Colour, home, queensideRookFile, queensideTarget) {
		set = set.Add(chess.Square{File: queensideTarget, Rank: home})
	}
	return set
}

// canCastle checks the rook, the squares between king and rook, and the
// squares the king stands on, crosses and lands on.
func canCastle(b *chess.Board, colour chess.Colour, rank, rookFile, targetFile int) bool {
	rook := b.Get(chess.Square{File: rookFile, Rank: rank})
	if rook.Kind != chess.Rook || !rook.IsFriend(colour) || rook.Moved != 0 {
		return false
	}

	step := sign(rookFile - kingFile)
	for file := kingFile + step; file != rookFile; file += step {
		if !b.Get(chess.Square{File: file, Rank: rank}).IsEmpty() {
			return false
		}
	}
	for file := kingFile; file != targetFile+step; file += step {
		if b.IsThreatened(chess.Square{File: file, Rank: rank}) {
			return false
		}
	}
	return true
}

func reachablePawn(b *chess.Board, sq chess.Square, piece chess.Piece) chess.SquareSet {
	var set chess.SquareSet
	dir := chess.ColourOffset(piece.Colour)

	ahead, ok := sq.Offset(0, dir)
	if ok && b.Get(ahead).IsEmpty() {
		set = set.Add(ahead)

		// Double step from an unmoved pawn.
		if two, ok := sq.Offset(0, 2*dir); ok && piece.Moved == 0 && b.Get(two).IsEmpty() {
			set = set.Add(two)
		}
	}

	for _, df := range []int{-1, 1} {
		if target, ok := sq.Offset(df, dir); ok && b.Get(target).IsEnemy(piece.Colour) {
			set = set.Add(target)
		}
	}

	if target, ok := b.PossibleEnPassant(); ok {
		last, _ := b.LastMove()
		if sq.Rank == last.To.Rank && abs(sq.File-last.To.File) == 1 && b.Get(last.To).IsEnemy(piece.Colour) {
			set = set.Add(target)
		}
	}

	return set
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign is -1, 0 or 1.
func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
