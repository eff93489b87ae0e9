package engine

import "github.com/impodog/termichess/internal/chess"

// Update recomputes the reachable sets, the threatened set and the check
// flag of b. The side not to move is computed first so castling for the
// side to move sees the fresh threatened set.
func Update(b *chess.Board) {
	colour := b.SideToMove()

	b.Reachable = [chess.BoardSize][chess.BoardSize]chess.SquareSet{}
	b.Threatened = 0
	b.Check = false

	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			sq := chess.Square{File: file, Rank: rank}
			if !b.Get(sq).IsEnemy(colour) {
				continue
			}
			b.Reachable[file][rank] = Reachable(b, sq)
			b.Threatened = b.Threatened.Union(b.Reachable[file][rank])
		}
	}

	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			sq := chess.Square{File: file, Rank: rank}
			piece := b.Get(sq)
			if !piece.IsFriend(colour) {
				continue
			}
			b.Reachable[file][rank] = Reachable(b, sq)
			if piece.Kind == chess.King && b.IsThreatened(sq) {
				b.Check = true
			}
		}
	}
}
