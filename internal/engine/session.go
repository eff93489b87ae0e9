package engine

import "github.com/impodog/termichess/internal/chess"

// Resign ends the game with the side to move losing.
func Resign(b *chess.Board) *chess.Board {
	next := b.Clone()
	next.Status = chess.Winner(b.SideToMove().Opposite())
	next.DrawOffer = false
	return next
}

// OfferDraw records a draw offer. Offering while an offer is pending
// accepts it and ends the game drawn.
func OfferDraw(b *chess.Board) *chess.Board {
	next := b.Clone()
	if next.DrawOffer {
		next.Status = chess.Draw
		next.DrawOffer = false
		return next
	}
	next.DrawOffer = true
	return next
}

// DeclineDraw clears a pending draw offer.
func DeclineDraw(b *chess.Board) *chess.Board {
	next := b.Clone()
	next.DrawOffer = false
	return next
}
