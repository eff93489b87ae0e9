package engine

import (
	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/errors"
)

// Perform applies mv to a copy of b and returns the new position. The
// input board is never modified. A move that leaves the mover's own king
// threatened is rejected with errors.ErrLeavesKingInCheck.
func (e *Engine) Perform(b *chess.Board, mv chess.Move) (*chess.Board, error) {
	next, err := apply(b, mv)
	if err != nil {
		return nil, err
	}

	next.Moves = append(next.Moves, mv)
	next.Turn++
	next.DrawOffer = false
	Update(next)
	e.UpdateMate(next)
	return next, nil
}

// apply validates mv against b, relocates the pieces on a clone and checks
// the mover's king. The clone still has the mover to play.
func apply(b *chess.Board, mv chess.Move) (*chess.Board, error) {
	if b.IsOver() {
		return nil, errors.ErrGameOver
	}

	colour := b.SideToMove()
	piece := b.Get(mv.From)
	if !piece.IsFriend(colour) {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "no %s piece on %s", colour, mv.From)
	}
	if !b.ReachableFrom(mv.From).Has(mv.To) {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s cannot reach %s", mv.From, mv.To)
	}

	promoting := piece.Kind == chess.Pawn && (mv.To.Rank == 0 || mv.To.Rank == chess.BoardSize-1)
	switch {
	case promoting && !mv.Promotion.IsPromotion():
		return nil, errors.Wrapf(errors.ErrPromotionRequired, "%s", mv)
	case !promoting && mv.IsPromotion():
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s cannot promote", mv)
	}

	next := b.Clone()
	target := next.Get(mv.To)

	switch {
	case piece.Kind == chess.King && abs(mv.To.File-mv.From.File) == 2:
		rank := mv.From.Rank
		next.Force(mv.From, mv.To)
		if mv.To.File > mv.From.File {
			next.Force(chess.Square{File: kingsideRookFile, Rank: rank}, chess.Square{File: 5, Rank: rank})
		} else {
			next.Force(chess.Square{File: queensideRookFile, Rank: rank}, chess.Square{File: 3, Rank: rank})
		}
	case promoting:
		promoted := chess.NewPiece(mv.Promotion, colour)
		promoted.Moved = next.Turn
		next.Set(mv.To, promoted)
		next.Set(mv.From, chess.EmptyPiece())
	case piece.Kind == chess.Pawn && mv.To.File != mv.From.File && target.IsEmpty():
		// En passant: the captured pawn sits beside the origin.
		next.Set(chess.Square{File: mv.To.File, Rank: mv.From.Rank}, chess.EmptyPiece())
		next.Force(mv.From, mv.To)
	default:
		next.Force(mv.From, mv.To)
	}

	Update(next)
	if next.Check {
		return nil, errors.ErrLeavesKingInCheck
	}
	return next, nil
}
