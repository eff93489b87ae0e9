// Package engine implements the chess rules: reachability, move application,
// check and mate detection, notation translation and board records.
package engine

import (
	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/worker"
)

// Engine applies the rules to boards. Terminal positions are searched with
// trials dispatched to the engine's executor. An Engine holds no board
// state and is safe for concurrent use when its executor is.
type Engine struct {
	exec worker.Executor
}

// New creates an engine running mate trials on exec.
// A nil exec runs them on the caller's goroutine.
func New(exec worker.Executor) *Engine {
	if exec == nil {
		exec = worker.Inline{}
	}
	return &Engine{exec: exec}
}

// NewGame returns the standard starting position, ready to play.
func (e *Engine) NewGame() *chess.Board {
	b := chess.NewBoard()
	b.SetupInitialPosition()
	Update(b)
	return b
}

var promotionKinds = []chess.PieceKind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// LegalMoves lists every move of the side to move that Perform accepts.
// Promotions are expanded to one move per promotion kind.
func (e *Engine) LegalMoves(b *chess.Board) []chess.Move {
	if b.IsOver() {
		return nil
	}

	colour := b.SideToMove()
	var moves []chess.Move
	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			from := chess.Square{File: file, Rank: rank}
			piece := b.Get(from)
			if !piece.IsFriend(colour) {
				continue
			}
			for _, to := range b.ReachableFrom(from).Squares() {
				candidates := []chess.Move{chess.NewMove(from, to)}
				if piece.Kind == chess.Pawn && (to.Rank == 0 || to.Rank == chess.BoardSize-1) {
					candidates = candidates[:0]
					for _, kind := range promotionKinds {
						mv, _ := chess.NewPromotion(from, to, kind)
						candidates = append(candidates, mv)
					}
				}
				for _, mv := range candidates {
					if _, err := apply(b, mv); err == nil {
						moves = append(moves, mv)
					}
				}
			}
		}
	}
	return moves
}
