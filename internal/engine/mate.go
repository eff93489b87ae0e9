package engine

import (
	"sync"
	"sync/atomic"

	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/worker"
)

// trySubmitter is an executor that can refuse work instead of blocking.
type trySubmitter interface {
	TrySubmit(task worker.Task) bool
}

// UpdateMate classifies a freshly updated board. When the side to move has
// no reply that keeps its king safe, NoSafeMove is set and the game ends:
// the opponent wins if the side to move is in check, otherwise it is a draw.
func (e *Engine) UpdateMate(b *chess.Board) {
	if !e.hasSafeReply(b) {
		b.NoSafeMove = true
		if b.Check {
			b.Status = chess.Winner(b.SideToMove().Opposite())
		} else {
			b.Status = chess.Draw
		}
	}
}

// hasSafeReply runs one trial per (piece, destination) pair on the executor.
// Every trial runs to completion before the shared flag is read.
// A board without a king for the side to move is reported as safe.
func (e *Engine) hasSafeReply(b *chess.Board) bool {
	colour := b.SideToMove()
	king, ok := b.KingSquare(colour)
	if !ok {
		return true
	}

	var safe atomic.Bool
	var wg sync.WaitGroup

	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			from := chess.Square{File: file, Rank: rank}
			if !b.Get(from).IsFriend(colour) {
				continue
			}
			for _, to := range b.ReachableFrom(from).Squares() {
				from, to := from, to
				wg.Add(1)
				e.submit(func() {
					defer wg.Done()
					if trialIsSafe(b, from, to, king) {
						safe.Store(true)
					}
				})
			}
		}
	}

	wg.Wait()
	return safe.Load()
}

// submit hands task to the executor. When the executor's queue is full the
// trial runs on the caller's goroutine, so games sharing one pool never
// wait on each other's backlog.
func (e *Engine) submit(task worker.Task) {
	if ts, ok := e.exec.(trySubmitter); ok {
		if !ts.TrySubmit(task) {
			task()
		}
		return
	}
	e.exec.Submit(task)
}

// trialIsSafe forces from->to on a clone and reports whether the king,
// standing on king (or on to when it is the king that moved), escapes.
func trialIsSafe(b *chess.Board, from, to, king chess.Square) bool {
	trial := b.Clone()
	trial.Force(from, to)
	Update(trial)
	if from == king {
		king = to
	}
	return !trial.IsThreatened(king)
}
