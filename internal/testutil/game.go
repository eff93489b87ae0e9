package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/engine"
)

// MustPlay translates and performs each move in turn on a fresh game.
// It calls t.Fatal on the first move that is rejected.
func MustPlay(t *testing.T, e *engine.Engine, moves ...string) *chess.Board {
	t.Helper()
	return MustPlayFrom(t, e, e.NewGame(), moves...)
}

// MustPlayFrom is MustPlay starting from b.
func MustPlayFrom(t *testing.T, e *engine.Engine, b *chess.Board, moves ...string) *chess.Board {
	t.Helper()
	for i, text := range moves {
		mv, err := e.Translate(b, text)
		if err != nil {
			t.Fatalf("move %d %q: translate: %v", i+1, text, err)
		}
		b, err = e.Perform(b, mv)
		if err != nil {
			t.Fatalf("move %d %q: perform: %v", i+1, text, err)
		}
	}
	return b
}

// MustDeserialize restores a board record, calling t.Fatal on failure.
func MustDeserialize(t *testing.T, e *engine.Engine, record string) *chess.Board {
	t.Helper()
	b, err := e.Deserialize(record)
	if err != nil {
		t.Fatalf("deserialize %q: %v", record, err)
	}
	return b
}

// PositionDiff compares the persisted parts of two boards: the grid, the
// turn, the status and the draw offer. Caches and history are ignored.
func PositionDiff(want, got *chess.Board) string {
	return cmp.Diff(want, got,
		cmpopts.IgnoreFields(chess.Board{}, "Reachable", "Threatened", "Check", "Moves", "NoSafeMove"))
}

// AssertSamePosition fails when PositionDiff reports a difference.
func AssertSamePosition(t *testing.T, want, got *chess.Board, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := PositionDiff(want, got); diff != "" {
		report(t, "position mismatch (-want +got):\n"+diff, msgAndArgs...)
	}
}
