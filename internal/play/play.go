// Package play runs interactive games over a line-oriented terminal.
package play

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/impodog/termichess/internal/chess"
	"github.com/impodog/termichess/internal/engine"
)

const prompt = "Command: "

// terminal couples the input scanner with the output writer of one player.
type terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func newTerminal(in io.Reader, out io.Writer) terminal {
	return terminal{in: bufio.NewScanner(in), out: out}
}

// readLine prompts and returns the next input line. Closed input is
// reported as io.EOF.
func (t terminal) readLine() (string, error) {
	fmt.Fprint(t.out, prompt)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", fmt.Errorf("reading command: %w", err)
		}
		return "", fmt.Errorf("reading command: %w", io.EOF)
	}
	return t.in.Text(), nil
}

// listMoves writes the legal moves of the side to move in sorted order.
func listMoves(w io.Writer, eng *engine.Engine, b *chess.Board) {
	moves := eng.LegalMoves(b)
	names := make([]string, len(moves))
	for i, mv := range moves {
		names[i] = mv.String()
	}
	sort.Strings(names)
	fmt.Fprintf(w, "%d legal moves: %s\n", len(names), strings.Join(names, " "))
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
