// Package logging builds the zerolog loggers used by the binaries.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// New returns a logger writing to w. Terminals get the human readable
// console format; anything else gets JSON lines.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := w
	if IsTerminal(w) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Open returns a logger for path, or for stderr when path is empty.
// The returned closer releases the log file.
func Open(path string, verbose bool) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return New(os.Stderr, verbose), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return New(f, verbose), f, nil
}
