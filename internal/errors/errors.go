// Package errors provides sentinel errors and error types for termichess.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidNotation indicates move text that does not follow the grammar.
	ErrInvalidNotation = errors.New("invalid notation")

	// ErrAmbiguous indicates notation that matches more than one piece.
	ErrAmbiguous = errors.New("ambiguous move")

	// ErrNoCandidate indicates that no piece can reach the target square.
	ErrNoCandidate = errors.New("no piece can reach the target")

	// ErrCaptureMismatch indicates an 'x' that disagrees with the target square.
	ErrCaptureMismatch = errors.New("capture mismatch")

	// ErrPromotion indicates a missing, misplaced or invalid promotion suffix.
	ErrPromotion = errors.New("promotion error")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrLeavesKingInCheck indicates a move that would expose the mover's king.
	ErrLeavesKingInCheck = errors.New("move leaves own king in check")

	// ErrPromotionRequired indicates a pawn move to the last rank without a promotion kind.
	ErrPromotionRequired = errors.New("promotion required")

	// ErrGameOver indicates a move attempted after the game has finished.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidRecord indicates a malformed serialized board.
	ErrInvalidRecord = errors.New("invalid board record")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRoomNotFound indicates an unknown relay room.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomFull indicates a third player trying to join a room.
	ErrRoomFull = errors.New("room is full")

	// ErrNotYourTurn indicates a relay request from the player not on turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrNotReady indicates a room that is still waiting for its second player.
	ErrNotReady = errors.New("waiting for opponent")

	// ErrNothingQueued indicates a query with no pending command.
	ErrNothingQueued = errors.New("nothing queued")
)

// NotationKind categorizes notation translation failures.
type NotationKind int

const (
	MissingPiece NotationKind = iota
	InvalidPiece
	IncompleteSquare
	InvalidSquare
	MissingTarget
	AmbiguousShortcut
	AmbiguousOrigin
	NoCandidate
	CaptureMismatch
	PromotionRequired
	PromotionNotAllowed
	InvalidPromotion
)

// String returns a short name for the kind.
func (k NotationKind) String() string {
	names := []string{
		"missing piece code",
		"invalid piece code",
		"incomplete square code",
		"invalid square code",
		"missing target square",
		"ambiguous shortcut",
		"ambiguous origin",
		"no candidate",
		"capture mismatch",
		"promotion required",
		"promotion not allowed",
		"invalid promotion code",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// sentinel maps a notation kind onto the sentinel it unwraps to.
func (k NotationKind) sentinel() error {
	switch k {
	case AmbiguousShortcut, AmbiguousOrigin:
		return ErrAmbiguous
	case NoCandidate:
		return ErrNoCandidate
	case CaptureMismatch:
		return ErrCaptureMismatch
	case PromotionRequired, PromotionNotAllowed, InvalidPromotion:
		return ErrPromotion
	default:
		return ErrInvalidNotation
	}
}

// NotationError describes why a move string could not be resolved.
// It implements the error interface and unwraps to the sentinel of its Kind.
type NotationError struct {
	Kind   NotationKind
	Text   string // The move text that was being translated
	Detail string // A hint for the player
}

// NewNotationError creates a NotationError.
func NewNotationError(kind NotationKind, text, format string, args ...interface{}) *NotationError {
	return &NotationError{Kind: kind, Text: text, Detail: fmt.Sprintf(format, args...)}
}

// Error returns the detail, prefixed with the move text when known.
func (e *NotationError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = e.Kind.String()
	}
	if e.Text != "" {
		return fmt.Sprintf("move %q: %s", e.Text, detail)
	}
	return detail
}

// Unwrap returns the sentinel for the error's kind.
func (e *NotationError) Unwrap() error {
	return e.Kind.sentinel()
}

// RecordError represents a deserialization failure with the offending field.
type RecordError struct {
	Err   error  // The underlying error
	Field string // Field name (squares, moves, turn, status, draw)
	Value string // The rejected value, possibly truncated
}

// Error returns a formatted error message with field context.
func (e *RecordError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field %s", e.Field))
	}
	if e.Value != "" {
		v := e.Value
		if len(v) > 24 {
			v = v[:24] + "..."
		}
		parts = append(parts, fmt.Sprintf("value %q", v))
	}
	err := e.Err
	if err == nil {
		err = ErrInvalidRecord
	}
	if len(parts) > 0 {
		return fmt.Sprintf("%s: %v", strings.Join(parts, ", "), err)
	}
	return err.Error()
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidRecord
	}
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is and As re-export the standard library helpers so callers importing
// this package need not alias the standard one.
var (
	Is = errors.Is
	As = errors.As
)
