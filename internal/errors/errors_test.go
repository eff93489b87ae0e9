package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to restore board: %w", ErrInvalidRecord)

	if !errors.Is(wrapped, ErrInvalidRecord) {
		t.Errorf("errors.Is(wrapped, ErrInvalidRecord) = false, want true")
	}
}

// TestNotationError_Unwrap verifies each kind unwraps to its sentinel
func TestNotationError_Unwrap(t *testing.T) {
	tests := []struct {
		kind     NotationKind
		sentinel error
	}{
		{MissingPiece, ErrInvalidNotation},
		{InvalidPiece, ErrInvalidNotation},
		{IncompleteSquare, ErrInvalidNotation},
		{InvalidSquare, ErrInvalidNotation},
		{MissingTarget, ErrInvalidNotation},
		{AmbiguousShortcut, ErrAmbiguous},
		{AmbiguousOrigin, ErrAmbiguous},
		{NoCandidate, ErrNoCandidate},
		{CaptureMismatch, ErrCaptureMismatch},
		{PromotionRequired, ErrPromotion},
		{PromotionNotAllowed, ErrPromotion},
		{InvalidPromotion, ErrPromotion},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := NewNotationError(tt.kind, "Nf3", "")
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", err, tt.sentinel)
			}
		})
	}
}

// TestNotationError_Error verifies the error message format
func TestNotationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotationError
		contains []string
	}{
		{
			name:     "with detail",
			err:      NewNotationError(AmbiguousOrigin, "Nd2", "specify the source square"),
			contains: []string{"Nd2", "specify the source square"},
		},
		{
			name:     "kind only",
			err:      &NotationError{Kind: InvalidPromotion},
			contains: []string{"invalid promotion code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("NotationError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestNotationError_As verifies that errors.As works with NotationError
func TestNotationError_As(t *testing.T) {
	wrapped := fmt.Errorf("translate: %w", NewNotationError(CaptureMismatch, "exd5", "no piece to take"))

	var extracted *NotationError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract NotationError")
	}
	if extracted.Kind != CaptureMismatch {
		t.Errorf("extracted.Kind = %v, want %v", extracted.Kind, CaptureMismatch)
	}
	if extracted.Text != "exd5" {
		t.Errorf("extracted.Text = %q, want %q", extracted.Text, "exd5")
	}
}

// TestRecordError verifies RecordError formatting and unwrapping
func TestRecordError(t *testing.T) {
	err := &RecordError{Field: "turn", Value: "abc"}

	if !errors.Is(err, ErrInvalidRecord) {
		t.Error("errors.Is(err, ErrInvalidRecord) = false, want true")
	}
	msg := err.Error()
	for _, s := range []string{"turn", "abc", "invalid board record"} {
		if !containsIgnoreCase(msg, s) {
			t.Errorf("RecordError.Error() = %q, should contain %q", msg, s)
		}
	}

	long := &RecordError{Field: "squares", Value: strings.Repeat("Rw0", 20)}
	if !strings.Contains(long.Error(), "...") {
		t.Errorf("long values should be truncated, got %q", long.Error())
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrRoomNotFound, "querying room")

	if !errors.Is(wrapped, ErrRoomNotFound) {
		t.Error("Wrap should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "querying room") {
		t.Errorf("Wrap should include context, got %q", wrapped.Error())
	}
	if Wrap(nil, "anything") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "turn %d", 15)

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "turn 15") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
