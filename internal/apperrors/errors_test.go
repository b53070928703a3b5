package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// Error messages
// ---------------------------------------------------------------------------

func TestErrors_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "unavailable",
			err:      &ErrUpstreamUnavailable{Err: errors.New("connection refused")},
			expected: "upstream unavailable: connection refused",
		},
		{
			name:     "status with body",
			err:      &ErrUpstreamStatus{StatusCode: 401, Body: `{"message":"bad key"}`},
			expected: `upstream request failed: status 401, body: {"message":"bad key"}`,
		},
		{
			name:     "status without body",
			err:      &ErrUpstreamStatus{StatusCode: 503},
			expected: "upstream request failed: status 503",
		},
		{
			name:     "malformed",
			err:      &ErrUpstreamMalformed{Err: errors.New("unexpected EOF")},
			expected: "malformed upstream response: unexpected EOF",
		},
		{
			name:     "invalid content id",
			err:      NewInvalidContentIDError("nm0000001"),
			expected: `invalid content ID "nm0000001"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Is / Unwrap semantics
// ---------------------------------------------------------------------------

func TestErrors_Is(t *testing.T) {
	t.Parallel()

	unavailable := &ErrUpstreamUnavailable{Err: context.DeadlineExceeded}
	status := &ErrUpstreamStatus{StatusCode: 500}
	malformed := &ErrUpstreamMalformed{Err: errors.New("bad json")}

	t.Run("matches same type regardless of fields", func(t *testing.T) {
		if !errors.Is(status, &ErrUpstreamStatus{StatusCode: 404}) {
			t.Error("expected errors.Is to match *ErrUpstreamStatus")
		}
	})

	t.Run("does not match other types", func(t *testing.T) {
		if errors.Is(status, &ErrUpstreamMalformed{}) {
			t.Error("expected *ErrUpstreamStatus not to match *ErrUpstreamMalformed")
		}
		if errors.Is(malformed, &ErrUpstreamUnavailable{}) {
			t.Error("expected *ErrUpstreamMalformed not to match *ErrUpstreamUnavailable")
		}
		if errors.Is(unavailable, &ErrInvalidContentID{}) {
			t.Error("expected *ErrUpstreamUnavailable not to match *ErrInvalidContentID")
		}
	})

	t.Run("unwraps the cause", func(t *testing.T) {
		if !errors.Is(unavailable, context.DeadlineExceeded) {
			t.Error("expected errors.Is to reach the wrapped context error")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("search: %w", malformed)
		if !errors.Is(wrapped, &ErrUpstreamMalformed{}) {
			t.Error("expected errors.Is to match *ErrUpstreamMalformed through wrapping")
		}
	})

	t.Run("errors.As extracts the status code", func(t *testing.T) {
		var target *ErrUpstreamStatus
		if !errors.As(fmt.Errorf("outer: %w", status), &target) {
			t.Fatal("expected errors.As to find *ErrUpstreamStatus")
		}
		if target.StatusCode != 500 {
			t.Errorf("StatusCode = %d, want 500", target.StatusCode)
		}
	})
}
