package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"validation", ErrValidation},
		{"not found", ErrNotFound},
		{"conflict", ErrConflict},
		{"insufficient stock", ErrInsufficientStock},
		{"gateway unavailable", ErrGatewayUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match sentinel: %v", tc.err)
			}
		})
	}
}
