package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{
			name:  "not found",
			err:   ErrOrderNotFound,
			check: IsNotFound,
			want:  true,
		},
		{
			name:  "wrapped not found",
			err:   fmt.Errorf("update status ORD404: %w", ErrOrderNotFound),
			check: IsNotFound,
			want:  true,
		},
		{
			name:  "invalid state",
			err:   errors.Join(ErrInvalidState, errors.New("additional context")),
			check: IsInvalidState,
			want:  true,
		},
		{
			name:  "duplicate id is invariant violation",
			err:   fmt.Errorf("%w: %w: ORD001", ErrInvariantViolation, ErrDuplicateOrderID),
			check: IsInvariantViolation,
			want:  true,
		},
		{
			name:  "other error",
			err:   ErrInvalidStatus,
			check: IsNotFound,
			want:  false,
		},
		{
			name:  "nil error",
			err:   nil,
			check: IsInvalidState,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("classifier(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
