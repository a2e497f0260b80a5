package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "wrapped generic error",
			err:      fmt.Errorf("failed to do something: %w", errors.New("some error")),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("failed to do something: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrProfileNotFound",
			err:      ErrProfileNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrProfileNotFound",
			err:      fmt.Errorf("failed to increment progress: %w", ErrProfileNotFound),
			expected: true,
		},
		{
			name:     "ErrDuplicate is not a not-found error",
			err:      ErrDuplicate,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	id := uuid.MustParse("0b6a2d1e-7c4f-4f7e-9a51-3d2b8c1e5f60")

	storeErr := NewStoreError(OpIncrement, id, "update failed", originalErr)

	expected := "increment profile 0b6a2d1e-7c4f-4f7e-9a51-3d2b8c1e5f60: update failed: database connection failed"
	if got := storeErr.Error(); got != expected {
		t.Errorf("StoreError.Error() = %v, want %v", got, expected)
	}
	if !errors.Is(storeErr, originalErr) {
		t.Errorf("errors.Is() not recognizing the wrapped error")
	}

	listErr := NewStoreError(OpList, uuid.Nil, "query failed", nil)
	if got := listErr.Error(); got != "list profiles: query failed" {
		t.Errorf("StoreError.Error() = %v, want %v", got, "list profiles: query failed")
	}

	notFound := NewStoreError(OpGet, id, "no row", ErrProfileNotFound)
	var target *StoreError
	if !errors.As(fmt.Errorf("handler: %w", notFound), &target) || target.Op != OpGet {
		t.Errorf("errors.As() did not recover the StoreError")
	}
	if !IsNotFoundError(notFound) {
		t.Errorf("IsNotFoundError() = false for a wrapped ErrProfileNotFound")
	}
}
