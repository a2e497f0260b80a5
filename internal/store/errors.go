package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Profile store errors. Backends wrap driver failures in these so handlers
// can map them to responses without knowing which backend is configured.
var (
	// ErrNotFound is the base of every not-found error.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a profile id is already taken.
	ErrDuplicate = errors.New("profile already exists")

	// ErrInvalidEntity is returned when a profile or progress bucket is
	// rejected by validation or by a table constraint.
	ErrInvalidEntity = errors.New("invalid profile")

	// ErrUpdateFailed is returned when a progress increment could not be
	// applied.
	ErrUpdateFailed = errors.New("progress update failed")

	// ErrDeleteFailed is returned when a profile could not be removed.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrProfileNotFound indicates that no profile has the requested id.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)
)

// IsNotFoundError reports whether err is any kind of not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Op names a profile store operation.
type Op string

// Profile store operations.
const (
	OpList      Op = "list"
	OpGet       Op = "get"
	OpCreate    Op = "create"
	OpDelete    Op = "delete"
	OpIncrement Op = "increment"
)

// StoreError records which profile operation failed. ProfileID is the zero
// UUID for operations that do not address a single profile.
type StoreError struct {
	Op        Op
	ProfileID uuid.UUID
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	target := "profiles"
	if e.ProfileID != uuid.Nil {
		target = "profile " + e.ProfileID.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, target, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, target, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError for op on the profile id.
func NewStoreError(op Op, id uuid.UUID, message string, err error) *StoreError {
	return &StoreError{
		Op:        op,
		ProfileID: id,
		Message:   message,
		Err:       err,
	}
}
