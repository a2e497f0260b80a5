package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/domain"
)

// ProfileStore defines the interface for learner profile persistence.
type ProfileStore interface {
	// List returns every profile, oldest first.
	List(ctx context.Context) ([]*domain.Profile, error)

	// Get retrieves a profile by its unique ID.
	// Returns ErrProfileNotFound if the profile does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// Create stores a new profile named name with a random avatar and zeroed
	// counters, and returns it.
	// Returns an error wrapping ErrInvalidEntity if the name is invalid.
	Create(ctx context.Context, name string) (*domain.Profile, error)

	// Delete removes a profile.
	// Returns ErrProfileNotFound if the profile does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementProgress atomically adds one to the counter selected by
	// bucket and returns the updated profile.
	// Returns ErrProfileNotFound if the profile does not exist.
	IncrementProgress(ctx context.Context, id uuid.UUID, bucket domain.ProgressBucket) (*domain.Profile, error)
}
