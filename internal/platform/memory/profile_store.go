package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/store"
)

// ProfileStore is a mutex-guarded in-memory store.ProfileStore. Returned
// profiles are copies; callers cannot mutate stored state.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.Profile
	logger   *slog.Logger
}

var _ store.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore creates an empty store. If logger is nil, a default logger
// will be used.
func NewProfileStore(logger *slog.Logger) *ProfileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileStore{
		profiles: make(map[uuid.UUID]domain.Profile),
		logger:   logger.With(slog.String("component", "memory_profile_store")),
	}
}

// List implements store.ProfileStore.List
func (s *ProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]*domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		p := p
		out = append(out, &p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Get implements store.ProfileStore.Get
func (s *ProfileStore) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return &p, nil
}

// Create implements store.ProfileStore.Create
func (s *ProfileStore) Create(ctx context.Context, name string) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := domain.NewProfile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	s.profiles[p.ID] = *p
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "profile created",
		slog.String("profile_id", p.ID.String()),
		slog.String("avatar", p.Avatar))

	created := *p
	return &created, nil
}

// Delete implements store.ProfileStore.Delete
func (s *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return store.ErrProfileNotFound
	}
	delete(s.profiles, id)
	return nil
}

// IncrementProgress implements store.ProfileStore.IncrementProgress
func (s *ProfileStore) IncrementProgress(
	ctx context.Context,
	id uuid.UUID,
	bucket domain.ProgressBucket,
) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}

	updated, err := p.Increment(bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	s.profiles[id] = updated

	return &updated, nil
}
