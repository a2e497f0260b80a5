package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockProfileStore is a mock of store.ProfileStore interface for use with testify/mock
type TestifyMockProfileStore struct {
	mock.Mock
}

var _ store.ProfileStore = (*TestifyMockProfileStore)(nil)

// List is a mock implementation of store.ProfileStore.List
func (m *TestifyMockProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	args := m.Called(ctx)
	if profiles, ok := args.Get(0).([]*domain.Profile); ok {
		return profiles, args.Error(1)
	}
	return nil, args.Error(1)
}

// Get is a mock implementation of store.ProfileStore.Get
func (m *TestifyMockProfileStore) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*domain.Profile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.ProfileStore.Create
func (m *TestifyMockProfileStore) Create(ctx context.Context, name string) (*domain.Profile, error) {
	args := m.Called(ctx, name)
	if profile, ok := args.Get(0).(*domain.Profile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.ProfileStore.Delete
func (m *TestifyMockProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// IncrementProgress is a mock implementation of store.ProfileStore.IncrementProgress
func (m *TestifyMockProfileStore) IncrementProgress(
	ctx context.Context,
	id uuid.UUID,
	bucket domain.ProgressBucket,
) (*domain.Profile, error) {
	args := m.Called(ctx, id, bucket)
	if profile, ok := args.Get(0).(*domain.Profile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}
