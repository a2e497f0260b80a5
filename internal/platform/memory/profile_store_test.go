package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/platform/memory"
	"github.com/phrazzld/hececiz/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStoreCreateAndList(t *testing.T) {
	s := memory.NewProfileStore(nil)
	ctx := context.Background()

	first, err := s.Create(ctx, " Ayşe ")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := s.Create(ctx, "Mehmet")
	require.NoError(t, err)

	assert.Equal(t, "Ayşe", first.Name)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Contains(t, domain.Avatars, first.Avatar)
	assert.Zero(t, first.TotalCorrectAudio)
	assert.Zero(t, first.TotalCorrectHint)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestProfileStoreRejectsInvalidNames(t *testing.T) {
	s := memory.NewProfileStore(nil)

	_, err := s.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrProfileNameEmpty)
}

func TestProfileStoreIncrementProgress(t *testing.T) {
	s := memory.NewProfileStore(nil)
	ctx := context.Background()
	p, err := s.Create(ctx, "Zeynep")
	require.NoError(t, err)

	updated, err := s.IncrementProgress(ctx, p.ID, domain.BucketAudio)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalCorrectAudio)
	assert.Equal(t, 0, updated.TotalCorrectHint)

	updated, err = s.IncrementProgress(ctx, p.ID, domain.BucketHint)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalCorrectAudio)
	assert.Equal(t, 1, updated.TotalCorrectHint)

	_, err = s.IncrementProgress(ctx, uuid.New(), domain.BucketAudio)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)

	_, err = s.IncrementProgress(ctx, p.ID, domain.ProgressBucket("bonus"))
	assert.ErrorIs(t, err, domain.ErrInvalidProgressBucket)
}

func TestProfileStoreReturnsCopies(t *testing.T) {
	s := memory.NewProfileStore(nil)
	ctx := context.Background()
	p, err := s.Create(ctx, "Ali")
	require.NoError(t, err)

	p.TotalCorrectAudio = 99
	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalCorrectAudio)
}

func TestProfileStoreConcurrentIncrements(t *testing.T) {
	s := memory.NewProfileStore(nil)
	ctx := context.Background()
	p, err := s.Create(ctx, "Deniz")
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.IncrementProgress(ctx, p.ID, domain.BucketFor(i%2 == 0))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, n/2, got.TotalCorrectAudio)
	assert.Equal(t, n/2, got.TotalCorrectHint)
}

func TestProfileStoreDelete(t *testing.T) {
	s := memory.NewProfileStore(nil)
	ctx := context.Background()
	p, err := s.Create(ctx, "Ece")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, p.ID))
	assert.ErrorIs(t, s.Delete(ctx, p.ID), store.ErrProfileNotFound)

	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestProfileStoreHonoursCancellation(t *testing.T) {
	s := memory.NewProfileStore(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Create(ctx, "Ada")
	assert.ErrorIs(t, err, context.Canceled)
}
