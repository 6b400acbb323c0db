package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcehub/resourcehub/app/store"
	"github.com/resourcehub/resourcehub/pkg/types"
)

func TestResourceStore(t *testing.T) {
	ctx := context.Background()
	s := NewProvider().ResourceStore()

	require.NoError(t, s.Seed(ctx, []types.Resource{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}))
	// seeding twice is a no-op
	require.NoError(t, s.Seed(ctx, []types.Resource{{Title: "Z"}}))

	require.NoError(t, s.Create(ctx, types.Resource{ID: "3", Title: "A", Description: "second A"}))

	list, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "second A", list[2].Description)

	total, err := s.Total(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	first, err := s.GetByTitle(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)

	byID, err := s.GetByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "second A", byID.Description)

	_, err = s.GetByTitle(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResourceStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewResourceStore()
	require.NoError(t, s.Create(ctx, types.Resource{Title: "A", Tags: []string{"tool"}}))

	got, err := s.GetByTitle(ctx, "A")
	require.NoError(t, err)
	got.Tags[0] = "changed"

	again, _ := s.GetByTitle(ctx, "A")
	assert.Equal(t, "tool", again.Tags[0])
}

func TestResourceStoreConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := NewResourceStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Create(ctx, types.Resource{Title: "x"})
		}()
	}
	wg.Wait()

	total, _ := s.Total(ctx)
	assert.EqualValues(t, 50, total)
}

func TestStarDataStore(t *testing.T) {
	ctx := context.Background()
	s := NewStarDataStore()

	require.NoError(t, s.Upsert(ctx, types.RepositoryStarData{RepoName: "a/b", StarCount: 1}))
	require.NoError(t, s.Upsert(ctx, types.RepositoryStarData{RepoName: "c/d", StarCount: 5}))
	require.NoError(t, s.Upsert(ctx, types.RepositoryStarData{RepoName: "a/b", StarCount: 2}))

	got, err := s.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, 2, got.StarCount)
	assert.NotZero(t, got.UpdatedAt)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a/b", list[0].RepoName)

	_, err = s.Get(ctx, "x/y")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
