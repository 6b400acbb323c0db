package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcehub/resourcehub/app/store"
	"github.com/resourcehub/resourcehub/pkg/testutils"
	"github.com/resourcehub/resourcehub/pkg/types"
	"github.com/resourcehub/resourcehub/pkg/utils"
)

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m PGConfig) FormatDSN() string {
	return m.DSN
}

func newTestProvider(t *testing.T) *Provider {
	dsn := testutils.RequireEnv(t, testutils.ENV_TEST_POSTGRES_DSN)
	provider := MustSetup(PGConfig{DSN: dsn})
	require.NoError(t, provider.Install())
	t.Cleanup(func() { provider.Close() })
	return provider
}

func TestResourceStore(t *testing.T) {
	provider := newTestProvider(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	title := "sqlstore-test-" + utils.GenRandomID()
	s := provider.ResourceStore()

	require.NoError(t, s.Create(ctx, types.Resource{
		Title:         title,
		Description:   "first",
		URL:           "https://example.com",
		Tag:           "tool",
		Tags:          []string{"documentation"},
		Relationships: []string{"Other", " "},
	}))
	require.NoError(t, s.Create(ctx, types.Resource{Title: title, Description: "second", URL: "https://example.com"}))

	got, err := s.GetByTitle(ctx, title)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Description)
	assert.Equal(t, []string{"documentation", "tool"}, []string(got.Tags))
	assert.Equal(t, []string{"Other"}, []string(got.Relationships))

	byID, err := s.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, title, byID.Title)

	_, err = s.GetByTitle(ctx, title+"-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}

func TestStarDataStore(t *testing.T) {
	provider := newTestProvider(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	repo := "test/" + utils.GenRandomID()
	s := provider.StarDataStore()

	require.NoError(t, s.Upsert(ctx, types.RepositoryStarData{RepoName: repo, StarCount: 1}))
	require.NoError(t, s.Upsert(ctx, types.RepositoryStarData{
		RepoName:    repo,
		StarCount:   2,
		StarHistory: []types.StarHistoryPoint{{Date: "2024-01-01", Stars: 1}, {Date: "2024-01-02", Stars: 2}},
	}))

	got, err := s.Get(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, 2, got.StarCount)
	assert.Len(t, got.StarHistory, 2)
}
