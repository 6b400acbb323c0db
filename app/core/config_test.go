package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupConfigFromEnv(t *testing.T) {
	addr := "localhost:11111"
	t.Setenv("RESOURCEHUB_SERVICE_ADDRESS", addr)
	t.Setenv("RESOURCEHUB_GITHUB_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "fallback-token")

	cfg := LoadBaseConfigFromENV()

	assert.Equal(t, addr, cfg.Addr)
	assert.Equal(t, "fallback-token", cfg.GitHub.Token)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "data/resources.json", cfg.Catalog.ResourcesPath)
	assert.Equal(t, "0 */6 * * *", cfg.GitHub.SyncCron)
	assert.Equal(t, 10, cfg.Site.PageSize)
}

func TestLoadBaseConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr = ":8080"

[store]
driver = "postgres"

[postgres]
dsn = "postgres://localhost/resourcehub"

[github]
token = "from-file"
cache_ttl = 60
sync_concurrency = 2

[site]
title = "Links"

[custom_config]
name = "extra"
`), 0o644))

	cfg, err := LoadBaseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/resourcehub", cfg.Postgres.FormatDSN())
	assert.Equal(t, "from-file", cfg.GitHub.Token)
	assert.Equal(t, 60, cfg.GitHub.CacheTTL)
	assert.Equal(t, 2, cfg.GitHub.SyncConcurrency)
	assert.Equal(t, uint(3), cfg.GitHub.Attempts)
	assert.Equal(t, "Links", cfg.Site.Title)

	var custom struct {
		CustomConfig struct {
			Name string `toml:"name"`
		} `toml:"custom_config"`
	}
	require.NoError(t, cfg.LoadCustomConfig(&custom))
	assert.Equal(t, "extra", custom.CustomConfig.Name)

	_, err = LoadBaseConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
