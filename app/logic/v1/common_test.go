package v1

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/resourcehub/resourcehub/app/core"
)

const testResources = `{"resources":[
	{"title":"Go Tour","description":"Interactive introduction to Go","url":"https://go.dev/tour","tag":"tutorial","relationships":["cobra","missing"],"creationDate":"2024-01-02"},
	{"title":"cobra","description":"A CLI library","url":"https://cobra.dev","tags":["tool"],"repo":"spf13/cobra","creationDate":"2024-01-01"},
	{"title":"gin","description":"HTTP web framework","url":"https://gin-gonic.com","tags":["tool","web"],"repo":"gin-gonic/gin","creationDate":"2024-01-03"}
]}`

const testSchema = `{"properties":{"resources":{"items":{"properties":{"tags":{"items":{"enum":["tool","tutorial","video"]}}}}}}}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCore(t *testing.T, opts ...func(cfg *core.CoreConfig)) *core.Core {
	t.Helper()
	dir := t.TempDir()

	cfg := core.CoreConfig{}
	cfg.Log.Level = "error"
	cfg.Catalog.ResourcesPath = writeFile(t, dir, "resources.json", testResources)
	cfg.Catalog.SchemaPath = writeFile(t, dir, "schema.json", testSchema)
	cfg.Catalog.StarDataPath = writeFile(t, dir, "star-data.json", `{"projects":[{"repo_name":"spf13/cobra","star_count":2,"star_history":[{"date":"2024-01-01","stars":1},{"date":"2024-01-02","stars":2}]}]}`)
	cfg.GitHub.Attempts = 1
	for _, opt := range opts {
		opt(&cfg)
	}

	c, err := core.SetupCore(cfg)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}
