package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcehub/resourcehub/pkg/types"
)

func TestDecodeDocument(t *testing.T) {
	t.Run("wrapped", func(t *testing.T) {
		doc, err := DecodeDocument([]byte(`{"resources":[{"title":"A","description":"a","url":"https://a.dev","tags":["tool"]}]}`))
		require.NoError(t, err)
		require.Len(t, doc.Resources, 1)
		assert.Equal(t, "A", doc.Resources[0].Title)
		assert.Equal(t, []string{"tool"}, doc.Resources[0].TagSet())
	})

	t.Run("bare array", func(t *testing.T) {
		doc, err := DecodeDocument([]byte(`[{"title":"A"},{"title":"B","relationships":["A",""]}]`))
		require.NoError(t, err)
		require.Len(t, doc.Resources, 2)
		assert.NotNil(t, doc.Resources[0].Tags)
		assert.Equal(t, []string{"A"}, []string(doc.Resources[1].Relationships))
	})

	t.Run("empty", func(t *testing.T) {
		doc, err := DecodeDocument(nil)
		require.NoError(t, err)
		assert.Empty(t, doc.Resources)
		assert.NotNil(t, doc.Resources)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeDocument([]byte(`{"resources":`))
		assert.Error(t, err)
	})
}

func TestSchemaTags(t *testing.T) {
	nested := `{"properties":{"resources":{"type":"array","items":{"properties":{"tags":{"type":"array","items":{"enum":["documentation","tool"]}}}}}}}`
	assert.Equal(t, []string{"documentation", "tool"}, SchemaTags([]byte(nested)))

	flat := `{"properties":{"tags":{"items":{"enum":["video"]}}}}`
	assert.Equal(t, []string{"video"}, SchemaTags([]byte(flat)))

	assert.Empty(t, SchemaTags([]byte(`{"type":"object"}`)))
}

func TestDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resources.json")

	in := &types.ResourceDocument{Resources: []types.Resource{{Title: "A", Description: "a", URL: "https://a.dev"}}}
	require.NoError(t, SaveDocument(path, in))

	out, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "A", out.Resources[0].Title)

	_, err = LoadDocument(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestStarData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "star-data.json")
	in := &types.StarDataDocument{Projects: []types.RepositoryStarData{{
		RepoName:    "owner/name",
		StarCount:   2,
		StarHistory: []types.StarHistoryPoint{{Date: "2024-01-01", Stars: 1}, {Date: "2024-01-02", Stars: 2}},
	}}}
	require.NoError(t, SaveStarData(path, in))

	out, err := LoadStarData(path)
	require.NoError(t, err)
	p := out.Find("owner/name")
	require.NotNil(t, p)
	assert.Equal(t, 2, p.StarCount)
	assert.Nil(t, out.Find("owner/other"))
}
