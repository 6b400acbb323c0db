package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSet(t *testing.T) {
	r := Resource{Tag: "Tools", Tags: []string{"Design", " ", "Tools", "Design"}}
	assert.Equal(t, []string{"Design", "Tools"}, r.TagSet())
	assert.True(t, r.HasTag("Tools"))
	assert.False(t, r.HasTag("Other"))

	assert.Empty(t, Resource{}.TagSet())
	assert.Equal(t, "Tools", r.Category())
	assert.Equal(t, "Design", Resource{Tags: []string{"Design"}}.Category())
}

func TestRelationshipList(t *testing.T) {
	assert.NotNil(t, Resource{}.RelationshipList())
	assert.Equal(t, []string{"A", "B"}, Resource{Relationships: []string{" A", "", "B "}}.RelationshipList())
}

func TestFormToResource(t *testing.T) {
	f := ResourceForm{
		Title:         "  Go  ",
		Description:   "language",
		URL:           "https://go.dev",
		NewTag:        "Languages",
		Relationships: "Rust, , C ",
	}
	r := f.ToResource("1", "2024-01-01T00:00:00Z")

	assert.Equal(t, "1", r.ID)
	assert.Equal(t, "Go", r.Title)
	assert.Equal(t, "Languages", r.Tag)
	assert.Equal(t, []string{"Languages"}, []string(r.Tags))
	assert.Equal(t, []string{"Rust", "C"}, []string(r.Relationships))
	assert.Equal(t, "2024-01-01T00:00:00Z", r.CreationDate)
	assert.Equal(t, "2024-01-01T00:00:00Z", r.LastUpdatedDate)

	f.Tag = "Tools"
	f.CreationDate = "2023-05-05"
	r = f.ToResource("2", "2024-01-01T00:00:00Z")
	assert.Equal(t, "Tools", r.Tag)
	assert.Equal(t, "2023-05-05", r.CreationDate)
}

func TestFormFromResource(t *testing.T) {
	f := FormFromResource(Resource{
		Title:           "Go",
		Tags:            []string{"Languages"},
		Relationships:   []string{"Rust", "C"},
		CreationDate:    "2020-01-01T00:00:00Z",
		LastUpdatedDate: "2020-06-01T00:00:00Z",
	})
	assert.Equal(t, "Go", f.Title)
	assert.Equal(t, "Languages", f.Tag)
	assert.Equal(t, "Rust, C", f.Relationships)
	assert.Empty(t, f.CreationDate)
	assert.Empty(t, f.LastUpdatedDate)

	r := f.ToResource("1", "2024-05-01T00:00:00Z")
	assert.Equal(t, "2024-05-01T00:00:00Z", r.CreationDate)
	assert.Equal(t, "2024-05-01T00:00:00Z", r.LastUpdatedDate)
}

func TestStarDataDocumentFind(t *testing.T) {
	doc := StarDataDocument{Projects: []RepositoryStarData{{RepoName: "a/b", StarCount: 3}}}
	assert.Equal(t, 3, doc.Find("a/b").StarCount)
	assert.Nil(t, doc.Find("c/d"))
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "rh_resource", TABLE_RESOURCE.Name())
}
