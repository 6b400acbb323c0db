package graph

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/resourcehub/resourcehub/pkg/types"
)

func nodeIDs(data types.NetworkData) []string {
	return lo.Map(data.Nodes, func(n types.NetworkNode, _ int) string { return n.ID })
}

func TestBuildSelected(t *testing.T) {
	list := []types.Resource{
		{Title: "A", Relationships: []string{"B", "C", "Ghost"}},
		{Title: "B", Tag: "tool", Image: "https://img/b.png"},
		{Title: "C", Tags: []string{"video"}},
		{Title: "D"},
	}

	data := BuildSelected(list[0], list)

	assert.ElementsMatch(t, []string{"A", "B", "C"}, nodeIDs(data))
	assert.Equal(t, "A", data.Nodes[0].ID)
	assert.Equal(t, []types.NetworkLink{{Source: "A", Target: "B"}, {Source: "A", Target: "C"}}, data.Links)

	b := data.Nodes[1]
	assert.Equal(t, "tool", b.Category)
	assert.Equal(t, "https://img/b.png", b.ImageURL)
	assert.Equal(t, "video", data.Nodes[2].Category)
}

func TestBuildSelectedDuplicatesAndSelfReference(t *testing.T) {
	list := []types.Resource{
		{Title: "A", Relationships: []string{"B", "B", "A"}},
		{Title: "B"},
	}
	data := BuildSelected(list[0], list)
	assert.Equal(t, []string{"A", "B"}, nodeIDs(data))
	assert.Len(t, data.Links, 1)
}

func TestBuildSelectedNoRelationships(t *testing.T) {
	data := BuildSelected(types.Resource{Title: "solo"}, nil)
	assert.Equal(t, []string{"solo"}, nodeIDs(data))
	assert.NotNil(t, data.Links)
	assert.Empty(t, data.Links)
}

func TestBuildNetwork(t *testing.T) {
	list := []types.Resource{
		{Title: "A", Relationships: []string{"B", "missing"}, Description: "first"},
		{Title: "B", Relationships: []string{"A"}},
		{Title: "A", Description: "duplicate title"},
		{Title: "C"},
	}

	data := BuildNetwork(list)
	assert.Equal(t, []string{"A", "B", "C"}, nodeIDs(data))
	assert.Equal(t, "first", data.Nodes[0].Metadata.Description)
	assert.Equal(t, []types.NetworkLink{{Source: "A", Target: "B"}, {Source: "B", Target: "A"}}, data.Links)
}
