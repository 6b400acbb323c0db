package graph

import "github.com/resourcehub/resourcehub/pkg/types"

func newNode(r types.Resource) types.NetworkNode {
	return types.NetworkNode{
		ID: r.Title,
		Metadata: &types.NodeMetadata{
			CreationDate:    r.CreationDate,
			LastUpdatedDate: r.LastUpdatedDate,
			Description:     r.Description,
		},
		Category: r.Category(),
		ImageURL: r.Image,
	}
}

// index maps each title to its first resource.
func index(list []types.Resource) map[string]types.Resource {
	idx := make(map[string]types.Resource, len(list))
	for _, r := range list {
		if _, ok := idx[r.Title]; !ok {
			idx[r.Title] = r
		}
	}
	return idx
}

// BuildNetwork builds the graph of the whole catalog. Relationships pointing
// at unknown titles are dropped.
func BuildNetwork(list []types.Resource) types.NetworkData {
	idx := index(list)
	data := types.NetworkData{
		Nodes: make([]types.NetworkNode, 0, len(idx)),
		Links: []types.NetworkLink{},
	}

	added := make(map[string]struct{}, len(idx))
	for _, r := range list {
		if _, ok := added[r.Title]; ok {
			continue
		}
		added[r.Title] = struct{}{}
		data.Nodes = append(data.Nodes, newNode(r))
	}

	linked := make(map[types.NetworkLink]struct{})
	for _, r := range list {
		for _, rel := range r.RelationshipList() {
			if _, ok := idx[rel]; !ok {
				continue
			}
			link := types.NetworkLink{Source: r.Title, Target: rel}
			if _, ok := linked[link]; ok {
				continue
			}
			linked[link] = struct{}{}
			data.Links = append(data.Links, link)
		}
	}
	return data
}

// BuildSelected builds the star graph of one resource: itself plus every
// relationship that resolves, each linked from self.
func BuildSelected(self types.Resource, list []types.Resource) types.NetworkData {
	idx := index(list)
	data := types.NetworkData{
		Nodes: []types.NetworkNode{newNode(self)},
		Links: []types.NetworkLink{},
	}

	seen := map[string]struct{}{self.Title: {}}
	for _, rel := range self.RelationshipList() {
		target, ok := idx[rel]
		if !ok {
			continue
		}
		if _, ok = seen[rel]; ok {
			continue
		}
		seen[rel] = struct{}{}
		data.Nodes = append(data.Nodes, newNode(target))
		data.Links = append(data.Links, types.NetworkLink{Source: self.Title, Target: rel})
	}
	return data
}
