package catalog

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/resourcehub/resourcehub/pkg/types"
)

// FilterByTag keeps the resources whose tag set contains tag.
// An empty tag returns a copy of the full list.
func FilterByTag(list []types.Resource, tag string) []types.Resource {
	if tag == "" {
		return append([]types.Resource{}, list...)
	}
	return lo.Filter(list, func(item types.Resource, _ int) bool {
		return item.HasTag(tag)
	})
}

// Search does a case-insensitive substring match over the text fields and tags.
func Search(list []types.Resource, q string) []types.Resource {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return append([]types.Resource{}, list...)
	}
	return lo.Filter(list, func(item types.Resource, _ int) bool {
		fields := append([]string{item.Title, item.Description, item.Notes, item.Summary, item.URL}, item.TagSet()...)
		return lo.ContainsBy(fields, func(s string) bool {
			return strings.Contains(strings.ToLower(s), q)
		})
	})
}

// Sort returns a sorted copy, keeping insertion order for equal keys.
func Sort(list []types.Resource, field types.SortField, order types.SortOrder) []types.Resource {
	res := append([]types.Resource{}, list...)
	key := sortKey(field)
	if key == nil {
		return res
	}

	sort.SliceStable(res, func(i, j int) bool {
		a, b := key(res[i]), key(res[j])
		if order == types.ORDER_DESC {
			return a > b
		}
		return a < b
	})
	return res
}

func sortKey(field types.SortField) func(types.Resource) string {
	switch field {
	case types.SORT_TITLE:
		return func(r types.Resource) string { return strings.ToLower(r.Title) }
	case types.SORT_DESCRIPTION:
		return func(r types.Resource) string { return strings.ToLower(r.Description) }
	case types.SORT_URL:
		return func(r types.Resource) string { return strings.ToLower(r.URL) }
	case types.SORT_CREATED:
		return func(r types.Resource) string { return r.CreationDate }
	case types.SORT_UPDATED:
		return func(r types.Resource) string { return r.LastUpdatedDate }
	}
	return nil
}

// CollectTags lists schema tags first, then any other tag found in the data.
func CollectTags(schemaTags []string, list []types.Resource) []string {
	all := append([]string{}, schemaTags...)
	for _, item := range list {
		all = append(all, item.TagSet()...)
	}
	return lo.Uniq(lo.Compact(all))
}

// FindByTitle returns the first resource with the given title.
func FindByTitle(list []types.Resource, title string) (types.Resource, bool) {
	return lo.Find(list, func(item types.Resource) bool {
		return item.Title == title
	})
}
