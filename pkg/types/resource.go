package types

import (
	"strings"

	"github.com/lib/pq"
)

// Resource is a single catalog entry.
type Resource struct {
	ID               string         `json:"id,omitempty" db:"id"`
	Title            string         `json:"title" db:"title"` // implicit key, not enforced unique
	Description      string         `json:"description" db:"description"`
	URL              string         `json:"url" db:"url"`
	Notes            string         `json:"notes,omitempty" db:"notes"`
	DateLastAccessed string         `json:"dateLastAccessed,omitempty" db:"date_last_accessed"`
	Summary          string         `json:"summary,omitempty" db:"summary"`
	Image            string         `json:"image,omitempty" db:"image"`
	Tag              string         `json:"tag,omitempty" db:"tag"`   // single category, used as graph node category
	Repo             string         `json:"repo,omitempty" db:"repo"` // github owner/name
	Tags             pq.StringArray `json:"tags,omitempty" db:"tags"`
	Relationships    pq.StringArray `json:"relationships,omitempty" db:"relationships"` // titles of related resources
	CreationDate     string         `json:"creationDate,omitempty" db:"creation_date"`
	LastUpdatedDate  string         `json:"lastUpdatedDate,omitempty" db:"last_updated_date"`
	CreatedAt        int64          `json:"-" db:"created_at"` // insertion order
}

// TagSet returns tags plus tag, deduplicated, in first-seen order.
func (r Resource) TagSet() []string {
	seen := make(map[string]struct{}, len(r.Tags)+1)
	res := make([]string, 0, len(r.Tags)+1)
	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		res = append(res, t)
	}
	for _, t := range r.Tags {
		add(t)
	}
	add(r.Tag)
	return res
}

func (r Resource) HasTag(tag string) bool {
	for _, t := range r.TagSet() {
		if t == tag {
			return true
		}
	}
	return false
}

// RelationshipList never returns nil.
func (r Resource) RelationshipList() []string {
	res := make([]string, 0, len(r.Relationships))
	for _, v := range r.Relationships {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}

// Category is the tag used to color graph nodes.
func (r Resource) Category() string {
	if r.Tag != "" {
		return r.Tag
	}
	if set := r.TagSet(); len(set) > 0 {
		return set[0]
	}
	return ""
}

type ResourceDocument struct {
	Resources []Resource `json:"resources"`
}

type SortField string

const (
	SORT_NONE        SortField = ""
	SORT_TITLE       SortField = "title"
	SORT_DESCRIPTION SortField = "description"
	SORT_URL         SortField = "url"
	SORT_CREATED     SortField = "created"
	SORT_UPDATED     SortField = "updated"
)

func (s SortField) Valid() bool {
	switch s {
	case SORT_NONE, SORT_TITLE, SORT_DESCRIPTION, SORT_URL, SORT_CREATED, SORT_UPDATED:
		return true
	}
	return false
}

type SortOrder string

const (
	ORDER_ASC  SortOrder = "asc"
	ORDER_DESC SortOrder = "desc"
)

type ListResourceOptions struct {
	Tag   string
	Query string
	Sort  SortField
	Order SortOrder
}

type ResourceListResult struct {
	List       []Resource `json:"list"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
	Pages      []int      `json:"pages"` // -1 marks an ellipsis
}
