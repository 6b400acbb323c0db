package types

import "strings"

// ResourceForm holds the raw add-resource form input.
type ResourceForm struct {
	Title            string `json:"title" form:"title" validate:"required"`
	Description      string `json:"description" form:"description" validate:"required"`
	URL              string `json:"url" form:"url" validate:"required,url"`
	Notes            string `json:"notes" form:"notes"`
	DateLastAccessed string `json:"dateLastAccessed" form:"dateLastAccessed"`
	Summary          string `json:"summary" form:"summary"`
	Image            string `json:"image" form:"image"`
	Tag              string `json:"tag" form:"tag"`
	NewTag           string `json:"newTag" form:"newTag"`
	Repo             string `json:"repo" form:"repo"`
	Relationships    string `json:"relationships" form:"relationships"` // comma separated titles
	CreationDate     string `json:"creationDate" form:"creationDate"`
	LastUpdatedDate  string `json:"lastUpdatedDate" form:"lastUpdatedDate"`
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f ResourceForm) Trimmed() ResourceForm {
	for _, p := range []*string{
		&f.Title, &f.Description, &f.URL, &f.Notes, &f.DateLastAccessed, &f.Summary,
		&f.Image, &f.Tag, &f.NewTag, &f.Repo, &f.Relationships, &f.CreationDate, &f.LastUpdatedDate,
	} {
		*p = strings.TrimSpace(*p)
	}
	return f
}

// ToResource builds the record appended on submit. Blank dates become now.
func (f ResourceForm) ToResource(id, now string) Resource {
	f = f.Trimmed()

	tag := f.Tag
	if tag == "" {
		tag = f.NewTag
	}

	r := Resource{
		ID:               id,
		Title:            f.Title,
		Description:      f.Description,
		URL:              f.URL,
		Notes:            f.Notes,
		DateLastAccessed: f.DateLastAccessed,
		Summary:          f.Summary,
		Image:            f.Image,
		Tag:              tag,
		Repo:             f.Repo,
		Tags:             []string{},
		Relationships:    []string{},
		CreationDate:     f.CreationDate,
		LastUpdatedDate:  f.LastUpdatedDate,
	}
	if tag != "" {
		r.Tags = []string{tag}
	}
	for _, v := range strings.Split(f.Relationships, ",") {
		if v = strings.TrimSpace(v); v != "" {
			r.Relationships = append(r.Relationships, v)
		}
	}
	if r.CreationDate == "" {
		r.CreationDate = now
	}
	if r.LastUpdatedDate == "" {
		r.LastUpdatedDate = now
	}
	return r
}

// FormFromResource prefills a form from an uploaded record. Dates are left
// blank so a submitted import is stamped with the submit time.
func FormFromResource(r Resource) ResourceForm {
	tag := r.Tag
	if tag == "" && len(r.TagSet()) > 0 {
		tag = r.TagSet()[0]
	}
	return ResourceForm{
		Title:            r.Title,
		Description:      r.Description,
		URL:              r.URL,
		Notes:            r.Notes,
		DateLastAccessed: r.DateLastAccessed,
		Summary:          r.Summary,
		Image:            r.Image,
		Tag:              tag,
		Repo:             r.Repo,
		Relationships:    strings.Join(r.RelationshipList(), ", "),
	}
}
