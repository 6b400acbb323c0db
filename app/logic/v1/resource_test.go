package v1

import (
	"context"
	"math"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcehub/resourcehub/app/core"
	"github.com/resourcehub/resourcehub/pkg/catalog"
	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/types"
)

func titles(list []types.Resource) []string {
	res := make([]string, 0, len(list))
	for _, r := range list {
		res = append(res, r.Title)
	}
	return res
}

func TestValidateResourceForm(t *testing.T) {
	errs := ValidateResourceForm(types.ResourceForm{Title: "  ", URL: "not a url"})
	assert.Equal(t, types.FieldErrors{
		"title":       i18n.VALIDATE_TITLE_REQUIRED,
		"description": i18n.VALIDATE_DESCRIPTION_REQUIRED,
		"url":         i18n.VALIDATE_URL_INVALID,
	}, errs)

	errs = ValidateResourceForm(types.ResourceForm{Title: "a", Description: "b"})
	assert.Equal(t, types.FieldErrors{"url": i18n.VALIDATE_URL_REQUIRED}, errs)

	assert.Nil(t, ValidateResourceForm(types.ResourceForm{Title: "a", Description: "b", URL: "https://example.com"}))
}

func TestResourceListFilterByTag(t *testing.T) {
	c := newTestCore(t)
	l := NewResourceLogic(context.Background(), c)

	all, err := l.List(types.ListResourceOptions{}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, []string{"Go Tour", "cobra", "gin"}, titles(all.List))

	for _, tag := range []string{"tool", "tutorial", "web", "unknown"} {
		res, err := l.List(types.ListResourceOptions{Tag: tag}, 1, 0)
		require.NoError(t, err)

		var expect []string
		for _, r := range all.List {
			if r.HasTag(tag) {
				expect = append(expect, r.Title)
			}
		}
		assert.Equal(t, len(expect), res.Total, tag)
		if len(expect) > 0 {
			assert.Equal(t, expect, titles(res.List), tag)
		}
	}
}

func TestResourceListSearchSortPaginate(t *testing.T) {
	c := newTestCore(t)
	l := NewResourceLogic(context.Background(), c)

	res, err := l.List(types.ListResourceOptions{Query: "FRAMEWORK"}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"gin"}, titles(res.List))

	res, err = l.List(types.ListResourceOptions{Sort: types.SORT_CREATED, Order: types.ORDER_DESC}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"gin", "Go Tour", "cobra"}, titles(res.List))

	res, err = l.List(types.ListResourceOptions{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"gin"}, titles(res.List))
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, []int{1, 2}, res.Pages)

	res, err = l.List(types.ListResourceOptions{}, math.MaxInt, 2)
	require.NoError(t, err)
	assert.Empty(t, res.List)
	assert.Equal(t, 2, res.Page)

	res, err = l.List(types.ListResourceOptions{}, 3, math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, res.List)
	assert.Equal(t, 1, res.TotalPages)

	_, err = l.List(types.ListResourceOptions{Sort: "bogus"}, 1, 0)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ce.GetCode())
}

func TestResourceCreate(t *testing.T) {
	c := newTestCore(t)
	l := NewResourceLogic(context.Background(), c)

	before, err := c.Store().ResourceStore().Total(context.Background())
	require.NoError(t, err)

	r, fieldErrs, err := l.Create(types.ResourceForm{
		Title:         "Echo",
		Description:   "Another framework",
		URL:           "https://echo.labstack.com",
		Relationships: "gin",
	})
	require.NoError(t, err)
	assert.Nil(t, fieldErrs)
	require.NotNil(t, r)
	assert.NotEmpty(t, r.ID)
	assert.NotEmpty(t, r.CreationDate)

	after, err := c.Store().ResourceStore().Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	got, err := l.Get("Echo")
	require.NoError(t, err)
	assert.Equal(t, []string{"gin"}, []string(got.Relationships))
}

func TestResourceCreateInvalid(t *testing.T) {
	c := newTestCore(t)
	l := NewResourceLogic(context.Background(), c)

	r, fieldErrs, err := l.Create(types.ResourceForm{Description: "no title", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Equal(t, types.FieldErrors{"title": i18n.VALIDATE_TITLE_REQUIRED}, fieldErrs)

	total, err := c.Store().ResourceStore().Total(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestResourceCreateWriteBack(t *testing.T) {
	c := newTestCore(t, func(cfg *core.CoreConfig) {
		cfg.Catalog.WriteBack = true
	})
	l := NewResourceLogic(context.Background(), c)

	_, fieldErrs, err := l.Create(types.ResourceForm{Title: "Echo", Description: "framework", URL: "https://echo.labstack.com"})
	require.NoError(t, err)
	require.Nil(t, fieldErrs)

	doc, err := catalog.LoadDocument(c.Cfg().Catalog.ResourcesPath)
	require.NoError(t, err)
	assert.Len(t, doc.Resources, 4)
}

func TestResourceGetNotFound(t *testing.T) {
	l := NewResourceLogic(context.Background(), newTestCore(t))

	_, err := l.Get("nope")
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, ce.GetCode())
	assert.Equal(t, i18n.ERROR_RESOURCE_NOT_FOUND, ce.Message())
}

func TestResourceTags(t *testing.T) {
	l := NewResourceLogic(context.Background(), newTestCore(t))

	tags, err := l.Tags()
	require.NoError(t, err)
	assert.Equal(t, []string{"tool", "tutorial", "video", "web"}, tags)
}

func TestResourceImport(t *testing.T) {
	l := NewResourceLogic(context.Background(), newTestCore(t))

	form, err := l.Import([]byte(`{"title":"Echo","url":"https://echo.labstack.com","tags":["web"],"relationships":["gin","cobra"],"creationDate":"2020-01-01"}`))
	require.NoError(t, err)
	assert.Empty(t, form.CreationDate)
	assert.Equal(t, "Echo", form.Title)
	assert.Equal(t, "web", form.Tag)
	assert.Equal(t, "gin, cobra", form.Relationships)

	_, err = l.Import([]byte(`{"title":`))
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ce.GetCode())
}

func TestReadmeGenerate(t *testing.T) {
	md, err := NewReadmeLogic(context.Background(), newTestCore(t)).Generate(false)
	require.NoError(t, err)
	assert.Contains(t, md, "# Resource Collection")
	assert.Contains(t, md, "### [cobra](https://cobra.dev)")
}

func TestPublish(t *testing.T) {
	dir := t.TempDir()
	c := newTestCore(t, func(cfg *core.CoreConfig) {
		cfg.ObjectStorage.Driver = "local"
		cfg.ObjectStorage.LocalDir = dir
		cfg.ObjectStorage.StaticDomain = "https://cdn.example.com"
	})

	files, err := NewPublishLogic(context.Background(), c).Publish()
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "https://cdn.example.com/catalog/resources.json", files[0].URL)

	raw, err := os.ReadFile(dir + "/catalog/README.md")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "## Resources")
}

func TestPublishUnavailable(t *testing.T) {
	_, err := NewPublishLogic(context.Background(), newTestCore(t)).Publish()
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, ce.GetCode())
}
