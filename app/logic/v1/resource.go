package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/resourcehub/resourcehub/app/core"
	"github.com/resourcehub/resourcehub/app/store"
	"github.com/resourcehub/resourcehub/pkg/catalog"
	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/pagination"
	"github.com/resourcehub/resourcehub/pkg/types"
	"github.com/resourcehub/resourcehub/pkg/utils"
)

type ResourceLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewResourceLogic(ctx context.Context, core *core.Core) *ResourceLogic {
	return &ResourceLogic{
		ctx:  ctx,
		core: core,
	}
}

// List runs tag filter, search and sort over the whole catalog, then paginates.
// pageSize <= 0 returns everything on a single page.
func (l *ResourceLogic) List(opts types.ListResourceOptions, page, pageSize int) (*types.ResourceListResult, error) {
	if !opts.Sort.Valid() {
		return nil, errors.New("ResourceLogic.List.Sort", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	list, err := l.core.Store().ResourceStore().ListAll(l.ctx)
	if err != nil {
		return nil, errors.New("ResourceLogic.List.ResourceStore.ListAll", i18n.ERROR_INTERNAL, err)
	}

	list = catalog.FilterByTag(list, opts.Tag)
	list = catalog.Search(list, opts.Query)
	list = catalog.Sort(list, opts.Sort, opts.Order)

	if page < 1 {
		page = 1
	}
	total := len(list)
	totalPages := pagination.TotalPages(total, pageSize)
	if pageSize <= 0 {
		page = 1
		if total > 0 {
			totalPages = 1
		}
	}

	items := pagination.Slice(list, page, pageSize)
	page = min(page, max(totalPages, 1))

	return &types.ResourceListResult{
		List:       items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Pages:      pagination.Range(page, totalPages, pagination.DefaultSiblings),
	}, nil
}

// Create appends exactly one record when the form is valid. Invalid input
// returns the per-field messages and stores nothing.
func (l *ResourceLogic) Create(form types.ResourceForm) (*types.Resource, types.FieldErrors, error) {
	if fieldErrs := ValidateResourceForm(form); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	resource := form.ToResource(utils.GenUniqIDStr(), utils.NowRFC3339())
	resource.CreationDate = utils.NormalizeDate(resource.CreationDate)
	resource.LastUpdatedDate = utils.NormalizeDate(resource.LastUpdatedDate)
	if err := l.core.Store().ResourceStore().Create(l.ctx, resource); err != nil {
		return nil, nil, errors.New("ResourceLogic.Create.ResourceStore.Create", i18n.ERROR_INTERNAL, err)
	}
	if total, err := l.core.Store().ResourceStore().Total(l.ctx); err == nil {
		l.core.Metrics().SetResourceTotal(total)
	}

	if l.core.Cfg().Catalog.WriteBack {
		if err := l.core.SaveCatalog(l.ctx); err != nil {
			slog.Error("failed to write resource document", slog.String("path", l.core.Cfg().Catalog.ResourcesPath), slog.String("error", err.Error()))
		}
	}
	return &resource, nil, nil
}

func (l *ResourceLogic) Get(title string) (*types.Resource, error) {
	if title == "" {
		return nil, errors.New("ResourceLogic.Get.EmptyTitle", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	data, err := l.core.Store().ResourceStore().GetByTitle(l.ctx, title)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("ResourceLogic.Get.ResourceStore.GetByTitle", i18n.ERROR_RESOURCE_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("ResourceLogic.Get.ResourceStore.GetByTitle", i18n.ERROR_INTERNAL, err)
	}
	return data, nil
}

// Tags lists schema tags first, then any other tag used by the data.
func (l *ResourceLogic) Tags() ([]string, error) {
	list, err := l.core.Store().ResourceStore().ListAll(l.ctx)
	if err != nil {
		return nil, errors.New("ResourceLogic.Tags.ResourceStore.ListAll", i18n.ERROR_INTERNAL, err)
	}
	return catalog.CollectTags(l.core.SchemaTags(), list), nil
}

// Import decodes an uploaded resource JSON into a prefilled form. Nothing is stored.
func (l *ResourceLogic) Import(raw []byte) (*types.ResourceForm, error) {
	var data types.Resource
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.New("ResourceLogic.Import.Unmarshal", i18n.ERROR_IMPORT_MALFORMED, err).Code(http.StatusBadRequest)
	}
	form := types.FormFromResource(data)
	return &form, nil
}
