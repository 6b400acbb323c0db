package v1

import (
	"context"

	"github.com/resourcehub/resourcehub/app/core"
	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/readme"
	"github.com/resourcehub/resourcehub/pkg/types"
)

type ReadmeLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewReadmeLogic(ctx context.Context, core *core.Core) *ReadmeLogic {
	return &ReadmeLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *ReadmeLogic) Generate(groupByTag bool) (string, error) {
	list, err := l.core.Store().ResourceStore().ListAll(l.ctx)
	if err != nil {
		return "", errors.New("ReadmeLogic.Generate.ResourceStore.ListAll", i18n.ERROR_INTERNAL, err)
	}

	site := l.core.Cfg().Site
	return readme.Generate(&types.ResourceDocument{Resources: list}, readme.Options{
		Title:      site.Title,
		Tagline:    site.Tagline,
		GroupByTag: groupByTag,
	}), nil
}
