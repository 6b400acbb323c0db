package v1

import (
	"context"
	"net/http"

	"github.com/resourcehub/resourcehub/app/core"
	"github.com/resourcehub/resourcehub/pkg/catalog"
	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/graph"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/types"
)

type GraphLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewGraphLogic(ctx context.Context, core *core.Core) *GraphLogic {
	return &GraphLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *GraphLogic) Network() (*types.NetworkData, error) {
	list, err := l.core.Store().ResourceStore().ListAll(l.ctx)
	if err != nil {
		return nil, errors.New("GraphLogic.Network.ResourceStore.ListAll", i18n.ERROR_INTERNAL, err)
	}
	data := graph.BuildNetwork(list)
	return &data, nil
}

// Selected is the graph of one resource and the resources it points at.
func (l *GraphLogic) Selected(title string) (*types.NetworkData, error) {
	list, err := l.core.Store().ResourceStore().ListAll(l.ctx)
	if err != nil {
		return nil, errors.New("GraphLogic.Selected.ResourceStore.ListAll", i18n.ERROR_INTERNAL, err)
	}

	self, ok := catalog.FindByTitle(list, title)
	if !ok {
		return nil, errors.New("GraphLogic.Selected.FindByTitle", i18n.ERROR_RESOURCE_NOT_FOUND, nil).Code(http.StatusNotFound)
	}
	data := graph.BuildSelected(self, list)
	return &data, nil
}
