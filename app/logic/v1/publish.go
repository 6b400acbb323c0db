package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"path"

	"github.com/resourcehub/resourcehub/app/core"
	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/types"
	"github.com/resourcehub/resourcehub/pkg/utils"
)

type PublishLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewPublishLogic(ctx context.Context, core *core.Core) *PublishLogic {
	return &PublishLogic{
		ctx:  ctx,
		core: core,
	}
}

type PublishedFile struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Publish uploads the resource document, the star data and the generated
// README under PUBLISH_PATH_PREFIX.
func (l *PublishLogic) Publish() ([]PublishedFile, error) {
	fs := l.core.FileStorage()

	resources, err := l.core.Store().ResourceStore().ListAll(l.ctx)
	if err != nil {
		return nil, errors.New("PublishLogic.Publish.ResourceStore.ListAll", i18n.ERROR_INTERNAL, err)
	}
	stars, err := l.core.Store().StarDataStore().List(l.ctx)
	if err != nil {
		return nil, errors.New("PublishLogic.Publish.StarDataStore.List", i18n.ERROR_INTERNAL, err)
	}
	md, err := NewReadmeLogic(l.ctx, l.core).Generate(false)
	if err != nil {
		return nil, errors.Trace("PublishLogic.Publish", err)
	}

	resourceRaw, err := json.MarshalIndent(types.ResourceDocument{Resources: resources}, "", "  ")
	if err != nil {
		return nil, errors.New("PublishLogic.Publish.MarshalResources", i18n.ERROR_INTERNAL, err)
	}
	starRaw, err := json.MarshalIndent(types.StarDataDocument{Projects: stars}, "", "  ")
	if err != nil {
		return nil, errors.New("PublishLogic.Publish.MarshalStars", i18n.ERROR_INTERNAL, err)
	}

	files := []struct {
		name    string
		content []byte
	}{
		{"resources.json", resourceRaw},
		{"star-data.json", starRaw},
		{"README.md", []byte(md)},
	}

	res := make([]PublishedFile, 0, len(files))
	for _, f := range files {
		key := path.Join(types.PUBLISH_PATH_PREFIX, f.name)
		if err = fs.SaveFile(l.ctx, key, f.content, utils.GetMimeTypeByExtension(path.Ext(f.name))); err != nil {
			if errors.Is(err, core.ErrStorageUnsupported) {
				return nil, errors.New("PublishLogic.Publish.SaveFile", i18n.ERROR_PUBLISH_UNAVAILABLE, err).Code(http.StatusServiceUnavailable)
			}
			return nil, errors.New("PublishLogic.Publish.SaveFile", i18n.ERROR_INTERNAL, err)
		}
		url, err := core.PublicURL(l.ctx, fs, key)
		if err != nil {
			return nil, errors.New("PublishLogic.Publish.PublicURL", i18n.ERROR_INTERNAL, err)
		}
		res = append(res, PublishedFile{Key: key, URL: url})
	}
	return res, nil
}
