package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/resourcehub/resourcehub/app/core"
	"github.com/resourcehub/resourcehub/app/store"
	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/github"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/types"
)

// 同一仓库的并发实时请求只打一次 GitHub
var liveGroup singleflight.Group

const maxRetryDelay = 10 * time.Second

type StarLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewStarLogic(ctx context.Context, core *core.Core) *StarLogic {
	return &StarLogic{
		ctx:  ctx,
		core: core,
	}
}

func newWidget(repo string, data *types.RepositoryStarData) *types.StarWidget {
	w := &types.StarWidget{
		Repo:    repo,
		History: []types.StarHistoryPoint{},
	}
	if data != nil {
		w.StarCount = data.StarCount
		if data.StarHistory != nil {
			w.History = data.StarHistory
		}
	}
	return w
}

// Widget reads the synced star data. An unknown repo yields an empty widget.
func (l *StarLogic) Widget(repo string) (*types.StarWidget, error) {
	if _, _, err := github.ParseRepo(repo); err != nil {
		return nil, errors.New("StarLogic.Widget.ParseRepo", i18n.ERROR_STAR_INVALID_REPO, err).Code(http.StatusBadRequest)
	}

	data, err := l.core.Store().StarDataStore().Get(l.ctx, repo)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, errors.New("StarLogic.Widget.StarDataStore.Get", i18n.ERROR_INTERNAL, err)
	}
	return newWidget(repo, data), nil
}

func liveCacheKey(repo string) string {
	return "star:live:" + repo
}

// Live fetches from GitHub through the cache. Failures never surface as an
// error; the widget carries an i18n message key in Error instead.
func (l *StarLogic) Live(repo string) *types.StarWidget {
	if _, _, err := github.ParseRepo(repo); err != nil {
		w := newWidget(repo, nil)
		w.Error = i18n.ERROR_STAR_INVALID_REPO
		return w
	}

	if raw, err := l.core.Cache().Get(l.ctx, liveCacheKey(repo)); err != nil {
		slog.Warn("failed to read star cache", slog.String("repo", repo), slog.String("error", err.Error()))
	} else if raw != "" {
		var data types.RepositoryStarData
		if err = json.Unmarshal([]byte(raw), &data); err == nil {
			return newWidget(repo, &data)
		}
	}

	v, err, _ := liveGroup.Do(repo, func() (any, error) {
		// 合并后的请求不跟随首个调用方的取消
		ctx, cancel := context.WithTimeout(context.WithoutCancel(l.ctx), l.fetchTimeout())
		defer cancel()
		return NewStarLogic(ctx, l.core).Fetch(repo)
	})
	if err != nil {
		slog.Error("failed to fetch live star data", slog.String("repo", repo), slog.String("error", err.Error()))
		w := newWidget(repo, nil)
		w.Error = starErrorMessage(err)
		return w
	}

	data := v.(*types.RepositoryStarData)
	if raw, err := json.Marshal(data); err == nil {
		if err = l.core.Cache().SetEx(context.WithoutCancel(l.ctx), liveCacheKey(repo), string(raw), l.core.Cfg().GitHub.CacheTTLDuration()); err != nil {
			slog.Warn("failed to write star cache", slog.String("repo", repo), slog.String("error", err.Error()))
		}
	}
	return newWidget(repo, data)
}

// fetchTimeout covers every retry attempt plus the backoff between them.
func (l *StarLogic) fetchTimeout() time.Duration {
	cfg := l.core.Cfg().GitHub
	attempts := time.Duration(max(cfg.Attempts, 1))
	return attempts*cfg.TimeoutDuration() + (attempts-1)*maxRetryDelay
}

func starErrorMessage(err error) string {
	switch {
	case errors.Is(err, github.ErrMissingToken):
		return i18n.ERROR_STAR_MISSING_TOKEN
	case errors.Is(err, github.ErrInvalidRepo):
		return i18n.ERROR_STAR_INVALID_REPO
	}
	return i18n.ERROR_STAR_FETCH_FAILED
}

// Fetch queries GitHub and stores the result.
func (l *StarLogic) Fetch(repo string) (*types.RepositoryStarData, error) {
	data, err := l.core.GitHub().FetchStarData(l.ctx, repo)
	if err != nil {
		return nil, err
	}
	if err = l.core.Store().StarDataStore().Upsert(l.ctx, *data); err != nil {
		return nil, errors.New("StarLogic.Fetch.StarDataStore.Upsert", i18n.ERROR_INTERNAL, err)
	}
	return data, nil
}

type SyncResult struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// SyncAll refreshes the star data of every resource with a repo. A failing
// repo is logged and skipped.
func (l *StarLogic) SyncAll() (*SyncResult, error) {
	list, err := l.core.Store().ResourceStore().ListAll(l.ctx)
	if err != nil {
		return nil, errors.New("StarLogic.SyncAll.ResourceStore.ListAll", i18n.ERROR_INTERNAL, err)
	}

	repos := lo.Uniq(lo.FilterMap(list, func(r types.Resource, _ int) (string, bool) {
		return r.Repo, r.Repo != ""
	}))
	res := &SyncResult{Total: len(repos)}
	if len(repos) == 0 {
		return res, nil
	}

	var success, failed atomic.Int32
	g, _ := errgroup.WithContext(l.ctx)
	g.SetLimit(l.core.Cfg().GitHub.SyncConcurrency)
	for _, repo := range repos {
		g.Go(func() error {
			if _, err := l.Fetch(repo); err != nil {
				failed.Add(1)
				l.core.Metrics().StarSyncInc("failed")
				slog.Error("failed to sync star data", slog.String("repo", repo), slog.String("error", err.Error()))
				return nil
			}
			success.Add(1)
			l.core.Metrics().StarSyncInc("success")
			return nil
		})
	}
	g.Wait()

	res.Success, res.Failed = int(success.Load()), int(failed.Load())
	if res.Success > 0 && l.core.Cfg().Catalog.StarDataPath != "" {
		if err = l.core.SaveStarData(l.ctx); err != nil {
			return res, errors.New("StarLogic.SyncAll.SaveStarData", i18n.ERROR_INTERNAL, err)
		}
	}
	return res, nil
}
