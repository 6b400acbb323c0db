package process

import (
	"context"
	"log/slog"
	"time"

	"github.com/resourcehub/resourcehub/app/core"
	v1 "github.com/resourcehub/resourcehub/app/logic/v1"
	"github.com/resourcehub/resourcehub/pkg/register"
	"github.com/resourcehub/resourcehub/pkg/safe"
)

func init() {
	register.RegisterFunc[*Process](ProcessKey{}, func(p *Process) {
		expr := p.Core().Cfg().GitHub.SyncCron
		if _, err := p.Cron().AddFunc(expr, func() {
			safe.RunWithLog(func() {
				SyncStars(context.Background(), p.Core())
			}, "star-sync")
		}); err != nil {
			slog.Error("failed to schedule star sync", slog.String("cron", expr), slog.String("error", err.Error()))
		}
	})
}

// SyncStars refreshes star data for every resource with a repo. Only one
// sync runs at a time, across instances when redis is configured.
func SyncStars(ctx context.Context, core *core.Core) (*v1.SyncResult, bool) {
	sem := core.Semaphore().StarSync()
	if !sem.TryAcquire() {
		slog.Info("star sync already running, skip")
		return nil, false
	}
	defer sem.Release()

	if !core.GitHub().HasToken() {
		slog.Warn("github token is not configured, skip star sync")
		return nil, false
	}

	start := time.Now()
	res, err := v1.NewStarLogic(ctx, core).SyncAll()
	if err != nil {
		slog.Error("star sync failed", slog.String("error", err.Error()))
	}
	if res != nil {
		slog.Info("star sync finished",
			slog.Int("total", res.Total),
			slog.Int("success", res.Success),
			slog.Int("failed", res.Failed),
			slog.Duration("cost", time.Since(start)))
	}
	return res, true
}
