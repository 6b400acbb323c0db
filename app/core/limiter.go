package core

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/time/rate"
)

type LimitConfig struct {
	Limit int
}

type LimitOption func(l *LimitConfig)

func WithLimit(limit int) LimitOption {
	return func(l *LimitConfig) {
		l.Limit = limit
	}
}

type Limiter interface {
	Allow() bool
}

// UseLimiter returns the limiter for key, creating it on first use.
// Limit is the number of events allowed per minute.
func (s *Core) UseLimiter(key string, opts ...LimitOption) Limiter {
	cfg := &LimitConfig{
		Limit: s.cfg.Limit.WritePerMinute,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 60
	}

	return s.limiters.Upsert(key, nil, func(exist bool, valueInMap, _ *rate.Limiter) *rate.Limiter {
		if exist {
			return valueInMap
		}
		return rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.Limit)), cfg.Limit*2)
	})
}

func newLimiterMap() cmap.ConcurrentMap[string, *rate.Limiter] {
	return cmap.New[*rate.Limiter]()
}
