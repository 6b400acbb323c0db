package core

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Semaphore interface {
	TryAcquire() bool
	Release()
}

// DistributedSemaphore 分布式信号量，基于 Redis 实现
type DistributedSemaphore struct {
	redis      redis.UniversalClient
	key        string
	maxPermits int
	timeout    time.Duration
}

// NewDistributedSemaphore 创建分布式信号量
func NewDistributedSemaphore(redis redis.UniversalClient, key string, maxPermits int, timeout time.Duration) *DistributedSemaphore {
	return &DistributedSemaphore{
		redis:      redis,
		key:        key,
		maxPermits: maxPermits,
		timeout:    timeout,
	}
}

const acquireScript = `
	local key = KEYS[1]
	local max_permits = tonumber(ARGV[1])
	local timeout = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', key) or '0')

	if current < max_permits then
		redis.call('INCR', key)
		redis.call('EXPIRE', key, timeout)
		return 1
	else
		return 0
	end
`

const releaseScript = `
	local key = KEYS[1]
	local current = tonumber(redis.call('GET', key) or '0')

	if current > 0 then
		redis.call('DECR', key)
		return 1
	else
		return 0
	end
`

// TryAcquire 尝试获取信号量许可
func (s *DistributedSemaphore) TryAcquire() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := s.redis.Eval(ctx, acquireScript, []string{s.key}, s.maxPermits, int(s.timeout.Seconds())).Int()
	if err != nil {
		return false
	}
	return result == 1
}

// Release 释放信号量许可
func (s *DistributedSemaphore) Release() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.redis.Eval(ctx, releaseScript, []string{s.key})
}

// LocalSemaphore is used when redis is not configured.
type LocalSemaphore struct {
	permits chan struct{}
}

func NewLocalSemaphore(maxPermits int) *LocalSemaphore {
	if maxPermits <= 0 {
		maxPermits = 1
	}
	return &LocalSemaphore{permits: make(chan struct{}, maxPermits)}
}

func (s *LocalSemaphore) TryAcquire() bool {
	select {
	case s.permits <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *LocalSemaphore) Release() {
	select {
	case <-s.permits:
	default:
	}
}

// SemaphoreManager 信号量管理器，统一管理所有信号量
type SemaphoreManager struct {
	core         *Core
	starSync     Semaphore
	starSyncOnce sync.Once
}

func NewSemaphoreManager(core *Core) *SemaphoreManager {
	return &SemaphoreManager{
		core: core,
	}
}

// StarSync 保证同一时间只有一个 star 同步任务在运行（懒加载）
func (m *SemaphoreManager) StarSync() Semaphore {
	m.starSyncOnce.Do(func() {
		if m.core.Redis() == nil {
			m.starSync = NewLocalSemaphore(1)
			return
		}
		m.starSync = NewDistributedSemaphore(
			m.core.Redis(),
			m.core.cfg.Redis.KeyPrefix+"semaphore:star_sync",
			1,
			time.Hour,
		)
	})
	return m.starSync
}
