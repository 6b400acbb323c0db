package core

import (
	"context"
	"errors"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/redis/go-redis/v9"

	"github.com/resourcehub/resourcehub/pkg/types"
)

var _ types.Cache = (*Cache)(nil)

// Cache is backed by redis.
type Cache struct {
	redis  redis.UniversalClient
	prefix string
}

func (c *Cache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.redis.Expire(ctx, c.prefix+key, expiration).Err()
}

func (c *Cache) SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error {
	return c.redis.SetEx(ctx, c.prefix+key, value, expiresAt).Err()
}

// Get returns "" and no error on a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	res, err := c.redis.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return res, err
}

type memoryItem struct {
	value    string
	expireAt time.Time
}

// MemoryCache 未配置 redis 时使用的进程内缓存
type MemoryCache struct {
	items cmap.ConcurrentMap[string, memoryItem]
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: cmap.New[memoryItem]()}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	item, ok := c.items.Get(key)
	if !ok {
		return "", nil
	}
	if time.Now().After(item.expireAt) {
		c.items.Remove(key)
		return "", nil
	}
	return item.value, nil
}

func (c *MemoryCache) SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error {
	c.items.Set(key, memoryItem{value: value, expireAt: time.Now().Add(expiresAt)})
	return nil
}

func (c *MemoryCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	c.items.Upsert(key, memoryItem{}, func(exist bool, valueInMap, newValue memoryItem) memoryItem {
		if !exist {
			return memoryItem{expireAt: time.Now()}
		}
		valueInMap.expireAt = time.Now().Add(expiration)
		return valueInMap
	})
	return nil
}

func setupRedis(cfg RedisConfig) redis.UniversalClient {
	if !cfg.Enabled() {
		return nil
	}

	opts := &redis.UniversalOptions{
		Addrs:    []string{cfg.Addr},
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
	if cfg.Cluster {
		opts.Addrs = cfg.ClusterAddrs
		opts.DB = 0
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = time.Duration(cfg.DialTimeout) * time.Second
	}
	return redis.NewUniversalClient(opts)
}
