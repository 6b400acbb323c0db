package store

import (
	"context"
	"database/sql"

	"github.com/resourcehub/resourcehub/pkg/types"
)

// ErrNotFound is returned by every driver when a lookup has no match.
var ErrNotFound = sql.ErrNoRows

// ResourceStore keeps catalog entries in insertion order.
// There is no update or delete path.
type ResourceStore interface {
	// Create 追加一条资源记录
	Create(ctx context.Context, data types.Resource) error
	// GetByTitle 返回第一条标题匹配的记录
	GetByTitle(ctx context.Context, title string) (*types.Resource, error)
	GetByID(ctx context.Context, id string) (*types.Resource, error)
	// ListAll 按插入顺序返回全部记录
	ListAll(ctx context.Context) ([]types.Resource, error)
	Total(ctx context.Context) (int64, error)
	// Seed 仅在存储为空时写入初始文档
	Seed(ctx context.Context, list []types.Resource) error
}

type StarDataStore interface {
	Upsert(ctx context.Context, data types.RepositoryStarData) error
	Get(ctx context.Context, repo string) (*types.RepositoryStarData, error)
	List(ctx context.Context) ([]types.RepositoryStarData, error)
}

// Provider is implemented by every storage driver.
type Provider interface {
	ResourceStore() ResourceStore
	StarDataStore() StarDataStore
	Install() error
}
