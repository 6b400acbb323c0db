package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/resourcehub/resourcehub/pkg/register"
	"github.com/resourcehub/resourcehub/pkg/types"
	"github.com/resourcehub/resourcehub/pkg/utils"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.ResourceStore = NewResourceStore(provider)
	})
}

// ResourceStore 处理 rh_resource 表的操作
type ResourceStore struct {
	CommonFields
	tx func(ctx context.Context, next func(ctx context.Context) error) error
}

type transactor interface {
	SqlProviderAchieve
	Transaction(ctx context.Context, next func(ctx context.Context) error) error
}

func NewResourceStore(provider transactor) *ResourceStore {
	repo := &ResourceStore{tx: provider.Transaction}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_RESOURCE)
	repo.SetAllColumns("id", "title", "description", "url", "notes", "date_last_accessed", "summary",
		"image", "tag", "repo", "tags", "relationships", "creation_date", "last_updated_date", "created_at")
	return repo
}

func (s *ResourceStore) insert(data types.Resource) sq.InsertBuilder {
	if data.ID == "" {
		data.ID = utils.GenUniqIDStr()
	}
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().UnixNano()
	}
	return sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.Title, data.Description, data.URL, data.Notes, data.DateLastAccessed, data.Summary,
			data.Image, data.Tag, data.Repo, pq.StringArray(data.TagSet()), pq.StringArray(data.RelationshipList()),
			data.CreationDate, data.LastUpdatedDate, data.CreatedAt)
}

// Create 追加新的资源记录
func (s *ResourceStore) Create(ctx context.Context, data types.Resource) error {
	queryString, args, err := s.insert(data).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ResourceStore) get(ctx context.Context, where sq.Eq) (*types.Resource, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(where).OrderBy("created_at").Limit(1)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Resource
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByTitle 返回最早插入的同名资源
func (s *ResourceStore) GetByTitle(ctx context.Context, title string) (*types.Resource, error) {
	return s.get(ctx, sq.Eq{"title": title})
}

func (s *ResourceStore) GetByID(ctx context.Context, id string) (*types.Resource, error) {
	return s.get(ctx, sq.Eq{"id": id})
}

func (s *ResourceStore) ListAll(ctx context.Context) ([]types.Resource, error) {
	queryString, args, err := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at").ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Resource
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ResourceStore) Total(ctx context.Context) (int64, error) {
	queryString, args, err := sq.Select("COUNT(*)").From(s.GetTable()).ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var res int64
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return 0, err
	}
	return res, nil
}

// Seed 在表为空时批量写入初始文档
func (s *ResourceStore) Seed(ctx context.Context, list []types.Resource) error {
	total, err := s.Total(ctx)
	if err != nil || total > 0 || len(list) == 0 {
		return err
	}

	return s.tx(ctx, func(ctx context.Context) error {
		base := time.Now().UnixNano()
		for i, item := range list {
			if item.CreatedAt == 0 {
				item.CreatedAt = base + int64(i)
			}
			if err := s.Create(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
}
