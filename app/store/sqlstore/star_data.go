package sqlstore

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/resourcehub/resourcehub/pkg/register"
	"github.com/resourcehub/resourcehub/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.StarDataStore = NewStarDataStore(provider)
	})
}

// StarDataStore 处理 rh_star_data 表的操作
type StarDataStore struct {
	CommonFields
}

func NewStarDataStore(provider SqlProviderAchieve) *StarDataStore {
	repo := &StarDataStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_STAR_DATA)
	repo.SetAllColumns("repo_name", "star_count", "star_history", "updated_at")
	return repo
}

type starDataRow struct {
	RepoName    string `db:"repo_name"`
	StarCount   int    `db:"star_count"`
	StarHistory []byte `db:"star_history"`
	UpdatedAt   int64  `db:"updated_at"`
}

func (r starDataRow) toStarData() (types.RepositoryStarData, error) {
	data := types.RepositoryStarData{
		RepoName:  r.RepoName,
		StarCount: r.StarCount,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.StarHistory) > 0 {
		if err := json.Unmarshal(r.StarHistory, &data.StarHistory); err != nil {
			return data, err
		}
	}
	if data.StarHistory == nil {
		data.StarHistory = []types.StarHistoryPoint{}
	}
	return data, nil
}

func (s *StarDataStore) Upsert(ctx context.Context, data types.RepositoryStarData) error {
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}
	if data.StarHistory == nil {
		data.StarHistory = []types.StarHistoryPoint{}
	}
	history, err := json.Marshal(data.StarHistory)
	if err != nil {
		return err
	}

	query := sq.Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.RepoName, data.StarCount, string(history), data.UpdatedAt).
		Suffix("ON CONFLICT (repo_name) DO UPDATE SET star_count = EXCLUDED.star_count, star_history = EXCLUDED.star_history, updated_at = EXCLUDED.updated_at")

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *StarDataStore) Get(ctx context.Context, repo string) (*types.RepositoryStarData, error) {
	queryString, args, err := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"repo_name": repo}).ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var row starDataRow
	if err = s.GetReplica(ctx).Get(&row, queryString, args...); err != nil {
		return nil, err
	}
	data, err := row.toStarData()
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *StarDataStore) List(ctx context.Context) ([]types.RepositoryStarData, error) {
	queryString, args, err := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("repo_name").ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var rows []starDataRow
	if err = s.GetReplica(ctx).Select(&rows, queryString, args...); err != nil {
		return nil, err
	}

	res := make([]types.RepositoryStarData, 0, len(rows))
	for _, row := range rows {
		data, err := row.toStarData()
		if err != nil {
			return nil, err
		}
		res = append(res, data)
	}
	return res, nil
}
