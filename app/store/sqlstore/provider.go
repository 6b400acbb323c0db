package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/resourcehub/resourcehub/app/store"
	"github.com/resourcehub/resourcehub/pkg/register"
	"github.com/resourcehub/resourcehub/pkg/sqlstore"
	"github.com/resourcehub/resourcehub/pkg/types"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type Provider struct {
	*sqlstore.SqlProvider
	stores *Stores
}

type Stores struct {
	store.ResourceStore
	store.StarDataStore
}

type RegisterKey struct{}

// Setup 连接数据库并初始化所有通过 register 注册的 store
func Setup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) (*Provider, error) {
	sp, err := sqlstore.SetupProvider(m, s...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = sp.Ping(ctx); err != nil {
		sp.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if name, err := sp.GetDBName(); err == nil {
		slog.Info("postgres connected", slog.String("database", name))
	}

	provider := &Provider{
		SqlProvider: sp,
		stores:      &Stores{},
	}
	register.Run(RegisterKey{}, provider)
	return provider, nil
}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) *Provider {
	provider, err := Setup(m, s...)
	if err != nil {
		panic(err)
	}
	return provider
}

// Install 执行尚未执行过的内置迁移文件
func (p *Provider) Install() error {
	if err := p.ensureMigrationTable(); err != nil {
		return err
	}

	files, err := CreateTableFiles.ReadDir(".")
	if err != nil {
		return err
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		executed, err := p.isFileExecuted(file.Name())
		if err != nil {
			return err
		}
		if executed {
			continue
		}

		raw, err := CreateTableFiles.ReadFile(file.Name())
		if err != nil {
			return err
		}

		if _, err = p.GetMaster().Exec(string(raw)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", file.Name(), err)
		}

		if err = p.markFileExecuted(file.Name()); err != nil {
			return err
		}
		slog.Info("migration executed", slog.String("file", file.Name()))
	}
	return nil
}

func migrationTable() string {
	return types.TABLE_PREFIX + "schema_migrations"
}

func (p *Provider) ensureMigrationTable() error {
	_, err := p.GetMaster().Exec(`
CREATE TABLE IF NOT EXISTS ` + migrationTable() + ` (
    filename VARCHAR(255) PRIMARY KEY,
    executed_at BIGINT NOT NULL
);`)
	return err
}

func (p *Provider) isFileExecuted(filename string) (bool, error) {
	var count int
	err := p.GetMaster().Get(&count, "SELECT COUNT(*) FROM "+migrationTable()+" WHERE filename = $1", filename)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p *Provider) markFileExecuted(filename string) error {
	_, err := p.GetMaster().Exec(
		"INSERT INTO "+migrationTable()+" (filename, executed_at) VALUES ($1, $2) ON CONFLICT (filename) DO NOTHING",
		filename, time.Now().Unix())
	return err
}

func (p *Provider) ResourceStore() store.ResourceStore {
	return p.stores.ResourceStore
}

func (p *Provider) StarDataStore() store.StarDataStore {
	return p.stores.StarDataStore
}
