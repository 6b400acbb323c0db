package sqlstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/resourcehub/resourcehub/pkg/utils"
)

type ConnectConfig interface {
	FormatDSN() string
}

// SqlProvider holds one master and any number of read replicas.
type SqlProvider struct {
	master   *sqlx.DB
	replicas []*sqlx.DB
	dbname   string
}

type TransactionKey struct{}

func (s *SqlProvider) GetTxFromCtx(ctx context.Context) *sqlx.Tx {
	if tx, ok := ctx.Value(TransactionKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return nil
}

func (s *SqlProvider) GetMaster() *sqlx.DB {
	return s.master
}

func (s *SqlProvider) GetReplica() *sqlx.DB {
	return s.replicas[utils.Random(0, len(s.replicas)-1)]
}

// Transaction runs next inside a transaction stored in ctx. Nested calls reuse the outer one.
func (s *SqlProvider) Transaction(ctx context.Context, next func(ctx context.Context) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if s.GetTxFromCtx(ctx) != nil {
		return next(ctx)
	}

	tx, err := s.GetMaster().BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transaction panic: %v", r)
		}
		if err != nil {
			slog.Error("Transaction rollbacked", slog.String("error", err.Error()))
			_ = tx.Rollback()
		}
	}()

	if err = next(context.WithValue(ctx, TransactionKey{}, tx)); err != nil {
		return err
	}

	return tx.Commit()
}

// 建立数据库连接
func initConnection(conf ConnectConfig) (*sqlx.DB, error) {
	return sqlx.Open("postgres", conf.FormatDSN())
}

func SetupProvider(m ConnectConfig, s ...ConnectConfig) (*SqlProvider, error) {
	master, err := initConnection(m)
	if err != nil {
		return nil, err
	}

	provider := &SqlProvider{master: master}
	for _, v := range s {
		replica, err := initConnection(v)
		if err != nil {
			return nil, err
		}
		provider.replicas = append(provider.replicas, replica)
	}

	if len(provider.replicas) == 0 {
		provider.replicas = append(provider.replicas, master)
	}
	return provider, nil
}

func (s *SqlProvider) Ping(ctx context.Context) error {
	return s.GetMaster().PingContext(ctx)
}

func (s *SqlProvider) GetDBName() (string, error) {
	if s.dbname == "" {
		var dbName string
		if err := s.GetMaster().QueryRow("SELECT current_database()").Scan(&dbName); err != nil {
			return "", err
		}
		s.dbname = dbName
	}

	return s.dbname, nil
}

func (s *SqlProvider) Close() error {
	for _, r := range s.replicas {
		if r != s.master {
			r.Close()
		}
	}
	return s.master.Close()
}
