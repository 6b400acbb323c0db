package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/resourcehub/resourcehub/app/store"
	"github.com/resourcehub/resourcehub/app/store/memstore"
	"github.com/resourcehub/resourcehub/app/store/sqlstore"
	"github.com/resourcehub/resourcehub/pkg/catalog"
	"github.com/resourcehub/resourcehub/pkg/github"
	"github.com/resourcehub/resourcehub/pkg/types"
	"github.com/resourcehub/resourcehub/pkg/utils"
)

type Core struct {
	cfg        CoreConfig
	httpEngine *gin.Engine
	metrics    *Metrics

	stores      store.Provider
	redis       redis.UniversalClient
	cache       types.Cache
	github      *github.Client
	fileStorage FileStorage
	semaphore   *SemaphoreManager

	limiters cmap.ConcurrentMap[string, *rate.Limiter]

	schemaTags []string
	// writeMu 串行化资源文档的写回
	writeMu sync.Mutex
}

func setupLogger(cfg Log) {
	var writer io.Writer = os.Stdout
	if cfg.Path != "" {
		writer = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28,   //days
			Compress:   true, // disabled by default
		}
	}
	l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(l)
}

// SetupCore wires logging, metrics, storage, cache and the GitHub client, then
// seeds the store from the catalog documents.
func SetupCore(cfg CoreConfig) (*Core, error) {
	cfg.SetDefaults()
	setupLogger(cfg.Log)
	utils.SetupIDWorker(1)

	core := &Core{
		cfg:        cfg,
		httpEngine: gin.New(),
		metrics:    NewMetrics("resourcehub", "core", prometheus.NewRegistry()),
		limiters:   newLimiterMap(),
	}
	core.semaphore = NewSemaphoreManager(core)

	core.redis = setupRedis(cfg.Redis)
	if core.redis != nil {
		core.cache = &Cache{redis: core.redis, prefix: cfg.Redis.KeyPrefix}
	} else {
		core.cache = NewMemoryCache()
	}

	core.github = github.NewClient(cfg.GitHub.Token,
		github.WithEndpoint(cfg.GitHub.Endpoint),
		github.WithHTTPClient(&http.Client{Timeout: cfg.GitHub.TimeoutDuration()}),
		github.WithBackoff(cfg.GitHub.Attempts, 4*time.Second, 10*time.Second),
		github.WithObserver(func(cost time.Duration, err error) {
			core.metrics.GithubRequestObserve(cost.Seconds(), err != nil)
		}),
	)

	var err error
	if core.fileStorage, err = SetupObjectStorage(cfg.ObjectStorage); err != nil {
		return nil, fmt.Errorf("setup object storage: %w", err)
	}

	if err = setupStore(core); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = core.loadCatalog(ctx); err != nil {
		return nil, err
	}
	return core, nil
}

func setupStore(core *Core) error {
	switch strings.ToLower(core.cfg.Store.Driver) {
	case types.STORE_DRIVER_POSTGRES:
		provider, err := sqlstore.Setup(core.cfg.Postgres)
		if err != nil {
			return fmt.Errorf("setup postgres store: %w", err)
		}
		core.stores = provider
	case types.STORE_DRIVER_MEMORY:
		core.stores = memstore.NewProvider()
	default:
		return fmt.Errorf("unknown store driver %q", core.cfg.Store.Driver)
	}

	// 执行数据库表初始化
	if err := core.stores.Install(); err != nil {
		return fmt.Errorf("install store: %w", err)
	}
	slog.Info("store ready", slog.String("driver", core.cfg.Store.Driver))
	return nil
}

// loadCatalog seeds the store from the resource document and the static star data.
// Missing documents are not fatal.
func (s *Core) loadCatalog(ctx context.Context) error {
	if doc, err := catalog.LoadDocument(s.cfg.Catalog.ResourcesPath); err != nil {
		slog.Warn("failed to load resource document", slog.String("path", s.cfg.Catalog.ResourcesPath), slog.String("error", err.Error()))
	} else {
		for i := range doc.Resources {
			if doc.Resources[i].ID == "" {
				doc.Resources[i].ID = utils.GenUniqIDStr()
			}
		}
		if err = s.stores.ResourceStore().Seed(ctx, doc.Resources); err != nil {
			return fmt.Errorf("seed resources: %w", err)
		}
		if total, err := s.stores.ResourceStore().Total(ctx); err == nil {
			s.metrics.SetResourceTotal(total)
		}
	}

	if tags, err := catalog.LoadSchemaTags(s.cfg.Catalog.SchemaPath); err != nil {
		slog.Warn("failed to load schema document", slog.String("path", s.cfg.Catalog.SchemaPath), slog.String("error", err.Error()))
	} else {
		s.schemaTags = tags
	}
	if len(s.schemaTags) == 0 {
		s.schemaTags = append([]string{}, types.DEFAULT_TAGS...)
	}

	stars, err := catalog.LoadStarData(s.cfg.Catalog.StarDataPath)
	if err != nil {
		slog.Warn("failed to load star data", slog.String("path", s.cfg.Catalog.StarDataPath), slog.String("error", err.Error()))
		return nil
	}
	for _, p := range stars.Projects {
		if err = s.stores.StarDataStore().Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed star data: %w", err)
		}
	}
	return nil
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) Store() store.Provider {
	return s.stores
}

// Redis is nil when redis is not configured.
func (s *Core) Redis() redis.UniversalClient {
	return s.redis
}

func (s *Core) Cache() types.Cache {
	return s.cache
}

func (s *Core) GitHub() *github.Client {
	return s.github
}

func (s *Core) FileStorage() FileStorage {
	return s.fileStorage
}

func (s *Core) Semaphore() *SemaphoreManager {
	return s.semaphore
}

// SchemaTags are the enumerated tags of the schema document.
func (s *Core) SchemaTags() []string {
	return s.schemaTags
}

// SaveCatalog writes the current resources back to the resource document.
func (s *Core) SaveCatalog(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	list, err := s.stores.ResourceStore().ListAll(ctx)
	if err != nil {
		return err
	}
	return catalog.SaveDocument(s.cfg.Catalog.ResourcesPath, &types.ResourceDocument{Resources: list})
}

// SaveStarData writes the star data store back to the star data document.
func (s *Core) SaveStarData(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	list, err := s.stores.StarDataStore().List(ctx)
	if err != nil {
		return err
	}
	return catalog.SaveStarData(s.cfg.Catalog.StarDataPath, &types.StarDataDocument{Projects: list})
}

func (s *Core) Close() {
	if s.redis != nil {
		s.redis.Close()
	}
	if p, ok := s.stores.(*sqlstore.Provider); ok {
		p.Close()
	}
}
