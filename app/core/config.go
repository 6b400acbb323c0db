package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/resourcehub/resourcehub/pkg/types"
)

// LoadBaseConfig reads a toml file, or the environment when path is empty.
func LoadBaseConfig(path string) (CoreConfig, error) {
	if path == "" {
		return LoadBaseConfigFromENV(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return CoreConfig{}, err
	}

	conf := &CoreConfig{}
	conf.SetConfigBytes(raw)

	if err = toml.Unmarshal(raw, conf); err != nil {
		return CoreConfig{}, err
	}
	if conf.GitHub.Token == "" {
		conf.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	conf.SetDefaults()
	return *conf, nil
}

func (c CoreConfig) LoadCustomConfig(cfg any) error {
	if len(c.bytes) == 0 {
		return nil
	}
	return toml.Unmarshal(c.bytes, cfg)
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	c.SetDefaults()
	return c
}

type CoreConfig struct {
	Addr          string              `toml:"addr"`
	Log           Log                 `toml:"log"`
	Store         StoreConfig         `toml:"store"`
	Postgres      PGConfig            `toml:"postgres"`
	Redis         RedisConfig         `toml:"redis"`
	Catalog       CatalogConfig       `toml:"catalog"`
	GitHub        GitHubConfig        `toml:"github"`
	ObjectStorage ObjectStorageDriver `toml:"object_storage"`
	Site          Site                `toml:"site"`
	Limit         LimitSettings       `toml:"limit"`

	bytes []byte `toml:"-"`
}

func (c *CoreConfig) SetConfigBytes(raw []byte) {
	c.bytes = raw
}

func (c *CoreConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":33033"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = types.STORE_DRIVER_MEMORY
	}
	c.Catalog.SetDefaults()
	c.GitHub.SetDefaults()
	c.Site.SetDefaults()
	if c.Limit.WritePerMinute <= 0 {
		c.Limit.WritePerMinute = 30
	}
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("RESOURCEHUB_SERVICE_ADDRESS")
	c.Store.Driver = os.Getenv("RESOURCEHUB_STORE_DRIVER")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.Redis.FromENV()
	c.Catalog.FromENV()
	c.GitHub.FromENV()
	c.ObjectStorage.FromENV()
	c.Site.Title = os.Getenv("RESOURCEHUB_SITE_TITLE")
}

type StoreConfig struct {
	Driver string `toml:"driver"` // memory | postgres
}

type CatalogConfig struct {
	ResourcesPath string `toml:"resources_path"`
	SchemaPath    string `toml:"schema_path"`
	StarDataPath  string `toml:"star_data_path"`
	// WriteBack 将通过表单新增的资源写回 resources_path
	WriteBack bool `toml:"write_back"`
}

func (c *CatalogConfig) SetDefaults() {
	if c.ResourcesPath == "" {
		c.ResourcesPath = "data/resources.json"
	}
	if c.SchemaPath == "" {
		c.SchemaPath = "data/resources-schema.json"
	}
	if c.StarDataPath == "" {
		c.StarDataPath = "data/star-data.json"
	}
}

func (c *CatalogConfig) FromENV() {
	c.ResourcesPath = os.Getenv("RESOURCEHUB_RESOURCES_PATH")
	c.SchemaPath = os.Getenv("RESOURCEHUB_SCHEMA_PATH")
	c.StarDataPath = os.Getenv("RESOURCEHUB_STAR_DATA_PATH")
	c.WriteBack = os.Getenv("RESOURCEHUB_CATALOG_WRITE_BACK") == "true"
}

type GitHubConfig struct {
	Token           string `toml:"token"`
	Endpoint        string `toml:"endpoint"`
	Timeout         int    `toml:"timeout"`   // 单次请求超时(秒)
	CacheTTL        int    `toml:"cache_ttl"` // 实时 star 数据缓存时间(秒)
	Attempts        uint   `toml:"attempts"`
	SyncCron        string `toml:"sync_cron"`
	SyncConcurrency int    `toml:"sync_concurrency"`
}

func (c *GitHubConfig) SetDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 600
	}
	if c.Attempts == 0 {
		c.Attempts = 3
	}
	if c.SyncCron == "" {
		c.SyncCron = "0 */6 * * *"
	}
	if c.SyncConcurrency <= 0 {
		c.SyncConcurrency = 4
	}
}

func (c *GitHubConfig) FromENV() {
	c.Token = os.Getenv("RESOURCEHUB_GITHUB_TOKEN")
	if c.Token == "" {
		c.Token = os.Getenv("GITHUB_TOKEN")
	}
	c.Endpoint = os.Getenv("RESOURCEHUB_GITHUB_ENDPOINT")
	c.SyncCron = os.Getenv("RESOURCEHUB_GITHUB_SYNC_CRON")
	if v, err := strconv.Atoi(os.Getenv("RESOURCEHUB_GITHUB_CACHE_TTL")); err == nil {
		c.CacheTTL = v
	}
}

func (c GitHubConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c GitHubConfig) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

type ObjectStorageDriver struct {
	StaticDomain string    `toml:"static_domain"`
	Driver       string    `toml:"driver"` // s3 | local | none
	LocalDir     string    `toml:"local_dir"`
	S3           *S3Config `toml:"s3"`
}

func (c *ObjectStorageDriver) FromENV() {
	c.Driver = os.Getenv("RESOURCEHUB_OBJECT_STORAGE_DRIVER")
	c.StaticDomain = os.Getenv("RESOURCEHUB_OBJECT_STORAGE_STATIC_DOMAIN")
	c.LocalDir = os.Getenv("RESOURCEHUB_OBJECT_STORAGE_LOCAL_DIR")
	if c.Driver == "s3" {
		c.S3 = &S3Config{
			Bucket:       os.Getenv("RESOURCEHUB_S3_BUCKET"),
			Region:       os.Getenv("RESOURCEHUB_S3_REGION"),
			Endpoint:     os.Getenv("RESOURCEHUB_S3_ENDPOINT"),
			AccessKey:    os.Getenv("RESOURCEHUB_S3_ACCESS_KEY"),
			SecretKey:    os.Getenv("RESOURCEHUB_S3_SECRET_KEY"),
			UsePathStyle: os.Getenv("RESOURCEHUB_S3_PATH_STYLE") == "true",
		}
	}
}

type S3Config struct {
	Bucket       string `toml:"bucket"`
	Region       string `toml:"region"`
	Endpoint     string `toml:"endpoint"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
	UsePathStyle bool   `toml:"use_path_style"`
}

type Site struct {
	Title    string `toml:"title"`
	Tagline  string `toml:"tagline"`
	PageSize int    `toml:"page_size"`
}

func (s *Site) SetDefaults() {
	if s.Title == "" {
		s.Title = "Resource Collection"
	}
	if s.Tagline == "" {
		s.Tagline = "A beautifully stylized collection of resources."
	}
	if s.PageSize <= 0 {
		s.PageSize = 10
	}
}

type LimitSettings struct {
	WritePerMinute int `toml:"write_per_minute"` // 每个 IP 每分钟允许的写请求数
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("RESOURCEHUB_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type RedisConfig struct {
	// 单机模式配置
	Addr     string `toml:"addr"`     // Redis地址，格式: host:port
	Password string `toml:"password"` // Redis密码
	DB       int    `toml:"db"`       // Redis数据库索引 (0-15)

	// 集群模式配置
	Cluster      bool     `toml:"cluster"`       // 是否启用集群模式
	ClusterAddrs []string `toml:"cluster_addrs"` // 集群节点地址列表

	PoolSize    int `toml:"pool_size"`    // 连接池大小，默认10
	DialTimeout int `toml:"dial_timeout"` // 连接超时(秒)，默认5

	KeyPrefix string `toml:"key_prefix"` // Redis键前缀，用于隔离不同环境/应用
}

func (r *RedisConfig) FromENV() {
	r.Addr = os.Getenv("RESOURCEHUB_REDIS_ADDR")
	r.Password = os.Getenv("RESOURCEHUB_REDIS_PASSWORD")
	if dbStr := os.Getenv("RESOURCEHUB_REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			r.DB = db
		}
	}
	r.KeyPrefix = os.Getenv("RESOURCEHUB_REDIS_KEY_PREFIX")
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != "" || (r.Cluster && len(r.ClusterAddrs) > 0)
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("RESOURCEHUB_LOG_LEVEL")
	l.Path = os.Getenv("RESOURCEHUB_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
