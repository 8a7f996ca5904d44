package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the gateway reads.
	EnvPrefix = "acewig"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App        AppConfig
	Store      RemoteStoreConfig
	Catalog    CatalogConfig
	Search     SearchConfig
	LocalStore LocalStoreConfig
	Cache      CacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ACEWIG_APP_ENV" default:"dev"`
	Port         string `envconfig:"ACEWIG_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ACEWIG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ACEWIG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RemoteStoreConfig points the client at the hosted storefront API.
type RemoteStoreConfig struct {
	BaseURL string        `envconfig:"ACEWIG_STORE_BASE_URL" required:"true"`
	OrgSlug string        `envconfig:"ACEWIG_STORE_ORG_SLUG" default:"ace-wig"`
	Timeout time.Duration `envconfig:"ACEWIG_STORE_TIMEOUT" default:"15s"`
}

func (s RemoteStoreConfig) validate() error {
	if strings.TrimSpace(s.BaseURL) == "" {
		return fmt.Errorf("ACEWIG_STORE_BASE_URL is required")
	}
	if strings.TrimSpace(s.OrgSlug) == "" {
		return fmt.Errorf("ACEWIG_STORE_ORG_SLUG must not be blank")
	}
	return nil
}

type CatalogConfig struct {
	PageSize    int `envconfig:"ACEWIG_CATALOG_PAGE_SIZE" default:"12"`
	MaxPageSize int `envconfig:"ACEWIG_CATALOG_MAX_PAGE_SIZE" default:"50"`
}

type SearchConfig struct {
	Debounce time.Duration `envconfig:"ACEWIG_SEARCH_DEBOUNCE" default:"300ms"`
	Limit    int           `envconfig:"ACEWIG_SEARCH_LIMIT" default:"20"`
}

// LocalStoreConfig locates the client-local durable store.
type LocalStoreConfig struct {
	Path string `envconfig:"ACEWIG_LOCAL_STORE_PATH" default:"acewig.db"`
}

// CacheConfig wires the optional catalog read-through cache. An empty URL
// disables caching entirely.
type CacheConfig struct {
	RedisURL     string        `envconfig:"ACEWIG_CACHE_REDIS_URL"`
	TTL          time.Duration `envconfig:"ACEWIG_CACHE_TTL" default:"60s"`
	DialTimeout  time.Duration `envconfig:"ACEWIG_CACHE_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ACEWIG_CACHE_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ACEWIG_CACHE_WRITE_TIMEOUT" default:"5s"`
}

func (c CacheConfig) Enabled() bool {
	return strings.TrimSpace(c.RedisURL) != ""
}
