// Package config loads process configuration from defaults, an optional
// servicecatalog.yaml and SERVICECATALOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SERVICECATALOG_DATABASE_URL for database.url.
const EnvPrefix = "SERVICECATALOG"

// Config is the full process configuration.
type Config struct {
	Server   Server        `mapstructure:"server"`
	Database Database      `mapstructure:"database"`
	Redis    RedisConfig   `mapstructure:"redis"`
	Catalog  CatalogConfig `mapstructure:"catalog"`
	Log      Log           `mapstructure:"log"`
	SeedFile string        `mapstructure:"seed_file"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Database configures the PostgreSQL store. An empty URL selects the
// in-memory store.
type Database struct {
	URL          string        `mapstructure:"url"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	ConnMaxLife  time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig configures the shared cache tier. An empty URL disables it.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CatalogConfig holds the engine knobs.
type CatalogConfig struct {
	MinSchemaVersion         int           `mapstructure:"min_schema_version"`
	InheritableTemplateKinds []string      `mapstructure:"inheritable_template_kinds"`
	DefaultLanguage          string        `mapstructure:"default_language"`
	DefaultPageSize          int           `mapstructure:"default_page_size"`
	MaxPageSize              int           `mapstructure:"max_page_size"`
	MaxBatchSize             int           `mapstructure:"max_batch_size"`
	CacheTTL                 time.Duration `mapstructure:"cache_ttl"`
	LocalCacheSize           int           `mapstructure:"local_cache_size"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every default on v. Exposed so cobra flag bindings
// and tests can share one viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("catalog.min_schema_version", 7)
	v.SetDefault("catalog.inheritable_template_kinds", []string{"Municipality", "BusinessSubregion", "Church"})
	v.SetDefault("catalog.default_language", "fi")
	v.SetDefault("catalog.default_page_size", 1000)
	v.SetDefault("catalog.max_page_size", 1000)
	v.SetDefault("catalog.max_batch_size", 100)
	v.SetDefault("catalog.cache_ttl", time.Minute)
	v.SetDefault("catalog.local_cache_size", 1024)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("seed_file", "")
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("servicecatalog")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration using a fresh viper instance.
func Load() (*Config, error) {
	return LoadFrom(New(), "")
}

// LoadFrom reads configuration from v. A non-empty path forces that config
// file; otherwise a missing servicecatalog.yaml falls back to defaults.
func LoadFrom(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Catalog.MinSchemaVersion < 7 || c.Catalog.MinSchemaVersion > 11 {
		return fmt.Errorf("catalog.min_schema_version must be between 7 and 11, got %d", c.Catalog.MinSchemaVersion)
	}
	if c.Catalog.DefaultPageSize <= 0 || c.Catalog.MaxPageSize < c.Catalog.DefaultPageSize {
		return fmt.Errorf("catalog page sizes invalid: default %d, max %d", c.Catalog.DefaultPageSize, c.Catalog.MaxPageSize)
	}
	if c.Catalog.MaxBatchSize <= 0 {
		return fmt.Errorf("catalog.max_batch_size must be positive, got %d", c.Catalog.MaxBatchSize)
	}
	return nil
}
