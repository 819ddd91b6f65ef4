package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Walrus    WalrusConfig    `mapstructure:"walrus"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Pointer   PointerConfig   `mapstructure:"pointer"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Audit     AuditConfig     `mapstructure:"audit"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// WalrusConfig points at the publisher (writes) and aggregator (reads) of the blob store.
type WalrusConfig struct {
	Mode           string        `mapstructure:"mode"` // http, memory
	PublisherURL   string        `mapstructure:"publisher_url"`
	AggregatorURL  string        `mapstructure:"aggregator_url"`
	RecordEpochs   int           `mapstructure:"record_epochs"`
	IndexEpochs    int           `mapstructure:"index_epochs"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRPS         float64       `mapstructure:"max_rps"` // 0 = unlimited
}

// BackendConfig is the primary pointer tier: the authenticated REST backend.
type BackendConfig struct {
	BaseURL        string        `mapstructure:"base_url"` // empty = primary tier disabled
	Token          string        `mapstructure:"token"`    // static bearer token; minted from jwt.secret when empty
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// PointerConfig selects the fallback pointer tier.
type PointerConfig struct {
	Fallback string `mapstructure:"fallback"` // redis, memory, none
	Key      string `mapstructure:"key"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret  string        `mapstructure:"secret"`
	Expiry  time.Duration `mapstructure:"expiry"`
	Issuer  string        `mapstructure:"issuer"`
	Subject string        `mapstructure:"subject"` // subject of tokens minted for the backend tier
}

// AuditConfig tunes the audit index manager.
type AuditConfig struct {
	MaxPointerAttempts int           `mapstructure:"max_pointer_attempts"`
	FetchConcurrency   int           `mapstructure:"fetch_concurrency"`
	IdempotencyTTL     time.Duration `mapstructure:"idempotency_ttl"`
	DefaultChain       string        `mapstructure:"default_chain"`
}

type RateLimitConfig struct {
	Enabled bool  `mapstructure:"enabled"`
	Writes  int64 `mapstructure:"writes"` // per minute
	Reads   int64 `mapstructure:"reads"`  // per minute
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PZA_ (PayZoll Audit).
// Nested keys use underscore: PZA_WALRUS_PUBLISHER_URL, PZA_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("walrus.mode", "http")
	v.SetDefault("walrus.publisher_url", "https://publisher.walrus-testnet.walrus.space")
	v.SetDefault("walrus.aggregator_url", "https://aggregator.walrus-testnet.walrus.space")
	v.SetDefault("walrus.record_epochs", 10)
	v.SetDefault("walrus.index_epochs", 20)
	v.SetDefault("walrus.request_timeout", "15s")
	v.SetDefault("walrus.max_rps", 5)
	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.token", "")
	v.SetDefault("backend.request_timeout", "5s")
	v.SetDefault("pointer.fallback", "memory")
	v.SetDefault("pointer.key", "auditIndexBlobId")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payzoll_audit")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "1h")
	v.SetDefault("jwt.issuer", "payzoll-audit")
	v.SetDefault("jwt.subject", "payzoll-audit")
	v.SetDefault("audit.max_pointer_attempts", 3)
	v.SetDefault("audit.fetch_concurrency", 8)
	v.SetDefault("audit.idempotency_ttl", "24h")
	v.SetDefault("audit.default_chain", "SUI")
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.writes", 30)
	v.SetDefault("ratelimit.reads", 120)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// PZA_WALRUS_PUBLISHER_URL -> walrus.publisher_url
	v.SetEnvPrefix("PZA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Walrus.Mode {
	case "http", "memory":
	default:
		return fmt.Errorf("walrus.mode must be http or memory, got %q", c.Walrus.Mode)
	}
	switch c.Pointer.Fallback {
	case "redis", "memory", "none":
	default:
		return fmt.Errorf("pointer.fallback must be redis, memory or none, got %q", c.Pointer.Fallback)
	}
	if c.Pointer.Fallback == "redis" && !c.Redis.Enabled {
		return fmt.Errorf("pointer.fallback=redis requires redis.enabled")
	}
	if c.Walrus.RecordEpochs < 1 || c.Walrus.IndexEpochs < 1 {
		return fmt.Errorf("walrus epochs must be positive")
	}
	if c.Audit.MaxPointerAttempts < 1 {
		c.Audit.MaxPointerAttempts = 1
	}
	if c.Audit.FetchConcurrency < 1 {
		c.Audit.FetchConcurrency = 1
	}
	return nil
}
