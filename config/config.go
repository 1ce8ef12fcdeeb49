// Package config loads the tryinvest configuration: built-in defaults, a TOML file, a .env
// file and TRYINVEST_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/etnz/tryinvest/date"
)

// Providers are the supported price providers.
var Providers = []string{"eodhd", "yahoo"}

// Backends are the supported storage backends.
var Backends = []string{"file", "sqlite", "postgres", "redis", "s3", "memory"}

// Config is the root configuration.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Prices  PricesConfig  `toml:"prices"`
	Storage StorageConfig `toml:"storage"`
	Symbols SymbolsConfig `toml:"symbols"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// PricesConfig configures the price provider and the exchange session.
type PricesConfig struct {
	Provider string `toml:"provider"`
	// APIKey is the eodhd.com API token.
	APIKey   string `toml:"api_key"`
	Exchange string `toml:"exchange"`
	BaseURL  string `toml:"base_url"`

	Timezone string `toml:"timezone"`
	Open     string `toml:"open"`
	Close    string `toml:"close"`

	Timeout Duration `toml:"timeout"`
	// CacheDir keeps the provider responses of the day. Empty disables the cache.
	CacheDir string `toml:"cache_dir"`
}

// StorageConfig selects and configures the store backend.
type StorageConfig struct {
	Backend  string         `toml:"backend"`
	Dir      string         `toml:"dir"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	S3       S3Config       `toml:"s3"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type PostgresConfig struct {
	DSN string `toml:"dsn"`
}

type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TLSEnabled bool   `toml:"tls_enabled"`
	Prefix     string `toml:"prefix"`
}

type S3Config struct {
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	Prefix         string `toml:"prefix"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// SymbolsConfig configures the symbol directory.
type SymbolsConfig struct {
	// File extends the built-in directory.
	File string `toml:"file"`
}

// Duration is a time.Duration decoded from strings like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.Duration.String()), nil }

// Home returns the directory of the tryinvest files: $XDG_CONFIG_HOME/tryinvest or the OS
// equivalent, ./.tryinvest when there is none.
func Home() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".tryinvest"
	}
	return filepath.Join(dir, "tryinvest")
}

// DefaultPath is the configuration file read when none is given.
func DefaultPath() string { return filepath.Join(Home(), "config.toml") }

// Defaults returns the built-in configuration.
func Defaults() Config {
	home := Home()
	return Config{
		Log: LogConfig{Level: "warn"},
		Prices: PricesConfig{
			Provider: "yahoo",
			Exchange: "US",
			Timezone: "America/New_York",
			Open:     "09:30",
			Close:    "16:00",
			Timeout:  Duration{10 * time.Second},
			CacheDir: filepath.Join(home, "http-cache"),
		},
		Storage: StorageConfig{
			Backend: "file",
			Dir:     home,
			SQLite:  SQLiteConfig{Path: filepath.Join(home, "tryinvest.db")},
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "tryinvest:"},
			S3:      S3Config{Region: "us-east-1", Prefix: "tryinvest", UseSSL: true},
		},
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if !slices.Contains(Providers, c.Prices.Provider) {
		return fmt.Errorf("prices.provider %q: want one of %v", c.Prices.Provider, Providers)
	}
	if c.Prices.Provider == "eodhd" && c.Prices.APIKey == "" {
		return fmt.Errorf("prices.api_key is required by the eodhd provider (or set %s)", "TRYINVEST_PRICES_API_KEY")
	}
	if _, err := c.Prices.Session(); err != nil {
		return err
	}
	if c.Prices.Timeout.Duration < 0 {
		return fmt.Errorf("prices.timeout must not be negative")
	}

	s := c.Storage
	switch s.Backend {
	case "file":
		if s.Dir == "" {
			return fmt.Errorf("storage.dir is required by the file backend")
		}
	case "sqlite":
		if s.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is required by the sqlite backend")
		}
	case "postgres":
		if s.Postgres.DSN == "" {
			return fmt.Errorf("storage.postgres.dsn is required by the postgres backend")
		}
	case "redis":
		if s.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required by the redis backend")
		}
	case "s3":
		if s.S3.Bucket == "" || s.S3.Region == "" {
			return fmt.Errorf("storage.s3.bucket and storage.s3.region are required by the s3 backend")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.backend %q: want one of %v", s.Backend, Backends)
	}
	return nil
}

// Session returns the exchange trading session.
func (p PricesConfig) Session() (date.Session, error) {
	open, err := date.ParseClock(p.Open)
	if err != nil {
		return date.Session{}, fmt.Errorf("prices.open: %w", err)
	}
	closing, err := date.ParseClock(p.Close)
	if err != nil {
		return date.Session{}, fmt.Errorf("prices.close: %w", err)
	}
	s, err := date.NewSession(p.Timezone, open, closing)
	if err != nil {
		return date.Session{}, fmt.Errorf("prices: %w", err)
	}
	return s, nil
}
