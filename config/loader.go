package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads the TOML file at path over the defaults, then applies the environment overrides.
//
// An empty path reads DefaultPath if it exists. An explicit path must exist.
// The returned Config has not been validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// applyEnvOverrides overwrites fields with the TRYINVEST_* variables that are set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Log.Level, "TRYINVEST_LOG_LEVEL")
	setBool(&cfg.Log.Pretty, "TRYINVEST_LOG_PRETTY")

	setStr(&cfg.Prices.Provider, "TRYINVEST_PRICES_PROVIDER")
	setStr(&cfg.Prices.APIKey, "EODHD_API_KEY")
	setStr(&cfg.Prices.APIKey, "TRYINVEST_PRICES_API_KEY")
	setStr(&cfg.Prices.Exchange, "TRYINVEST_PRICES_EXCHANGE")
	setStr(&cfg.Prices.BaseURL, "TRYINVEST_PRICES_BASE_URL")
	setStr(&cfg.Prices.Timezone, "TRYINVEST_PRICES_TIMEZONE")
	setStr(&cfg.Prices.Open, "TRYINVEST_PRICES_OPEN")
	setStr(&cfg.Prices.Close, "TRYINVEST_PRICES_CLOSE")
	setDuration(&cfg.Prices.Timeout, "TRYINVEST_PRICES_TIMEOUT")
	setStr(&cfg.Prices.CacheDir, "TRYINVEST_PRICES_CACHE_DIR")

	setStr(&cfg.Storage.Backend, "TRYINVEST_STORAGE_BACKEND")
	setStr(&cfg.Storage.Dir, "TRYINVEST_STORAGE_DIR")
	setStr(&cfg.Storage.SQLite.Path, "TRYINVEST_STORAGE_SQLITE_PATH")
	setStr(&cfg.Storage.Postgres.DSN, "TRYINVEST_STORAGE_POSTGRES_DSN")
	setStr(&cfg.Storage.Redis.Addr, "TRYINVEST_STORAGE_REDIS_ADDR")
	setStr(&cfg.Storage.Redis.Password, "TRYINVEST_STORAGE_REDIS_PASSWORD")
	setInt(&cfg.Storage.Redis.DB, "TRYINVEST_STORAGE_REDIS_DB")
	setBool(&cfg.Storage.Redis.TLSEnabled, "TRYINVEST_STORAGE_REDIS_TLS_ENABLED")
	setStr(&cfg.Storage.Redis.Prefix, "TRYINVEST_STORAGE_REDIS_PREFIX")
	setStr(&cfg.Storage.S3.Endpoint, "TRYINVEST_STORAGE_S3_ENDPOINT")
	setStr(&cfg.Storage.S3.Region, "TRYINVEST_STORAGE_S3_REGION")
	setStr(&cfg.Storage.S3.Bucket, "TRYINVEST_STORAGE_S3_BUCKET")
	setStr(&cfg.Storage.S3.Prefix, "TRYINVEST_STORAGE_S3_PREFIX")
	setStr(&cfg.Storage.S3.AccessKey, "TRYINVEST_STORAGE_S3_ACCESS_KEY")
	setStr(&cfg.Storage.S3.SecretKey, "TRYINVEST_STORAGE_S3_SECRET_KEY")
	setBool(&cfg.Storage.S3.UseSSL, "TRYINVEST_STORAGE_S3_USE_SSL")
	setBool(&cfg.Storage.S3.ForcePathStyle, "TRYINVEST_STORAGE_S3_FORCE_PATH_STYLE")

	setStr(&cfg.Symbols.File, "TRYINVEST_SYMBOLS_FILE")
}

// Each helper only mutates the target when the variable is set and parses.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
