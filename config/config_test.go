package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config home to a temp dir and clears the overrides used in tests.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	for _, key := range []string{
		"EODHD_API_KEY", "TRYINVEST_PRICES_API_KEY", "TRYINVEST_PRICES_PROVIDER",
		"TRYINVEST_STORAGE_BACKEND", "TRYINVEST_LOG_LEVEL", "TRYINVEST_PRICES_TIMEOUT",
		"TRYINVEST_STORAGE_REDIS_DB", "TRYINVEST_STORAGE_S3_FORCE_PATH_STYLE",
	} {
		t.Setenv(key, "")
	}
	return home
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "yahoo", cfg.Prices.Provider)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "tryinvest"), cfg.Storage.Dir)
	assert.Equal(t, 10*time.Second, cfg.Prices.Timeout.Duration)
}

func TestLoad_FileAndEnv(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
[log]
level = "debug"

[prices]
provider = "eodhd"
api_key = "from-file"
timeout = "3s"

[storage]
backend = "redis"

[storage.redis]
addr = "cache:6379"
db = 2

[storage.s3]
bucket = "invest"
`)
	t.Setenv("TRYINVEST_PRICES_API_KEY", "from-env")
	t.Setenv("TRYINVEST_STORAGE_REDIS_DB", "5")
	t.Setenv("TRYINVEST_STORAGE_S3_FORCE_PATH_STYLE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "eodhd", cfg.Prices.Provider)
	assert.Equal(t, "from-env", cfg.Prices.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Prices.Timeout.Duration)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 5, cfg.Storage.Redis.DB)
	assert.Equal(t, "tryinvest:", cfg.Storage.Redis.Prefix, "defaults survive partial tables")
	assert.Equal(t, "invest", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.ForcePathStyle)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, `[prices`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "[prices]\ntimeout = \"soon\"\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"provider", func(c *Config) { c.Prices.Provider = "bloomberg" }},
		{"eodhd key", func(c *Config) { c.Prices.Provider = "eodhd" }},
		{"timezone", func(c *Config) { c.Prices.Timezone = "Mars/Olympus" }},
		{"open", func(c *Config) { c.Prices.Open = "9h30" }},
		{"session", func(c *Config) { c.Prices.Open, c.Prices.Close = "16:00", "09:30" }},
		{"backend", func(c *Config) { c.Storage.Backend = "floppy" }},
		{"postgres", func(c *Config) { c.Storage.Backend = "postgres" }},
		{"s3", func(c *Config) { c.Storage.Backend = "s3" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSession(t *testing.T) {
	p := Defaults().Prices
	p.Timezone, p.Open, p.Close = "Europe/Paris", "09:00", "17:30"
	s, err := p.Session()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", s.Location.String())

	// Monday 2024/03/04 17:00 in Paris (16:00 UTC) is open, 17:30 is closed.
	assert.True(t, s.IsOpen(time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC)))
	assert.False(t, s.IsOpen(time.Date(2024, 3, 4, 16, 30, 0, 0, time.UTC)))
}
