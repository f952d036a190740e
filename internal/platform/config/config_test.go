package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DSN", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, DefaultGiftFeedURL, cfg.Gifts.FeedURL)
	assert.Equal(t, 10*time.Minute, cfg.Gifts.CacheTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.DB.DSN)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BARKDAY_LOG_LEVEL", "debug")
	t.Setenv("BARKDAY_DATA_WATCH", "true")
	t.Setenv("BARKDAY_GIFTS_CACHE_TTL", "90s")
	t.Setenv("BARKDAY_REDIS_ADDR", "localhost:6379")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://x")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Data.Watch)
	assert.Equal(t, 90*time.Second, cfg.Gifts.CacheTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "postgres://x", cfg.DB.DSN)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "")

	path := filepath.Join(t.TempDir(), "barkday.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":7070"
data:
  base_url: "https://example.test/data"
gifts:
  file: "gifts.json"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr, "archivo gana sobre PORT")
	assert.Equal(t, "https://example.test/data", cfg.Data.BaseURL)
	assert.Equal(t, "gifts.json", cfg.Gifts.File)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Addr: ":1"}, Data: DataConfig{Dir: "data"}}
	assert.NoError(t, cfg.Validate())

	cfg.Data.Dir = ""
	assert.Error(t, cfg.Validate())

	cfg.Data.BaseURL = "https://x"
	cfg.Gifts.CacheTTL = -time.Second
	assert.Error(t, cfg.Validate())
}
