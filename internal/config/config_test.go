package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30000, cfg.API.TimeoutMs)
	assert.Equal(t, 1, cfg.API.MaxRetries)
	assert.Equal(t, 300, cfg.Cache.TTLSeconds)
	assert.Equal(t, 3000, cfg.Submit.ThrottleMs)
	assert.Equal(t, "30", cfg.Org.SysOrgCode)
	assert.Equal(t, DefaultPublicKey, cfg.Auth.PublicKey)
	assert.Equal(t, DefaultDBPath(), cfg.Database.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://mes.example.com/prod-api
  timeout_ms: 5000
db:
  path: /tmp/shopfloor-test.db
submit:
  throttle_ms: 0
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://mes.example.com/prod-api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 1, cfg.API.MaxRetries, "unset keys keep defaults")
	assert.Equal(t, "/tmp/shopfloor-test.db", cfg.Database.Path)
	assert.Equal(t, time.Duration(0), cfg.ThrottleWindow())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_MES_HOST", "mes.internal")
	path := writeConfig(t, "api:\n  base_url: http://${TEST_MES_HOST}:9000\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://mes.internal:9000", cfg.API.BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: http://from-file\n  max_retries: 3\n")
	t.Setenv("SHOPFLOOR_API_BASE_URL", "http://from-env")
	t.Setenv("SHOPFLOOR_API_MAX_RETRIES", "0")
	t.Setenv("SHOPFLOOR_REDIS_ADDRESS", "localhost:6379")
	t.Setenv("SHOPFLOOR_CACHE_TTL_SECONDS", "60")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.API.BaseURL)
	assert.Equal(t, 0, cfg.API.MaxRetries)
	assert.Equal(t, time.Minute, cfg.CacheTTL())
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("SHOPFLOOR_API_TIMEOUT_MS", "soon")
	t.Setenv("SHOPFLOOR_SUBMIT_THROTTLE_MS", "-5")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 30000, cfg.API.TimeoutMs)
	assert.Equal(t, 3000, cfg.Submit.ThrottleMs)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "api: [unterminated"))
	assert.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, err := Load(writeConfig(t, "api:\n  timeout_ms: -1\n"))
	assert.ErrorContains(t, err, "api.timeout_ms")
}

func TestCacheTTL_DisabledWithoutRedis(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Duration(0), cfg.CacheTTL())

	cfg.Redis.Address = "localhost:6379"
	cfg.Cache.TTLSeconds = 0
	assert.Equal(t, time.Duration(0), cfg.CacheTTL())
}
