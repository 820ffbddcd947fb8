package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Competition.Anchor)
	assert.Equal(t, 14*24*time.Hour, cfg.Competition.Period)
	assert.Equal(t, int64(500), cfg.Rewards.Referee)
	assert.Equal(t, int64(1000), cfg.Rewards.Referrer)
	assert.Equal(t, int64(10), cfg.Booster.Factor)
	assert.Equal(t, 24*time.Hour, cfg.Booster.Duration)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
storage:
  type: redis
  redis_url: redis://example:6379/1
competition:
  anchor: 2025-06-01T00:00:00Z
  period_days: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorageRedis, cfg.Storage.Type)
	assert.Equal(t, "redis://example:6379/1", cfg.Storage.RedisURL)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), cfg.Competition.Anchor)
	assert.Equal(t, 7*24*time.Hour, cfg.Competition.Period)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TONDROP_SERVER_PORT", "7070")
	t.Setenv("TONDROP_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadAnchor(t *testing.T) {
	t.Setenv("TONDROP_COMPETITION_ANCHOR", "not-a-time")

	_, err := Load("")
	assert.ErrorContains(t, err, "anchor")
}

func TestLoadRejectsNonPositivePeriod(t *testing.T) {
	t.Setenv("TONDROP_COMPETITION_PERIOD_DAYS", "0")

	_, err := Load("")
	assert.ErrorContains(t, err, "period")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}
