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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "backend: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9400", cfg.HTTP.Addr())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "dev-secret", cfg.JWT.Secret)
	assert.Equal(t, "asset-dashboard", cfg.JWT.Issuer)
	assert.Equal(t, 60, cfg.JWT.ExpMin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.LoadInterval)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
backend:
  port: 8080
  log_level: debug
  load_interval: 1m
  topology_path: topo.yaml
  db:
    driver: mysql
    name: dc
  redis:
    addr: redis:6379
    db: 2
  jwt:
    secret: s3cret
    exp_min: 5
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "topo.yaml", cfg.TopologyPath)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "dc", cfg.DB.Name)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 5, cfg.JWT.ExpMin)
	assert.Equal(t, time.Minute, cfg.LoadInterval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}
