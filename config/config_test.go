package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "recipebook.db", cfg.DB.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9000
db:
  driver: postgres
  dsn: host=localhost user=recipes dbname=recipes
redis:
  addr: localhost:6379
log:
  level: debug
  json: true
`))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_DB_DSN", "file::memory:")

	cfg, err := Load(writeConfig(t, "db:\n  dsn: on-disk.db\n"))
	require.NoError(t, err)

	assert.Equal(t, "file::memory:", cfg.DB.DSN)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	_, err := Load(writeConfig(t, "db:\n  driver: oracle\n"))
	assert.ErrorContains(t, err, "db.driver")

	_, err = Load(writeConfig(t, "server:\n  port: 0\n"))
	assert.ErrorContains(t, err, "server.port")

	_, err = Load(writeConfig(t, "db:\n  dsn: \"\"\n"))
	assert.ErrorContains(t, err, "db.dsn")
}
