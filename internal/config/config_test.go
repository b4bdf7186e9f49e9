package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "itcommunity", cfg.Database.DBName)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	path := writeConfigFile(t, `
server:
  port: "8081"
  mode: "production"
database:
  dbname: "platform_test"
rate_limit:
  enabled: true
  requests: 5
  window: "30s"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "platform_test", cfg.Database.DBName)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")

	path := writeConfigFile(t, `
server:
  port: "8081"
database:
  host: "localhost"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadDurations(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	path := writeConfigFile(t, `
jwt:
  access_token_expiration: "not-a-duration"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	conn := cfg.GetPostgresConnectionString()
	assert.Contains(t, conn, "host=localhost")
	assert.Contains(t, conn, "dbname=itcommunity")
	assert.Contains(t, conn, "sslmode=disable")
}
