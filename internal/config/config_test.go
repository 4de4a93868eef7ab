package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn.Std())
	assert.Equal(t, "gemini-3-flash-preview", cfg.TextGen.Model)
	assert.Equal(t, "@every 1m", cfg.Reminder.Schedule)
	assert.Empty(t, cfg.Notifier.URL)
}

func TestLoad_YamlDurationsParse(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  read_timeout: 30s
  shutdown_timeout: 1m
jwt:
  secret: file-secret
  expires_in: 2h
notifier:
  url: http://localhost:9999/notify
  timeout: 10s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, time.Minute, cfg.Server.ShutdownTimeout.Std())
	// Untouched field keeps its default
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout.Std())
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiresIn.Std())
	assert.Equal(t, "http://localhost:9999/notify", cfg.Notifier.URL)
	assert.Equal(t, 10*time.Second, cfg.Notifier.Timeout.Std())
}

func TestLoad_InvalidDurationRejected(t *testing.T) {
	path := writeConfigFile(t, `
server:
  read_timeout: quinze segundos
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: file-secret
`)

	t.Setenv("PORT", "7777")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRES_IN", "45m")
	t.Setenv("TEXTGEN_MODEL", "gemini-3-pro")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 45*time.Minute, cfg.JWT.ExpiresIn.Std())
	assert.Equal(t, "gemini-3-pro", cfg.TextGen.Model)
}
