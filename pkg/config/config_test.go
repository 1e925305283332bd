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
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "countries.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, "countries.log", filepath.Base(cfg.LogFile))
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
api:
  url: http://localhost:9000/v3.1
  timeout: 3s
storage:
  path: /tmp/prefs.db
log:
  level: debug
theme: light
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/v3.1", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/prefs.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "countries.log", filepath.Base(cfg.LogFile))
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "api:\n  url: http://from-file\n")
	t.Setenv("COUNTRIES_API_URL", "http://from-env")
	t.Setenv("COUNTRIES_TIMEOUT", "250ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.APIURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit path must exist")

	_, err = Load(writeConfig(t, "api:\n  timeout: soon\n"))
	assert.ErrorContains(t, err, "api.timeout")

	_, err = Load(writeConfig(t, "api: [unterminated"))
	assert.Error(t, err)

	t.Setenv("COUNTRIES_TIMEOUT", "never")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorContains(t, err, "COUNTRIES_TIMEOUT")
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/data/c.db", expandHome("~/data/c.db"))
	assert.Equal(t, "/abs/c.db", expandHome("/abs/c.db"))
}
