package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "https://services.leadconnectorhq.com", cfg.API.BaseURL)
	assert.Equal(t, "2021-07-28", cfg.API.Version)
	assert.Equal(t, "stdio", cfg.Server.Transport)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.ConsoleStyle)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	// Should return defaults
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
api:
  key: pit-12345
  locationId: loc_abc
server:
  transport: sse
  port: 9999
logging:
  level: debug
  consoleStyle: json
tools:
  enabled:
    - contacts
    - locations
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pit-12345", cfg.API.Key)
	assert.Equal(t, "loc_abc", cfg.API.LocationID)
	assert.Equal(t, "sse", cfg.Server.Transport)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"contacts", "locations"}, cfg.Tools.Enabled)
	// Unset fields still get defaults
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultAPIVersion, cfg.API.Version)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [not a map"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GHL_API_KEY", "env-key")
	t.Setenv("GHL_LOCATION_ID", "env-loc")
	t.Setenv("PORT", "4242")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "env-loc", cfg.API.LocationID)
	assert.Equal(t, 4242, cfg.Server.Port)
}

func TestExpandSensitiveFields(t *testing.T) {
	t.Setenv("MY_SECRET_KEY", "pit-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "api:\n  key: ${MY_SECRET_KEY}\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pit-secret", cfg.API.Key)
}

func TestExpandUnsetVarLeftUnchanged(t *testing.T) {
	assert.Equal(t, "${DEFINITELY_NOT_SET_XYZ}", expandEnvVars("${DEFINITELY_NOT_SET_XYZ}"))
}

func TestResolvePaths(t *testing.T) {
	t.Setenv("GHL_MCP_HOME", t.TempDir())
	p, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Base, "config.yaml"), p.Config)
	require.NoError(t, p.EnsureDirs())
	info, err := os.Stat(p.Logs)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
