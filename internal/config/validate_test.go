package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Defaults()
	cfg.API.Key = "pit-test"
	return cfg
}

func TestValidateOK(t *testing.T) {
	cfg := validConfig()
	assert.Nil(t, Validate(&cfg))
}

func TestValidateMissingKey(t *testing.T) {
	cfg := Defaults()
	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "api.key", issues[0].Path)
	assert.Contains(t, issues[0].String(), "GHL_API_KEY")
}

func TestValidateBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"relative base url", func(c *Config) { c.API.BaseURL = "not-a-url" }, "api.baseUrl"},
		{"bad transport", func(c *Config) { c.Server.Transport = "websocket" }, "server.transport"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad console style", func(c *Config) { c.Logging.ConsoleStyle = "rainbow" }, "logging.consoleStyle"},
		{"unknown module", func(c *Config) { c.Tools.Enabled = []string{"droplets"} }, "tools.enabled[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			issues := Validate(&cfg)
			require.Len(t, issues, 1)
			assert.Equal(t, tt.path, issues[0].Path)
		})
	}
}

func TestValidateMultipleIssues(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Transport = "carrier-pigeon"
	cfg.Logging.Level = "loud"
	issues := Validate(&cfg)
	assert.Len(t, issues, 3) // missing key + transport + level
}
