package config

import (
	"fmt"
	"net/url"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// knownModules are the tool module names that may appear in tools.enabled.
var knownModules = []string{
	"contacts", "conversations", "opportunities", "locations", "calendars",
	"email", "verification", "media", "workflows", "surveys",
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.API.Key == "" {
		issues = append(issues, ValidationIssue{
			Path:    "api.key",
			Message: "API key is required (set api.key or GHL_API_KEY)",
		})
	}

	if cfg.API.BaseURL != "" {
		if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			issues = append(issues, ValidationIssue{
				Path:    "api.baseUrl",
				Message: fmt.Sprintf("must be an absolute URL, got %q", cfg.API.BaseURL),
			})
		}
	}

	validTransports := []string{"stdio", "sse"}
	if cfg.Server.Transport != "" && !slices.Contains(validTransports, cfg.Server.Transport) {
		issues = append(issues, ValidationIssue{
			Path:    "server.transport",
			Message: fmt.Sprintf("must be one of %v, got %q", validTransports, cfg.Server.Transport),
		})
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "compact", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	for i, name := range cfg.Tools.Enabled {
		if !slices.Contains(knownModules, name) {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("tools.enabled[%d]", i),
				Message: fmt.Sprintf("unknown tool module %q, valid modules: %v", name, knownModules),
			})
		}
	}

	return issues
}
