package config

// Config is the root configuration for the GoHighLevel MCP server.
type Config struct {
	API     APIConfig     `yaml:"api,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Tools   ToolsConfig   `yaml:"tools,omitempty"`
}

// APIConfig holds the GoHighLevel API connection settings.
type APIConfig struct {
	BaseURL    string `yaml:"baseUrl,omitempty"`
	Key        string `yaml:"key,omitempty"`        // private integration / agency API key; supports ${ENV_VAR}
	Version    string `yaml:"version,omitempty"`    // API version header for most endpoint families
	LocationID string `yaml:"locationId,omitempty"` // default sub-account scoping for tools that omit it
}

// ServerConfig controls how the MCP server is exposed.
type ServerConfig struct {
	Transport      string   `yaml:"transport,omitempty"` // "stdio" | "sse"
	Port           int      `yaml:"port,omitempty"`      // SSE only
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	File         string `yaml:"file,omitempty"`
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "compact" | "json"
}

// ToolsConfig selects which tool modules are registered. An empty list
// enables all modules.
type ToolsConfig struct {
	Enabled []string `yaml:"enabled,omitempty"`
}
