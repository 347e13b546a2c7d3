package config

import "fmt"

// DefaultBaseURL is the GoHighLevel services API endpoint.
const DefaultBaseURL = "https://services.leadconnectorhq.com"

// DefaultAPIVersion is the Version header sent on most endpoint families.
const DefaultAPIVersion = "2021-07-28"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Version: DefaultAPIVersion,
		},
		Server: ServerConfig{
			Transport: "stdio",
			Port:      8000,
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
