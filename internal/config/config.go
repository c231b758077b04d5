// Package config loads and validates the assistant's YAML configuration.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
// Model sampling defaults match the values the assistant shipped with.
func Defaults() Config {
	return Config{
		Model: ModelConfig{
			BaseURL:          "http://localhost:8080",
			Name:             "tinyllama",
			Temperature:      0.7,
			TopP:             0.95,
			MaxContextTokens: 2048,
			MaxTokens:        512,
			TimeoutSeconds:   120,
		},
		Session: SessionConfig{
			HistoryWindow: 10,
		},
		Server: ServerConfig{
			Port: 5000,
			Bind: "loopback",
		},
		Catalog: CatalogConfig{
			DataDir: "data",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
