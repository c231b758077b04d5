package config

// Config is the root configuration for the assistant.
type Config struct {
	Model   ModelConfig   `yaml:"model,omitempty"`
	Session SessionConfig `yaml:"session,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
	Storage StorageConfig `yaml:"storage,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// ModelConfig configures the generative fallback model. All values are
// startup-time configuration; nothing here varies per request.
type ModelConfig struct {
	BaseURL          string  `yaml:"baseUrl,omitempty"` // llama.cpp server, e.g. http://localhost:8080
	Name             string  `yaml:"name,omitempty"`
	Temperature      float64 `yaml:"temperature,omitempty"`
	TopP             float64 `yaml:"topP,omitempty"`
	MaxContextTokens int     `yaml:"maxContextTokens,omitempty"`
	MaxTokens        int     `yaml:"maxTokens,omitempty"`
	TimeoutSeconds   int     `yaml:"timeoutSeconds,omitempty"`
	Threads          int     `yaml:"threads,omitempty"` // parallelism hint forwarded to the model server
}

// SessionConfig configures conversation memory.
type SessionConfig struct {
	// HistoryWindow is the maximum number of history entries kept per
	// session (two entries per exchange).
	HistoryWindow int `yaml:"historyWindow,omitempty"`
}

// ServerConfig configures the HTTP/WebSocket front-end.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	Bind           string   `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	CustomBindHost string   `yaml:"customBindHost,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// CatalogConfig locates the static domain data files.
type CatalogConfig struct {
	DataDir string `yaml:"dataDir,omitempty"`
}

// StorageConfig configures the SQLite persistence collaborator.
type StorageConfig struct {
	Path string `yaml:"path,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
}
