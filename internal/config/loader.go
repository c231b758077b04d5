package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandPathFields processes environment variable references in fields
// that commonly carry ${ENV_VAR} placeholders in deployed configs.
func expandPathFields(cfg *Config) {
	cfg.Model.BaseURL = expandEnvVars(cfg.Model.BaseURL)
	cfg.Catalog.DataDir = expandEnvVars(cfg.Catalog.DataDir)
	cfg.Storage.Path = expandEnvVars(cfg.Storage.Path)
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. A missing file produces defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandPathFields(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
// Needed after unmarshal because yaml replaces whole structs.
func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.Model.BaseURL == "" {
		cfg.Model.BaseURL = def.Model.BaseURL
	}
	if cfg.Model.Name == "" {
		cfg.Model.Name = def.Model.Name
	}
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = def.Model.Temperature
	}
	if cfg.Model.TopP == 0 {
		cfg.Model.TopP = def.Model.TopP
	}
	if cfg.Model.MaxContextTokens == 0 {
		cfg.Model.MaxContextTokens = def.Model.MaxContextTokens
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = def.Model.MaxTokens
	}
	if cfg.Model.TimeoutSeconds == 0 {
		cfg.Model.TimeoutSeconds = def.Model.TimeoutSeconds
	}
	if cfg.Session.HistoryWindow == 0 {
		cfg.Session.HistoryWindow = def.Session.HistoryWindow
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = def.Server.Bind
	}
	if cfg.Catalog.DataDir == "" {
		cfg.Catalog.DataDir = def.Catalog.DataDir
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

// applyEnvOverrides reads ISVARYAM_* environment variables and overrides
// config values. These mirror the knobs the hosted deployment tweaks.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ISVARYAM_MODEL_URL"); v != "" {
		cfg.Model.BaseURL = v
	}
	if v := os.Getenv("ISVARYAM_MODEL_NAME"); v != "" {
		cfg.Model.Name = v
	}
	if v := os.Getenv("ISVARYAM_MODEL_TEMP"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Model.Temperature = f
		}
	}
	if v := os.Getenv("ISVARYAM_MODEL_TOP_P"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Model.TopP = f
		}
	}
	if v := os.Getenv("ISVARYAM_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ISVARYAM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}
