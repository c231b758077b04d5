package config

import (
	"fmt"
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

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validBinds := []string{"loopback", "lan", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}

	if cfg.Server.Bind == "custom" && cfg.Server.CustomBindHost == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.customBindHost",
			Message: "required when bind is custom",
		})
	}

	if cfg.Model.BaseURL == "" {
		issues = append(issues, ValidationIssue{
			Path:    "model.baseUrl",
			Message: "model server URL is required",
		})
	}

	if cfg.Model.Temperature < 0 || cfg.Model.Temperature > 2 {
		issues = append(issues, ValidationIssue{
			Path:    "model.temperature",
			Message: fmt.Sprintf("must be in [0, 2], got %g", cfg.Model.Temperature),
		})
	}

	if cfg.Model.TopP < 0 || cfg.Model.TopP > 1 {
		issues = append(issues, ValidationIssue{
			Path:    "model.topP",
			Message: fmt.Sprintf("must be in [0, 1], got %g", cfg.Model.TopP),
		})
	}

	if cfg.Model.MaxContextTokens < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "model.maxContextTokens",
			Message: fmt.Sprintf("must be positive, got %d", cfg.Model.MaxContextTokens),
		})
	}

	// The window is counted in entries; each exchange writes two.
	if cfg.Session.HistoryWindow < 2 {
		issues = append(issues, ValidationIssue{
			Path:    "session.historyWindow",
			Message: fmt.Sprintf("must be at least 2, got %d", cfg.Session.HistoryWindow),
		})
	}
	if cfg.Session.HistoryWindow%2 != 0 {
		issues = append(issues, ValidationIssue{
			Path:    "session.historyWindow",
			Message: fmt.Sprintf("must be even (two entries per exchange), got %d", cfg.Session.HistoryWindow),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	return issues
}
