package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Model.BaseURL)
	assert.Equal(t, 0.7, cfg.Model.Temperature)
	assert.Equal(t, 0.95, cfg.Model.TopP)
	assert.Equal(t, 10, cfg.Session.HistoryWindow)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
model:
  baseUrl: http://model-host:9000
  temperature: 0.2
session:
  historyWindow: 6
server:
  port: 8088
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://model-host:9000", cfg.Model.BaseURL)
	assert.Equal(t, 0.2, cfg.Model.Temperature)
	assert.Equal(t, 6, cfg.Session.HistoryWindow)
	assert.Equal(t, 8088, cfg.Server.Port)
	// untouched fields keep defaults
	assert.Equal(t, 0.95, cfg.Model.TopP)
	assert.Equal(t, 2048, cfg.Model.MaxContextTokens)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "model: [broken")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ISVARYAM_PORT", "7777")
	t.Setenv("ISVARYAM_MODEL_TEMP", "0.1")
	t.Setenv("ISVARYAM_LOG_LEVEL", "DEBUG")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, 0.1, cfg.Model.Temperature)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestExpandEnvVarsInPaths(t *testing.T) {
	t.Setenv("MODEL_HOST", "http://gpu-box:8080")
	path := writeConfig(t, "model:\n  baseUrl: ${MODEL_HOST}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://gpu-box:8080", cfg.Model.BaseURL)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, Validate(&cfg))

	cfg.Server.Port = 99999
	cfg.Session.HistoryWindow = 7
	cfg.Logging.Level = "verbose"
	cfg.Model.TopP = 1.5

	issues := Validate(&cfg)
	paths := make([]string, 0, len(issues))
	for _, i := range issues {
		paths = append(paths, i.Path)
	}
	assert.Contains(t, paths, "server.port")
	assert.Contains(t, paths, "session.historyWindow")
	assert.Contains(t, paths, "logging.level")
	assert.Contains(t, paths, "model.topP")
}

func TestValidateCustomBindRequiresHost(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Bind = "custom"

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "server.customBindHost", issues[0].Path)
}

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()
	t.Setenv("ISVARYAM_HOME", base)

	p, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, base, p.Base)
	assert.Equal(t, filepath.Join(base, "config.yaml"), p.Config)
	assert.Equal(t, filepath.Join(base, "assistant.db"), p.Storage)

	require.NoError(t, p.EnsureDirs())
	info, err := os.Stat(p.Logs)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
