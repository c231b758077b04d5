package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".isvaryam"

// Paths holds resolved filesystem paths for assistant data.
type Paths struct {
	Base    string // ~/.isvaryam
	Config  string // ~/.isvaryam/config.yaml
	Storage string // ~/.isvaryam/assistant.db
	Logs    string // ~/.isvaryam/logs
}

// ResolvePaths computes all standard paths from the home directory.
// If ISVARYAM_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("ISVARYAM_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:    base,
		Config:  filepath.Join(base, "config.yaml"),
		Storage: filepath.Join(base, "assistant.db"),
		Logs:    filepath.Join(base, "logs"),
	}, nil
}

// EnsureDirs creates the standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Logs} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}
