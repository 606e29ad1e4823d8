package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	EnvConfigDir = "MOODNFT_CONFIG_DIR"
	FileName     = "config.toml"
)

// DefaultPath returns the config file looked up when --config is not given.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Dir returns the configuration directory.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", "moodnft")
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "moodnft")
		}
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "moodnft")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "moodnft")
		}
	}

	return filepath.Join(os.TempDir(), "moodnft")
}
