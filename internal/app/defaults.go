package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults holds the paths shelfsend uses when the config file does not say otherwise.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
	// CacheRoot is the directory the scratch directory is created under.
	CacheRoot string
}

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - SHELFSEND_CONFIG_PATH: config file location (default: ~/.config/shelfsend.toml)
//   - SHELFSEND_HOME: base directory for shelfsend data (default: ~/.local/share/shelfsend)
//   - SHELFSEND_CACHE_DIR: cache root for staged copies (default: the platform cache dir)
func GetDefaults() (*Defaults, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	d := &Defaults{
		ConfigPath: envOr("SHELFSEND_CONFIG_PATH", filepath.Join(homeDir, ".config", "shelfsend.toml")),
		BaseDir:    envOr("SHELFSEND_HOME", filepath.Join(homeDir, ".local", "share", "shelfsend")),
		CacheRoot:  os.Getenv("SHELFSEND_CACHE_DIR"),
	}
	d.LogDir = filepath.Join(d.BaseDir, "log")

	if d.CacheRoot == "" {
		cacheRoot, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine cache directory: %w", err)
		}
		d.CacheRoot = cacheRoot
	}
	return d, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
