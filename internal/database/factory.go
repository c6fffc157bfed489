package database

import (
	"fmt"
	"os"
	"path/filepath"

	"shelfsend/internal/config"
	"shelfsend/internal/shelf"
)

// historyFileName is the SQLite file created under the history data_dir.
const historyFileName = "history.db"

// NewHistoryFromConfig creates a History implementation based on the history config type.
func NewHistoryFromConfig(cfg config.HistoryConfig) (shelf.History, error) {
	path, err := HistoryPath(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Type == "sqlite" {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}
	return openSQLiteHistory(path)
}

// HistoryPath returns the database the config points at: a file under
// data_dir for "sqlite", or ":memory:" for "memory".
func HistoryPath(cfg config.HistoryConfig) (string, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return "", fmt.Errorf("data_dir required for sqlite history")
		}
		return filepath.Join(cfg.DataDir, historyFileName), nil
	case "memory":
		return ":memory:", nil
	default:
		return "", fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}

// openSQLiteHistory avoids returning a typed nil inside the interface on error.
func openSQLiteHistory(path string) (shelf.History, error) {
	h, err := NewSQLiteHistory(path)
	if err != nil {
		return nil, err
	}
	return h, nil
}
