package database

import (
	"os"
	"path/filepath"
	"testing"

	"shelfsend/internal/config"
)

func TestNewHistoryFromConfig(t *testing.T) {
	t.Run("memory history", func(t *testing.T) {
		got, err := NewHistoryFromConfig(config.HistoryConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewHistoryFromConfig() unexpected error: %v", err)
		}
		if got == nil {
			t.Fatal("NewHistoryFromConfig() returned nil")
		}
		got.Close()
	})

	t.Run("sqlite history", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "db")
		got, err := NewHistoryFromConfig(config.HistoryConfig{Type: "sqlite", DataDir: dataDir})
		if err != nil {
			t.Fatalf("NewHistoryFromConfig() unexpected error: %v", err)
		}
		defer got.Close()

		if _, err := os.Stat(filepath.Join(dataDir, historyFileName)); err != nil {
			t.Errorf("history file not created: %v", err)
		}
	})

	t.Run("sqlite history without data_dir", func(t *testing.T) {
		got, err := NewHistoryFromConfig(config.HistoryConfig{Type: "sqlite"})
		if err == nil {
			t.Error("NewHistoryFromConfig() expected error for missing data_dir, got nil")
		}
		if got != nil {
			t.Error("NewHistoryFromConfig() should return nil on error")
		}
	})

	t.Run("unknown history type", func(t *testing.T) {
		got, err := NewHistoryFromConfig(config.HistoryConfig{Type: "postgres"})
		if err == nil {
			t.Error("NewHistoryFromConfig() expected error for unknown type, got nil")
		}
		if got != nil {
			t.Error("NewHistoryFromConfig() should return nil on error")
		}
	})
}

func TestHistoryPath(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.HistoryConfig
		want    string
		wantErr bool
	}{
		{name: "sqlite", cfg: config.HistoryConfig{Type: "sqlite", DataDir: "/data/db"}, want: filepath.Join("/data/db", historyFileName)},
		{name: "memory", cfg: config.HistoryConfig{Type: "memory"}, want: ":memory:"},
		{name: "sqlite without data_dir", cfg: config.HistoryConfig{Type: "sqlite"}, wantErr: true},
		{name: "unknown", cfg: config.HistoryConfig{Type: "postgres"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HistoryPath(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("HistoryPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("HistoryPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
