package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir: "/home/user/.local/share/shelfsend",
		LogDir:  "/home/user/.local/share/shelfsend/log",
		Staging: StagingConfig{
			Type:      "memory",
			CacheRoot: "/var/cache",
			DirName:   "drops",
		},
		History: HistoryConfig{Type: "sqlite", DataDir: "/home/user/.local/share/shelfsend/db"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Staging != original.Staging {
		t.Errorf("Staging = %+v, want %+v", got.Staging, original.Staging)
	}
	if got.History != original.History {
		t.Errorf("History = %+v, want %+v", got.History, original.History)
	}
}

func TestManager_Read(t *testing.T) {
	t.Run("parses minimal file", func(t *testing.T) {
		input := `
base_dir = "/data/shelfsend"

[staging]
type = "filesystem"
`
		cfg, err := (&Manager{}).Read(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if cfg.BaseDir != "/data/shelfsend" {
			t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/shelfsend")
		}
		if cfg.Staging.CacheRoot != "" {
			t.Errorf("Staging.CacheRoot = %q, want empty", cfg.Staging.CacheRoot)
		}
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		_, err := (&Manager{}).Read(strings.NewReader("base_dir = "))
		if err == nil {
			t.Fatal("Read() expected error for malformed input")
		}
	})
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/shelfsend")

	if cfg.BaseDir != "/data/shelfsend" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/shelfsend")
	}
	if cfg.LogDir != "/data/shelfsend/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/shelfsend/log")
	}
	if cfg.Staging.Type != "filesystem" {
		t.Errorf("Staging.Type = %q, want %q", cfg.Staging.Type, "filesystem")
	}
	if cfg.History.Type != "sqlite" {
		t.Errorf("History.Type = %q, want %q", cfg.History.Type, "sqlite")
	}
	if cfg.History.DataDir != "/data/shelfsend/db" {
		t.Errorf("History.DataDir = %q, want %q", cfg.History.DataDir, "/data/shelfsend/db")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "shelfsend.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "shelfsend.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "shelfsend.toml")
		cfg := NewConfig(dir)
		cfg.History = HistoryConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.History.Type != "memory" {
			t.Errorf("History.Type = %q, want %q", got.History.Type, "memory")
		}
		if got.BaseDir != dir {
			t.Errorf("BaseDir = %q, want %q", got.BaseDir, dir)
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/shelfsend.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
