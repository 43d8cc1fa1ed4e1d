package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.URL == "" {
		t.Error("Expected default server URL")
	}
	if cfg.Board.DragThreshold <= 0 {
		t.Error("Expected positive drag threshold")
	}
	if cfg.Refresh.IntervalSec <= 0 {
		t.Error("Expected positive refresh interval")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Server.URL != DefaultConfig().Server.URL {
			t.Errorf("Expected default URL, got %s", cfg.Server.URL)
		}
	})

	t.Run("partial file merges defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".sprintdeck.json")
		data := `{"server": {"url": "https://api.example.com"}}`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(dir)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if cfg.Server.URL != "https://api.example.com" {
			t.Errorf("Expected custom URL, got %s", cfg.Server.URL)
		}
		if cfg.Server.TimeoutMs != DefaultConfig().Server.TimeoutMs {
			t.Errorf("Expected default timeout, got %d", cfg.Server.TimeoutMs)
		}
		if cfg.Board.DragThreshold != DefaultConfig().Board.DragThreshold {
			t.Errorf("Expected default drag threshold, got %d", cfg.Board.DragThreshold)
		}
	})

	t.Run("invalid json is an error", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".sprintdeck.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(dir); err == nil {
			t.Error("Expected parse error")
		}
	})
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Server.URL = "https://saved.example.com"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected non-empty config file")
	}
}
