// Package config loads and persists sprintdeck client configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the full sprintdeck client configuration
type Config struct {
	Server  ServerConfig  `json:"server"`
	Auth    AuthConfig    `json:"auth"`
	Board   BoardConfig   `json:"board"`
	Refresh RefreshConfig `json:"refresh"`
}

// ServerConfig contains backend connection settings
type ServerConfig struct {
	URL       string `json:"url"`
	TimeoutMs int    `json:"timeoutMs"`
}

// AuthConfig contains session token storage settings
type AuthConfig struct {
	TokenPath string `json:"tokenPath"`
	Email     string `json:"email"`
}

// BoardConfig contains board behavior settings
type BoardConfig struct {
	// DragThreshold is the number of cells the mouse must travel from
	// the press origin before a press is promoted to a drag.
	DragThreshold int    `json:"dragThreshold"`
	DefaultSort   string `json:"defaultSort"`
}

// RefreshConfig contains board refresh settings
type RefreshConfig struct {
	IntervalSec int `json:"intervalSec"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Server: ServerConfig{
			URL:       "http://localhost:8080",
			TimeoutMs: 5000,
		},
		Auth: AuthConfig{
			TokenPath: filepath.Join(homeDir, ".sprintdeck", "session"),
		},
		Board: BoardConfig{
			DragThreshold: 2,
			DefaultSort:   "none",
		},
		Refresh: RefreshConfig{
			IntervalSec: 30,
		},
	}
}

// LoadConfig loads configuration with priority:
// 1. .sprintdeck.json in the working directory
// 2. ~/.sprintdeck/config.json
// 3. Defaults
func LoadConfig(dir string) (*Config, error) {
	localPath := filepath.Join(dir, ".sprintdeck.json")
	if data, err := os.ReadFile(localPath); err == nil {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", localPath, err)
		}
		return MergeWithDefaults(&cfg), nil
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		homePath := filepath.Join(homeDir, ".sprintdeck", "config.json")
		if data, err := os.ReadFile(homePath); err == nil {
			var cfg Config
			if err := json.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", homePath, err)
			}
			return MergeWithDefaults(&cfg), nil
		}
	}

	return DefaultConfig(), nil
}

// SaveConfig saves configuration to the specified path
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Server.URL == "" {
		cfg.Server.URL = defaults.Server.URL
	}
	if cfg.Server.TimeoutMs == 0 {
		cfg.Server.TimeoutMs = defaults.Server.TimeoutMs
	}

	if cfg.Auth.TokenPath == "" {
		cfg.Auth.TokenPath = defaults.Auth.TokenPath
	}

	if cfg.Board.DragThreshold == 0 {
		cfg.Board.DragThreshold = defaults.Board.DragThreshold
	}
	if cfg.Board.DefaultSort == "" {
		cfg.Board.DefaultSort = defaults.Board.DefaultSort
	}

	if cfg.Refresh.IntervalSec == 0 {
		cfg.Refresh.IntervalSec = defaults.Refresh.IntervalSec
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
