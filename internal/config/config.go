package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const apiURLEnv = "ENRICHREADR_API_URL"

type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Poll    PollConfig    `yaml:"poll"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type UIConfig struct {
	PageSize int    `yaml:"page_size"`
	Language string `yaml:"language"` // optional default list filter
}

type PollConfig struct {
	Interval string `yaml:"interval"`
	Timeout  string `yaml:"timeout"`
}

type HistoryConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// GetTimeout parses the API timeout string.
func (a *APIConfig) GetTimeout() (time.Duration, error) {
	return time.ParseDuration(a.Timeout)
}

// GetInterval parses the poll interval string.
func (p *PollConfig) GetInterval() (time.Duration, error) {
	return time.ParseDuration(p.Interval)
}

// GetTimeout parses the poll timeout string.
func (p *PollConfig) GetTimeout() (time.Duration, error) {
	return time.ParseDuration(p.Timeout)
}

// Load reads configuration from file. A missing file yields the
// defaults rather than an error so the client works out of the box
// against a local backend.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Set defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8000"
	}
	if cfg.API.Timeout == "" {
		cfg.API.Timeout = "30s"
	}
	if cfg.UI.PageSize == 0 {
		cfg.UI.PageSize = 10
	}
	if cfg.Poll.Interval == "" {
		cfg.Poll.Interval = "2s"
	}
	if cfg.Poll.Timeout == "" {
		cfg.Poll.Timeout = "10m"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "~/.local/share/enrichreadr/history.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	// Environment override for the backend address
	if env := os.Getenv(apiURLEnv); env != "" {
		cfg.API.BaseURL = env
	}

	cfg.History.Path = expandPath(cfg.History.Path)

	return &cfg, nil
}

// Save writes configuration to file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "enrichreadr", "config.yaml")
}
