// Package config loads the service configuration from a JSON file with
// environment overrides. A missing config file is created with defaults on
// first run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// BaseDir holds the exhibition assets: img/ and text/.
	BaseDir string `json:"base_dir" env:"ADAM_BASE_DIR"`
	// DataDir holds derived state: the artwork index and archives.
	DataDir       string `json:"data_dir" env:"ADAM_DATA_DIR"`
	LogLevel      string `json:"log_level" env:"ADAM_LOG_LEVEL"`
	Listen        string `json:"listen" env:"ADAM_LISTEN"`
	PublicURL     string `json:"public_url" env:"ADAM_PUBLIC_URL"`
	MaxConcurrent int64  `json:"max_concurrent" env:"ADAM_MAX_CONCURRENT"`
	HistoryWindow int    `json:"history_window"`
	LLM           struct {
		BaseURL         string  `json:"base_url" env:"OPENAI_BASE_URL"`
		APIKey          string  `json:"api_key" env:"OPENAI_API_KEY"`
		Model           string  `json:"model" env:"OPENAI_MODEL"`
		MaxTokens       int     `json:"max_tokens"`
		Temperature     float32 `json:"temperature"`
		TimeoutSeconds  int     `json:"timeout_seconds"`
		InfoTokenBudget int     `json:"info_token_budget"`
	} `json:"llm"`
	Archive struct {
		MaxFiles      int    `json:"max_files"`
		PruneSchedule string `json:"prune_schedule" env:"ADAM_PRUNE_SCHEDULE"`
	} `json:"archive"`
	Telegram struct {
		Token string `json:"token" env:"TELEGRAM_BOT_TOKEN"`
	} `json:"telegram"`
}

// Load reads the config at path, writing a default file first when none
// exists. A .env file in the working directory and process environment
// variables override file values, in that order of discovery.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if os.IsNotExist(err) {
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
	}

	// .env is a convenience for local runs; absence is not an error.
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		BaseDir:       ".",
		DataDir:       "data",
		LogLevel:      "info",
		Listen:        ":8000",
		PublicURL:     "http://localhost:8000",
		MaxConcurrent: 4,
		HistoryWindow: 10,
	}
	cfg.LLM.BaseURL = "https://api.openai.com/v1"
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.LLM.MaxTokens = 1000
	cfg.LLM.Temperature = 0.7
	cfg.LLM.TimeoutSeconds = 60
	cfg.LLM.InfoTokenBudget = 6000
	cfg.Archive.MaxFiles = 500
	cfg.Archive.PruneSchedule = "0 4 * * *"
	return cfg
}

// Save writes the config to path atomically, creating parent directories.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// Timeout returns the model call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// ArchiveDir returns the directory conversation archives are written to.
func (c *Config) ArchiveDir() string {
	return filepath.Join(c.DataDir, "archives")
}
