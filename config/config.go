// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/nathoo/questrpg/logger"
)

// Config holds the application configuration.
type Config struct {
	SavePath   string `env:"QUESTRPG_SAVE"`
	CatalogDir string `env:"QUESTRPG_CATALOG"`
	LogLevel   string `env:"QUESTRPG_LOG_LEVEL" envDefault:"warn"`
	LogFormat  string `env:"QUESTRPG_LOG_FORMAT" envDefault:"text"`
	LogFile    string `env:"QUESTRPG_LOG_FILE"`
}

// Load reads .env (if present) and then the process environment.
// SavePath defaults to ~/.questrpg/save.json.
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SavePath == "" {
		cfg.SavePath = DefaultSavePath()
	}
	return &cfg, nil
}

// DefaultSavePath is the save location used when none is configured.
func DefaultSavePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "questrpg.json"
	}
	return filepath.Join(home, ".questrpg", "save.json")
}

// Logger returns the logger settings derived from cfg.
func (c *Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat}
}
