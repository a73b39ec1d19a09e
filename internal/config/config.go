// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by every command. LLM provider settings
// live in llm.Config.
type Config struct {
	Locale        string `env:"WONDERSHELF_LOCALE"         envDefault:"vi"`
	CatalogPath   string `env:"WONDERSHELF_CATALOG"`
	DBPath        string `env:"WONDERSHELF_DB"`
	LogFile       string `env:"WONDERSHELF_LOG_FILE"`
	LogLevel      string `env:"WONDERSHELF_LOG_LEVEL"      envDefault:"info"`
	LogFormat     string `env:"WONDERSHELF_LOG_FORMAT"     envDefault:"text"`
	QuestionCount int    `env:"WONDERSHELF_QUESTION_COUNT" envDefault:"10"`
	ServerAddr    string `env:"WONDERSHELF_ADDR"           envDefault:":8080"`
	NoAudit       bool   `env:"WONDERSHELF_NO_AUDIT"`
}

// LoadDotEnv reads .env files into the process environment without
// overriding variables that are already set. Missing files are fine.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load loads .env and parses the environment.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	return Parse()
}

// Parse reads the environment into a Config.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	if c.QuestionCount < 1 || c.QuestionCount > 30 {
		return fmt.Errorf("WONDERSHELF_QUESTION_COUNT must be between 1 and 30, got %d", c.QuestionCount)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("WONDERSHELF_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}
