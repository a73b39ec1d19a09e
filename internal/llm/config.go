package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every LLM setting read from the environment,
// e.g. WONDERSHELF_LLM_PROVIDER or WONDERSHELF_LLM_GEMINI_API_KEY.
const EnvPrefix = "WONDERSHELF_LLM_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string `env:"PROVIDER"`

	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"RETRY_"`

	// Timeout bounds a single Generate call including retries.
	// Zero leaves it to the transport.
	Timeout time.Duration `env:"TIMEOUT"`
}

type GeminiConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`    // Default: "gemini-flash"
	BaseURL string `env:"BASE_URL"` // Optional. For proxies.
}

type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`    // Default: "gpt-4o-mini"
	BaseURL string `env:"BASE_URL"` // Optional. Override for compatible APIs.
}

type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL"` // Default: "claude-haiku"
}

type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`    // Default: "google/gemini-2.5-flash"
	BaseURL string `env:"BASE_URL"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS"`
	InitialWait time.Duration `env:"INITIAL_WAIT"`
	MaxWait     time.Duration `env:"MAX_WAIT"`
	Multiplier  float64       `env:"MULTIPLIER"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv overlays WONDERSHELF_LLM_* variables on the defaults.
// Unset variables keep their default value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse LLM env: %w", err)
	}
	return cfg, nil
}

// wellKnownKeys lists API key variables in the order DiscoverConfig tries
// them. A bare API_KEY is taken to be a Gemini key.
var wellKnownKeys = []struct {
	env string
	set func(*Config, string)
}{
	{"GEMINI_API_KEY", setGemini},
	{"GOOGLE_API_KEY", setGemini},
	{"API_KEY", setGemini},
	{"OPENAI_API_KEY", func(c *Config, k string) { c.Provider, c.OpenAI.APIKey = "openai", k }},
	{"ANTHROPIC_API_KEY", func(c *Config, k string) { c.Provider, c.Anthropic.APIKey = "anthropic", k }},
	{"OPENROUTER_API_KEY", func(c *Config, k string) { c.Provider, c.OpenRouter.APIKey = "openrouter", k }},
}

func setGemini(c *Config, k string) { c.Provider, c.Gemini.APIKey = "gemini", k }

// DiscoverConfig returns defaults pointed at the provider of the first
// well-known API key variable that is set.
func DiscoverConfig() (Config, bool) {
	for _, wk := range wellKnownKeys {
		if k := os.Getenv(wk.env); k != "" {
			cfg := DefaultConfig()
			wk.set(&cfg, k)
			return cfg, true
		}
	}
	return Config{}, false
}

// apiKey returns the key configured for the selected provider and whether
// the provider is known at all.
func (c Config) apiKey() (string, bool) {
	switch c.Provider {
	case "gemini":
		return c.Gemini.APIKey, true
	case "openai":
		return c.OpenAI.APIKey, true
	case "anthropic":
		return c.Anthropic.APIKey, true
	case "openrouter":
		return c.OpenRouter.APIKey, true
	case "mock":
		return "unused", true
	}
	return "", false
}

// Validate checks that the selected provider is known and has its API key.
// Failures are *ErrConfiguration.
func (c Config) Validate() error {
	key, known := c.apiKey()
	if !known {
		return &ErrConfiguration{Reason: fmt.Sprintf("unknown LLM provider: %q", c.Provider)}
	}
	if key == "" {
		return &ErrConfiguration{Reason: fmt.Sprintf("%s%s_API_KEY is required for the %s provider",
			EnvPrefix, strings.ToUpper(c.Provider), c.Provider)}
	}
	return nil
}
