package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/wondershelf/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry and audit middleware.
// eventRepo may be nil, in which case requests are only logged, not recorded.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → audit → base
	logged := WithAudit(base, cfg.Provider, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return WithTimeout(retried, cfg.Timeout), nil
}

// NewProviderFromEnv builds a provider from WONDERSHELF_LLM_* variables. When
// no provider was chosen explicitly and the default one has no key, well-known
// API key variables are probed instead. A missing credential is an
// *ErrConfiguration.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, &ErrConfiguration{Reason: err.Error()}
	}

	if verr := cfg.Validate(); verr != nil {
		if os.Getenv(EnvPrefix+"PROVIDER") != "" {
			return nil, verr
		}
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, &ErrConfiguration{
				Reason: "no API key found (set GEMINI_API_KEY, API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY)",
			}
		}
		// Keep model and retry overrides from the environment.
		cfg.Provider = discovered.Provider
		cfg.Gemini.APIKey = discovered.Gemini.APIKey
		cfg.OpenAI.APIKey = discovered.OpenAI.APIKey
		cfg.Anthropic.APIKey = discovered.Anthropic.APIKey
		cfg.OpenRouter.APIKey = discovered.OpenRouter.APIKey
	}

	return NewProvider(ctx, cfg, eventRepo)
}
