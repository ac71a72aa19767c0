package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry, tracing and logging
// middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "ollama":
		base, err = NewOllamaProvider(cfg.Ollama)
	case "mock":
		base = NewDemoProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → tracing → logging → base
	var p Provider = base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo, log)
	}
	p = WithTracing(p)
	p = WithRetry(p, cfg.Retry)
	p = WithTimeout(p, cfg.Timeout)

	return p, nil
}

// NewProviderFromEnv resolves configuration from INTERVIEWER_* variables,
// falling back to discovery of standard API key variables, and builds the
// provider. model, when set, overrides the provider's default model.
func NewProviderFromEnv(ctx context.Context, model string, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	cfg := ResolveConfig().WithModel(model)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo, log)
}

// ResolveConfig returns ConfigFromEnv when INTERVIEWER_LLM_PROVIDER is set,
// otherwise the first discovered provider, otherwise the local Ollama default.
func ResolveConfig() Config {
	cfg := ConfigFromEnv()
	if explicitProvider() {
		return cfg
	}
	if discovered, ok := DiscoverConfig(); ok {
		discovered.Timeout = cfg.Timeout
		discovered.Ollama = cfg.Ollama
		return discovered
	}
	return cfg
}
