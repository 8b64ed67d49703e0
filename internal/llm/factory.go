package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/quizcraft/internal/store"
)

// NewProvider creates a Provider from configuration.
// The returned provider is wrapped with timeout and event logging
// middleware. Retries are owned by the caller. A nil eventRepo skips
// event persistence.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderOllama:
		base, err = NewOllamaProvider(cfg.Ollama)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → logging → timeout → base
	timed := WithTimeout(base, cfg.Timeout)
	return WithLogging(timed, cfg.Provider, eventRepo, logger), nil
}
