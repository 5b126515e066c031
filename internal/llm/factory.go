package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/interviewd/internal/store"
	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry, metrics and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
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
	case ProviderAzure:
		base, err = NewAzureProvider(cfg.Azure)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base, cfg.Retry, cfg.Timeout, eventRepo, log), nil
}

// Wrap applies the standard middleware chain:
// caller → retry → timeout → metrics → logging → base.
// Each attempt gets its own timeout and is logged and measured; retries are
// invisible to callers. A zero timeout leaves attempts unbounded.
func Wrap(base Provider, retry RetryConfig, timeout time.Duration, eventRepo store.EventRepo, log *zap.Logger) Provider {
	logged := WithLogging(base, eventRepo, log)
	measured := WithMetrics(logged)
	return WithRetry(WithTimeout(measured, timeout), retry)
}
