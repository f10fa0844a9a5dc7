package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/worksheetai/internal/logger"
)

// ErrNotConfigured is returned at startup when no usable provider
// configuration (typically an API key) is present.
var ErrNotConfigured = errors.New("LLM provider not configured")

// NewProvider creates a Provider from configuration, wrapped with the
// timeout and logging middleware. Configuration problems are reported here,
// once, rather than on each request.
func NewProvider(ctx context.Context, cfg Config, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q", ErrNotConfigured, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → logging → timeout → base
	timed := WithTimeout(base, cfg.Timeout)
	return WithLogging(timed, cfg.Provider, log), nil
}

// NewProviderFromEnv is NewProvider over LoadConfig.
func NewProviderFromEnv(ctx context.Context, log *logger.Logger) (Provider, error) {
	return NewProvider(ctx, LoadConfig(), log)
}

// TimeoutProvider bounds every Generate call with a deadline.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps p so each request is cancelled after d. A zero d
// returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
