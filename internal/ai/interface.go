// README: LLM provider abstraction for structured JSON generation.
package ai

import (
	"context"
	"errors"
	"fmt"

	"wanderlust/internal/config"
	"wanderlust/internal/modules/itinerary"
)

// ErrEmptyResponse is returned when a provider answers without any content.
var ErrEmptyResponse = errors.New("ai: empty response")

// Prompt is a system/user message pair plus the schema the reply must follow.
type Prompt struct {
	System string
	User   string
	Schema *itinerary.SchemaNode
}

// TextGenerator produces a JSON document for a prompt.
// Implementations exist for Groq and Gemini so the provider can be picked by config.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, p Prompt) (string, error)
}

// NewFromConfig builds the configured provider. The returned close func is
// never nil.
func NewFromConfig(ctx context.Context, cfg config.AIConfig) (TextGenerator, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Provider {
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.Temperature)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil
	case config.ProviderGroq:
		return NewGroqProvider(cfg.GroqKey, cfg.GroqModel, cfg.Temperature), noop, nil
	default:
		return nil, noop, fmt.Errorf("ai: unknown provider %q", cfg.Provider)
	}
}
