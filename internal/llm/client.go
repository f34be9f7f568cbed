package llm

import (
	"context"
	"fmt"
)

// CompletionClient abstracts one completion call against the external model
// service. Implementations must be safe for concurrent use.
type CompletionClient interface {
	Complete(ctx context.Context, p Prompt, temperature float32, maxOutputTokens int32) (string, error)
}

// NewClient builds the concrete client for the configured provider.
func NewClient(ctx context.Context, cfg Settings) (CompletionClient, error) {
	switch cfg.Provider {
	case "", ProviderOpenAI:
		return NewOpenAIClient(cfg)
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}
