package llm

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured for the Gemini
// provider.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements CompletionClient using the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient builds a Gemini-backed client from settings.
func NewGeminiClient(ctx context.Context, cfg Settings) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, p Prompt, temperature float32, maxOutputTokens int32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(temperature),
		MaxOutputTokens:   maxOutputTokens,
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: p.User}},
		},
	}, config)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", nil
}
