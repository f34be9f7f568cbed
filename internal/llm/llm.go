// Package llm abstracts the external completion service behind a small
// client interface so the story generator can be exercised without network
// access.
package llm

// Prompt is one chat-style completion request: a system instruction block
// and a user instruction block.
type Prompt struct {
	System string
	User   string
}

// Settings is the provider configuration shared by the concrete clients.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)
