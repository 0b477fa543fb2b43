package guide

import "context"

// PromptKind tells a client which of the two guide calls a prompt belongs to.
type PromptKind int

const (
	KindGuidance PromptKind = iota
	KindVisuals
)

// Prompt is one chat completion request.
type Prompt struct {
	Kind        PromptKind
	Locale      string
	System      string
	User        string
	Temperature float64
	MaxTokens   int64
}

// LLMClient abstracts the chat completion backend so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings configures a concrete client.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
