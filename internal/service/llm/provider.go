// Package llm provides AI-powered text generation for movie summaries.
package llm

import "context"

// Message is one role-tagged entry in an ordered chat-completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// CompletionRequest configures a single text-generation call.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Provider defines the interface for text-generation backends (OpenAI,
// mock, etc.). Implementations return the first candidate completion.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	IsAvailable() bool
}
