package llm

import (
	"context"
	"fmt"
	"strings"

	appErrors "themefinder-backend/pkg/errors"
)

const reviewerSystemPrompt = "You are an expert movie reviewer."

const summaryPromptTemplate = "Write a concise and engaging summary for a movie titled '%s' " +
	"released in %d. The genre of the movie is %s. " +
	"Focus on the plot and main themes without revealing spoilers."

// Generator produces movie summaries through a Provider. It is a pure
// function of its inputs except for the non-determinism of the remote model.
type Generator struct {
	provider Provider
}

// NewGenerator creates a new summary generator with the specified provider.
func NewGenerator(provider Provider) *Generator {
	return &Generator{provider: provider}
}

// IsAvailable returns true if the underlying provider is usable.
func (g *Generator) IsAvailable() bool {
	return g.provider != nil && g.provider.IsAvailable()
}

// MovieSummary generates a short prose synopsis for the given movie facts.
// Failures propagate as a distinct generation error; the failure text must
// never be mistaken for summary content by callers.
func (g *Generator) MovieSummary(ctx context.Context, title string, year int, genre string) (string, error) {
	if !g.IsAvailable() {
		return "", appErrors.NewGeneration("text-generation service is not available", nil)
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, title, year, genre)

	text, err := g.provider.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: reviewerSystemPrompt},
			{Role: RoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil {
		return "", appErrors.NewGeneration("failed to generate movie summary", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", appErrors.NewGeneration("text-generation service returned an empty summary", nil)
	}
	return text, nil
}
