package llm

import (
	"context"
	"errors"
	"testing"

	appErrors "themefinder-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("PromptEmbedsMovieFacts", func(t *testing.T) {
		provider := NewMockProvider()
		provider.SetResponse("A sweeping romance aboard a doomed liner.")
		gen := NewGenerator(provider)

		text, err := gen.MovieSummary(ctx, "Titanic", 1997, "Romance")
		require.NoError(t, err)
		assert.Equal(t, "A sweeping romance aboard a doomed liner.", text)

		req := provider.LastRequest()
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleSystem, req.Messages[0].Role)
		assert.Equal(t, "You are an expert movie reviewer.", req.Messages[0].Content)
		assert.Equal(t, RoleUser, req.Messages[1].Role)
		assert.Contains(t, req.Messages[1].Content, "'Titanic'")
		assert.Contains(t, req.Messages[1].Content, "1997")
		assert.Contains(t, req.Messages[1].Content, "Romance")
	})

	t.Run("ProviderErrorBecomesGenerationError", func(t *testing.T) {
		provider := NewMockProvider()
		provider.SetError(errors.New("rate limited"))
		gen := NewGenerator(provider)

		_, err := gen.MovieSummary(ctx, "Titanic", 1997, "Romance")
		require.Error(t, err)
		assert.True(t, appErrors.IsGeneration(err))
	})

	t.Run("EmptyCompletionIsAnError", func(t *testing.T) {
		provider := NewMockProvider()
		provider.SetResponse("   \n ")
		gen := NewGenerator(provider)

		_, err := gen.MovieSummary(ctx, "Titanic", 1997, "Romance")
		require.Error(t, err)
		assert.True(t, appErrors.IsGeneration(err))
	})

	t.Run("UnavailableProviderFailsFast", func(t *testing.T) {
		provider := NewMockProvider()
		provider.SetAvailable(false)
		gen := NewGenerator(provider)

		_, err := gen.MovieSummary(ctx, "Titanic", 1997, "Romance")
		require.Error(t, err)
		assert.True(t, appErrors.IsGeneration(err))
		assert.Equal(t, 0, provider.Calls())
	})

	t.Run("NilProviderFailsFast", func(t *testing.T) {
		gen := NewGenerator(nil)

		_, err := gen.MovieSummary(ctx, "Titanic", 1997, "Romance")
		require.Error(t, err)
		assert.True(t, appErrors.IsGeneration(err))
	})

	t.Run("ResponseWhitespaceTrimmed", func(t *testing.T) {
		provider := NewMockProvider()
		provider.SetResponse("\n A tense spy thriller. \n")
		gen := NewGenerator(provider)

		text, err := gen.MovieSummary(ctx, "Skyfall", 2012, "Action")
		require.NoError(t, err)
		assert.Equal(t, "A tense spy thriller.", text)
	})
}
