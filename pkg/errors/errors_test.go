package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesType(t *testing.T) {
	base := NewNotFound("Movie Not Found")
	wrapped := Wrap(base, "lookup failed")

	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, "lookup failed: Movie Not Found", Message(wrapped))
}

func TestWrapPlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), "operation failed")

	assert.True(t, IsInternal(wrapped))
	assert.ErrorContains(t, wrapped, "boom")
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "anything"))
}

func TestMessage(t *testing.T) {
	t.Run("StripsTypePrefixAndCause", func(t *testing.T) {
		err := NewGeneration("failed to generate movie summary", errors.New("rate limited"))
		assert.Equal(t, "failed to generate movie summary", Message(err))
		assert.Contains(t, err.Error(), "GENERATION")
	})

	t.Run("PlainErrorPassesThrough", func(t *testing.T) {
		assert.Equal(t, "boom", Message(errors.New("boom")))
	})
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidation("bad input")))
	assert.True(t, IsUpstream(NewUpstream("store down", nil)))
	assert.False(t, IsNotFound(NewValidation("bad input")))
	assert.False(t, IsGeneration(errors.New("plain")))
}
