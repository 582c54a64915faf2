package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockProvider provides a canned-completion implementation for testing and
// local development without an OpenAI credential.
type MockProvider struct {
	mu        sync.Mutex
	available bool
	response  string
	err       error
	calls     int
	lastReq   CompletionRequest
}

// NewMockProvider creates a new mock provider that echoes a deterministic
// summary derived from the prompt.
func NewMockProvider() *MockProvider {
	return &MockProvider{available: true}
}

// IsAvailable returns whether the mock provider is available.
func (m *MockProvider) IsAvailable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available
}

// SetAvailable controls availability (for testing).
func (m *MockProvider) SetAvailable(available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = available
}

// SetResponse fixes the completion text returned by subsequent calls.
func (m *MockProvider) SetResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = text
}

// SetError makes subsequent calls fail with err.
func (m *MockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many completions were requested.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastRequest returns the most recent completion request.
func (m *MockProvider) LastRequest() CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReq
}

// Complete returns the configured response, or a deterministic placeholder
// built from the user message when none is set.
func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.lastReq = req

	if !m.available {
		return "", fmt.Errorf("mock provider is not available")
	}
	if m.err != nil {
		return "", m.err
	}
	if m.response != "" {
		return m.response, nil
	}

	for _, msg := range req.Messages {
		if msg.Role == RoleUser {
			return "Mock summary: " + firstLine(msg.Content), nil
		}
	}
	return "Mock summary.", nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
