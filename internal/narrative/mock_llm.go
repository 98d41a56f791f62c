package narrative

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockLLM is a deterministic LLM implementation for testing.
// It returns predictable responses based on prompt content.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	// If empty, a default response is generated from the prompt.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	mu         sync.Mutex
	lastPrompt Prompt
	calls      int
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or generates a deterministic one.
func (m *MockLLM) Generate(ctx context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	m.lastPrompt = prompt
	m.calls++
	m.mu.Unlock()

	if m.Error != nil {
		return "", m.Error
	}

	if m.Response != "" {
		return m.Response, nil
	}

	return generateMockResponse(prompt), nil
}

// LastPrompt returns the most recent prompt passed to Generate.
func (m *MockLLM) LastPrompt() Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// Calls returns how many times Generate ran.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// generateMockResponse echoes the question and counts the evidence blocks.
func generateMockResponse(prompt Prompt) string {
	blocks := 0
	for _, line := range strings.Split(prompt.System, "\n") {
		if strings.HasPrefix(line, "#") && strings.Contains(line, " | type=") {
			blocks++
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Answering %q ", strings.TrimSpace(prompt.User)))
	b.WriteString(fmt.Sprintf("from %d context blocks. ", blocks))
	b.WriteString("The story so far supports this reading of events.")
	return b.String()
}
