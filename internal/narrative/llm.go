// Package narrative answers a writer's questions about their manuscript with a
// language model. It defines a provider-agnostic LLM interface with an OpenAI
// implementation and a deterministic mock for testing, assembles prompts around
// a packed context bundle and returns structured narrative objects.
package narrative

import (
	"context"
	"errors"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// Prompt is a two-part chat prompt. System carries instructions and story
// context; User carries the writer's question.
type Prompt struct {
	System string
	User   string
}

// IsEmpty reports whether both segments are blank.
func (p Prompt) IsEmpty() bool {
	return p.System == "" && p.User == ""
}

// LLM defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Generate produces text from a prompt using the configured model.
	// Returns the generated text or an error if generation fails.
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// LLMConfig holds common configuration options for LLM providers.
type LLMConfig struct {
	// Model specifies the model identifier (e.g., "gpt-4o", "gpt-4")
	Model string

	// Temperature controls randomness (0.0 = deterministic, 2.0 = very random)
	Temperature float32

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string
}

// DefaultLLMConfig returns sensible defaults for answering manuscript questions.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       "gpt-4o",
		Temperature: 0, // model default
		MaxTokens:   2000,
	}
}
