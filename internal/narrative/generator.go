package narrative

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrGenerationFailed = errors.New("narrative generation failed")
)

// Narrative is a generated answer to a question about the manuscript.
type Narrative struct {
	// Subject is what the narrative answers, usually the question
	Subject string `json:"subject"`

	// Text is the generated narrative content
	Text string `json:"text"`

	// GeneratedAt is when this narrative was created
	GeneratedAt time.Time `json:"generated_at"`

	// Model is the LLM model used to generate this narrative
	Model string `json:"model"`
}

// Generator invokes an LLM on an already-assembled prompt.
type Generator struct {
	llm    LLM
	config LLMConfig
}

// NewGenerator creates a narrative generator with the given LLM implementation.
func NewGenerator(llm LLM, config LLMConfig) *Generator {
	return &Generator{
		llm:    llm,
		config: config,
	}
}

// Model returns the configured model identifier.
func (g *Generator) Model() string {
	return g.config.Model
}

// Generate creates a narrative by invoking the LLM with an already-assembled prompt.
// It must not perform packing or prompt construction.
func (g *Generator) Generate(ctx context.Context, subject string, prompt Prompt) (*Narrative, error) {
	if g.llm == nil {
		return nil, fmt.Errorf("%w: LLM is required", ErrGenerationFailed)
	}
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrGenerationFailed)
	}
	if prompt.IsEmpty() {
		return nil, fmt.Errorf("%w: prompt is required", ErrGenerationFailed)
	}

	text, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: LLM invocation failed: %w", ErrGenerationFailed, err)
	}

	return &Narrative{
		Subject:     subject,
		Text:        text,
		GeneratedAt: time.Now(),
		Model:       g.config.Model,
	}, nil
}
