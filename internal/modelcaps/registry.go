// Package modelcaps reports the input and output token ceilings of the models the
// assistant can talk to. Lookups never fail: unknown identifiers resolve to a
// conservative fallback so callers can always size a context.
package modelcaps

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidCapability = errors.New("invalid model capability")
)

// Capability describes the token limits of a single model.
type Capability struct {
	// MaxInputTokens is the size of the model's context window
	MaxInputTokens int `yaml:"max_input_tokens" json:"max_input_tokens"`

	// MaxOutputTokens is the largest completion the model can produce
	MaxOutputTokens int `yaml:"max_output_tokens" json:"max_output_tokens"`

	// RecommendedOutput is the response size the assistant normally asks for
	RecommendedOutput int `yaml:"recommended_output" json:"recommended_output"`
}

// Validate reports whether the capability can be used for budgeting.
func (c Capability) Validate() error {
	if c.MaxInputTokens <= 0 {
		return fmt.Errorf("%w: max_input_tokens must be positive, got %d", ErrInvalidCapability, c.MaxInputTokens)
	}
	if c.MaxOutputTokens < 0 || c.RecommendedOutput < 0 {
		return fmt.Errorf("%w: output limits cannot be negative", ErrInvalidCapability)
	}
	return nil
}

// FallbackCapability is used for model identifiers the registry does not know.
var FallbackCapability = Capability{
	MaxInputTokens:    8192,
	MaxOutputTokens:   2048,
	RecommendedOutput: 1024,
}

// DefaultCapabilities contains the built-in model table.
var DefaultCapabilities = map[string]Capability{
	// OpenAI
	"gpt-4":         {MaxInputTokens: 8192, MaxOutputTokens: 4096, RecommendedOutput: 2048},
	"gpt-4-turbo":   {MaxInputTokens: 128000, MaxOutputTokens: 4096, RecommendedOutput: 2048},
	"gpt-4o":        {MaxInputTokens: 128000, MaxOutputTokens: 16384, RecommendedOutput: 4096},
	"gpt-4o-mini":   {MaxInputTokens: 128000, MaxOutputTokens: 16384, RecommendedOutput: 4096},
	"gpt-4.1":       {MaxInputTokens: 1047576, MaxOutputTokens: 32768, RecommendedOutput: 4096},
	"gpt-3.5-turbo": {MaxInputTokens: 16385, MaxOutputTokens: 4096, RecommendedOutput: 1024},

	// Anthropic
	"claude-3-5-sonnet": {MaxInputTokens: 200000, MaxOutputTokens: 8192, RecommendedOutput: 4096},
	"claude-3-5-haiku":  {MaxInputTokens: 200000, MaxOutputTokens: 8192, RecommendedOutput: 2048},
	"claude-3-opus":     {MaxInputTokens: 200000, MaxOutputTokens: 4096, RecommendedOutput: 2048},
	"claude-3-haiku":    {MaxInputTokens: 200000, MaxOutputTokens: 4096, RecommendedOutput: 2048},

	// Google
	"gemini-1.5-pro":   {MaxInputTokens: 2000000, MaxOutputTokens: 8192, RecommendedOutput: 4096},
	"gemini-1.5-flash": {MaxInputTokens: 1000000, MaxOutputTokens: 8192, RecommendedOutput: 4096},
}

// Registry is a read-mostly lookup table keyed by model identifier.
type Registry struct {
	mu       sync.RWMutex
	models   map[string]Capability
	fallback Capability
}

// NewRegistry creates a registry with the given models and fallback.
func NewRegistry(models map[string]Capability, fallback Capability) *Registry {
	r := &Registry{
		models:   make(map[string]Capability, len(models)),
		fallback: fallback,
	}
	for id, c := range models {
		r.models[normalizeID(id)] = c
	}
	return r
}

// Default returns a registry populated with DefaultCapabilities.
func Default() *Registry {
	return NewRegistry(DefaultCapabilities, FallbackCapability)
}

// Lookup returns the capability for a model. Matching tries the exact
// identifier, then the longest registered prefix (so dated snapshots such as
// "gpt-4o-2024-08-06" resolve to "gpt-4o"), then the fallback.
func (r *Registry) Lookup(model string) Capability {
	c, ok := r.resolve(model)
	if !ok {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.fallback
	}
	return c
}

// Known reports whether the model resolves to a registered entry.
func (r *Registry) Known(model string) bool {
	_, ok := r.resolve(model)
	return ok
}

func (r *Registry) resolve(model string) (Capability, bool) {
	id := normalizeID(model)
	if id == "" {
		return Capability{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.models[id]; ok {
		return c, true
	}

	best := ""
	for known := range r.models {
		if strings.HasPrefix(id, known+"-") && len(known) > len(best) {
			best = known
		}
	}
	if best == "" {
		return Capability{}, false
	}
	return r.models[best], true
}

// Register adds or replaces a model entry.
func (r *Registry) Register(model string, c Capability) error {
	id := normalizeID(model)
	if id == "" {
		return fmt.Errorf("%w: model identifier is required", ErrInvalidCapability)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("model %s: %w", model, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[id] = c
	return nil
}

// Models returns the registered identifiers in sorted order.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.models))
	for id := range r.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// capabilityFile is the on-disk shape of a models override file.
type capabilityFile struct {
	Fallback *Capability          `yaml:"fallback"`
	Models   map[string]Capability `yaml:"models"`
}

// LoadFile merges model overrides from a YAML file into the registry.
func (r *Registry) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var file capabilityFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	for id, c := range file.Models {
		if err := r.Register(id, c); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if file.Fallback != nil {
		if err := file.Fallback.Validate(); err != nil {
			return fmt.Errorf("%s: fallback: %w", path, err)
		}
		r.mu.Lock()
		r.fallback = *file.Fallback
		r.mu.Unlock()
	}

	return nil
}

func normalizeID(model string) string {
	return strings.ToLower(strings.TrimSpace(model))
}
