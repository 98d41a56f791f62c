// Package contextpack assembles a bounded, relevance-ranked evidence bundle from
// manuscript sources so it fits inside a model's input token budget while leaving
// room for the model's response.
//
// Packing is a pure computation over in-memory values: it performs no I/O, holds
// no shared mutable state and never returns an error. Degenerate input produces an
// empty or partial Result annotated through Truncated, Excluded and WarningMessage.
package contextpack

import (
	"time"
)

// SourceType identifies what kind of manuscript material a source carries.
type SourceType string

const (
	SourceNovel   SourceType = "novel"
	SourceOutline SourceType = "outline"
	SourceAct     SourceType = "act"
	SourceChapter SourceType = "chapter"
	SourceScene   SourceType = "scene"
	SourceCodex   SourceType = "codex"
)

// SourceTypes lists every known source type, most specific first.
var SourceTypes = []SourceType{
	SourceCodex,
	SourceScene,
	SourceChapter,
	SourceAct,
	SourceOutline,
	SourceNovel,
}

// Exclusion reasons recorded in Result.Excluded.
const (
	ReasonMaxBlocks          = "exceeds max block count"
	ReasonInsufficientBudget = "insufficient token budget"
)

// Source is a labeled, typed chunk of raw text eligible for inclusion in a prompt.
// Sources are supplied fresh by the caller on every call and never modified.
type Source struct {
	ID        string     `json:"id"`
	Type      SourceType `json:"type"`
	Label     string     `json:"label"`
	Content   string     `json:"content"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Block is a selected source with the content actually included.
type Block struct {
	Source

	// Score is the relevance score used for ranking
	Score float64 `json:"score"`

	// Tokens is the estimated size of Content after any truncation
	Tokens int `json:"tokens"`

	// Truncated is set when Content was shortened to fit the budget
	Truncated bool `json:"truncated"`
}

// Result is the outcome of a single packing call.
type Result struct {
	Blocks         []Block  `json:"blocks"`
	Serialized     string   `json:"serialized"`
	TotalTokens    int      `json:"total_tokens"`
	TokenBudget    int      `json:"token_budget"`
	Truncated      bool     `json:"truncated"`
	Excluded       []string `json:"excluded"`
	WarningMessage *string  `json:"warning_message"`
	Signature      string   `json:"signature"`
}

// Options are the per-call packing parameters. Nil pointers mean "not set".
type Options struct {
	// Query is the free-text request the evidence should support
	Query string

	// Model selects the capability entry used for budgeting
	Model string

	// MaxContextTokens requests an explicit budget (still clamped)
	MaxContextTokens *int

	// ReserveResponseTokens overrides the response reservation
	ReserveResponseTokens *int

	// MaxBlocks overrides Config.MaxBlocks for this call
	MaxBlocks *int
}

// Config holds the packing tunables. Each Packer carries its own copy so callers
// with different defaults never interfere.
type Config struct {
	// MinBudget is the smallest token budget ever handed to selection
	MinBudget int

	// MaxBudgetCap bounds the budget regardless of model size
	MaxBudgetCap int

	// MinTruncatedBlock is the smallest remaining budget worth filling with a
	// truncated block; below it selection stops
	MinTruncatedBlock int

	// MaxBlocks caps the number of selected blocks
	MaxBlocks int
}

// DefaultConfig returns the standard packing tunables.
func DefaultConfig() Config {
	return Config{
		MinBudget:         1500,
		MaxBudgetCap:      16000,
		MinTruncatedBlock: 250,
		MaxBlocks:         12,
	}
}

// withDefaults fills zero or negative fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinBudget <= 0 {
		c.MinBudget = d.MinBudget
	}
	if c.MaxBudgetCap <= 0 {
		c.MaxBudgetCap = d.MaxBudgetCap
	}
	if c.MinTruncatedBlock <= 0 {
		c.MinTruncatedBlock = d.MinTruncatedBlock
	}
	if c.MaxBlocks <= 0 {
		c.MaxBlocks = d.MaxBlocks
	}
	return c
}

// Int returns a pointer to v, for populating optional Options fields.
func Int(v int) *int {
	return &v
}
