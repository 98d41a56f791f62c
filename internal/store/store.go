// Package store persists answers keyed by question together with the signature
// of the context pack they were generated from, so an unchanged pack can reuse
// its answer instead of calling the model again.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidKey   = errors.New("invalid record key")
	ErrStoreClosed  = errors.New("store is closed")
	ErrMissingValue = errors.New("missing record value")
)

// Key identifies a stored answer.
type Key struct {
	Project  string `json:"project"`
	Model    string `json:"model"`
	Question string `json:"question"`
}

// Normalize trims the key fields and folds the question's case and spacing so
// trivially different phrasings share a record.
func (k Key) Normalize() Key {
	return Key{
		Project:  strings.TrimSpace(k.Project),
		Model:    strings.ToLower(strings.TrimSpace(k.Model)),
		Question: strings.Join(strings.Fields(strings.ToLower(k.Question)), " "),
	}
}

func (k Key) validate() error {
	if k.Project == "" {
		return fmt.Errorf("%w: project is required", ErrInvalidKey)
	}
	if k.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidKey)
	}
	if k.Question == "" {
		return fmt.Errorf("%w: question is required", ErrInvalidKey)
	}
	return nil
}

// Record is an answer and the pack it was generated from.
type Record struct {
	Key         Key       `json:"key"`
	Signature   string    `json:"signature"`
	Answer      string    `json:"answer"`
	Model       string    `json:"model"`
	TokenBudget int       `json:"token_budget"`
	TotalTokens int       `json:"total_tokens"`
	CreatedAt   time.Time `json:"created_at"`
}

// prepare normalizes the record for storage and checks required fields.
func (r Record) prepare() (Record, error) {
	r.Key = r.Key.Normalize()
	if err := r.Key.validate(); err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(r.Signature) == "" {
		return Record{}, fmt.Errorf("%w: signature is required", ErrMissingValue)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Millisecond)
	return r, nil
}

// AnswerStore defines the interface for answer persistence
type AnswerStore interface {
	// Get returns the record for key or ErrNotFound
	Get(ctx context.Context, key Key) (Record, error)

	// Put inserts or replaces the record for its key
	Put(ctx context.Context, record Record) error

	// Delete removes the record for key; deleting a missing key is not an error
	Delete(ctx context.Context, key Key) error

	// Close releases resources
	Close() error
}
