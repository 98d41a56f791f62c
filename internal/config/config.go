// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds everything the CLI needs to open a project and talk to a model.
type Config struct {
	OpenAIKey  string `env:"OPENAI_API_KEY"`
	Model      string `env:"CONTEXTPACK_MODEL" envDefault:"gpt-4o"`
	ProjectDir string `env:"CONTEXTPACK_PROJECT_DIR" envDefault:"."`
	StorePath  string `env:"CONTEXTPACK_STORE_PATH" envDefault:".contextpack.db"`
	ModelsFile string `env:"CONTEXTPACK_MODELS_FILE"`

	MinBudget         int `env:"CONTEXTPACK_MIN_BUDGET" envDefault:"1500"`
	MaxBudgetCap      int `env:"CONTEXTPACK_MAX_BUDGET_CAP" envDefault:"16000"`
	MinTruncatedBlock int `env:"CONTEXTPACK_MIN_TRUNCATED_BLOCK" envDefault:"250"`
	MaxBlocks         int `env:"CONTEXTPACK_MAX_BLOCKS" envDefault:"12"`
}

// Load parses the environment into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the packing tunables.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	tunables := []struct {
		name  string
		value int
	}{
		{"CONTEXTPACK_MIN_BUDGET", c.MinBudget},
		{"CONTEXTPACK_MAX_BUDGET_CAP", c.MaxBudgetCap},
		{"CONTEXTPACK_MIN_TRUNCATED_BLOCK", c.MinTruncatedBlock},
		{"CONTEXTPACK_MAX_BLOCKS", c.MaxBlocks},
	}
	for _, tv := range tunables {
		if tv.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, tv.name, tv.value)
		}
	}
	if c.MinBudget > c.MaxBudgetCap {
		return fmt.Errorf("%w: min budget %d exceeds budget cap %d", ErrInvalidConfig, c.MinBudget, c.MaxBudgetCap)
	}
	return nil
}

// PackConfig returns the packing tunables as a contextpack.Config.
func (c *Config) PackConfig() contextpack.Config {
	return contextpack.Config{
		MinBudget:         c.MinBudget,
		MaxBudgetCap:      c.MaxBudgetCap,
		MinTruncatedBlock: c.MinTruncatedBlock,
		MaxBlocks:         c.MaxBlocks,
	}
}
