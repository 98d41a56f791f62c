package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("expected default model gpt-4o, got %q", cfg.Model)
	}
	if cfg.ProjectDir != "." {
		t.Errorf("expected default project dir, got %q", cfg.ProjectDir)
	}
	if cfg.PackConfig() != contextpack.DefaultConfig() {
		t.Errorf("expected default pack config, got %+v", cfg.PackConfig())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CONTEXTPACK_MODEL", "gpt-4")
	t.Setenv("CONTEXTPACK_PROJECT_DIR", "/novels/skyfall")
	t.Setenv("CONTEXTPACK_MAX_BLOCKS", "6")
	t.Setenv("CONTEXTPACK_MAX_BUDGET_CAP", "8000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OpenAIKey != "sk-test" || cfg.Model != "gpt-4" || cfg.ProjectDir != "/novels/skyfall" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	pc := cfg.PackConfig()
	if pc.MaxBlocks != 6 || pc.MaxBudgetCap != 8000 {
		t.Errorf("unexpected pack config: %+v", pc)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("CONTEXTPACK_MAX_BLOCKS", "many")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Model: "gpt-4o", MinBudget: 1500, MaxBudgetCap: 16000, MinTruncatedBlock: 250, MaxBlocks: 12}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing model", mutate: func(c *Config) { c.Model = "" }, wantErr: true},
		{name: "zero blocks", mutate: func(c *Config) { c.MaxBlocks = 0 }, wantErr: true},
		{name: "negative floor", mutate: func(c *Config) { c.MinBudget = -1 }, wantErr: true},
		{name: "floor above cap", mutate: func(c *Config) { c.MinBudget = 20000 }, wantErr: true},
		{name: "floor equals cap", mutate: func(c *Config) { c.MinBudget = 16000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
