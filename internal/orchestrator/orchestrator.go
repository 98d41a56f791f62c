package orchestrator

import (
	"context"
	"fmt"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/manuscript"
)

// LoadSources loads the project at dir and returns its context sources.
// Uses every source type.
func LoadSources(ctx context.Context, dir string) ([]contextpack.Source, error) {
	return LoadSourcesWithOptions(ctx, dir, manuscript.SourceOptions{})
}

// LoadSourcesWithOptions loads the project at dir and returns the sources
// matching opts.
func LoadSourcesWithOptions(ctx context.Context, dir string, opts manuscript.SourceOptions) ([]contextpack.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled before loading: %w", err)
	}

	project, err := manuscript.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled after loading: %w", err)
	}

	return project.Sources(opts), nil
}
