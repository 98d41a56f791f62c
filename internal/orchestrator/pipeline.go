package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/contextpack"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/manuscript"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/modelcaps"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/narrative"
	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/store"
)

var (
	ErrNoLLM = errors.New("pipeline has no LLM configured")
)

// PipelineConfig holds configuration for the context packing pipeline.
type PipelineConfig struct {
	// ProjectDir is the root of the novel project
	ProjectDir string

	// Model selects the capability entry used for budgeting
	Model string

	// ModelsFile optionally points at a YAML file of capability overrides
	ModelsFile string

	// PackConfig holds the packing tunables
	PackConfig contextpack.Config

	// MaxContextTokens requests an explicit budget (still clamped)
	MaxContextTokens *int

	// ReserveResponseTokens overrides the response reservation
	ReserveResponseTokens *int

	// MaxBlocks overrides PackConfig.MaxBlocks per call
	MaxBlocks *int

	// Sources filters which manuscript sources are considered
	Sources manuscript.SourceOptions

	// LLMConfig holds the LLM configuration for answer generation
	LLMConfig narrative.LLMConfig
}

// DefaultPipelineConfig returns sensible defaults for the pipeline.
func DefaultPipelineConfig() PipelineConfig {
	llm := narrative.DefaultLLMConfig()
	return PipelineConfig{
		ProjectDir: ".",
		Model:      llm.Model,
		PackConfig: contextpack.DefaultConfig(),
		LLMConfig:  llm,
	}
}

// Answer is the outcome of Ask.
type Answer struct {
	Narrative *narrative.Narrative
	Pack      *contextpack.Result

	// Reused is set when the stored answer was returned because the pack
	// signature matched
	Reused bool
}

// Pipeline orchestrates project loading, packing, prompt assembly and answer
// generation.
type Pipeline struct {
	config    PipelineConfig
	packer    *contextpack.Packer
	generator *narrative.Generator
	answers   store.AnswerStore
	project   string
}

// NewPipeline creates a pipeline. llm and answers may be nil: without an LLM
// only Assemble is available, and without a store every Ask generates afresh.
func NewPipeline(config PipelineConfig, llm narrative.LLM, answers store.AnswerStore) (*Pipeline, error) {
	if strings.TrimSpace(config.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}

	models := modelcaps.Default()
	if config.ModelsFile != "" {
		if err := models.LoadFile(config.ModelsFile); err != nil {
			return nil, fmt.Errorf("failed to load model capabilities: %w", err)
		}
	}
	if !models.Known(config.Model) {
		log.Printf("[Context Pipeline] Warning: unknown model %q, using fallback limits", config.Model)
	}

	p := &Pipeline{
		config:  config,
		packer:  contextpack.NewPacker(models, config.PackConfig),
		answers: answers,
		project: projectKey(config.ProjectDir),
	}
	if llm != nil {
		llmConfig := config.LLMConfig
		if llmConfig.Model == "" {
			llmConfig.Model = config.Model
		}
		p.generator = narrative.NewGenerator(llm, llmConfig)
	}
	return p, nil
}

// Close releases resources held by the pipeline.
func (p *Pipeline) Close() error {
	if p.answers != nil {
		return p.answers.Close()
	}
	return nil
}

// Budget returns the token budget packs from this pipeline use.
func (p *Pipeline) Budget() int {
	return p.packer.Budget(p.options(""))
}

func (p *Pipeline) options(query string) contextpack.Options {
	return contextpack.Options{
		Query:                 query,
		Model:                 p.config.Model,
		MaxContextTokens:      p.config.MaxContextTokens,
		ReserveResponseTokens: p.config.ReserveResponseTokens,
		MaxBlocks:             p.config.MaxBlocks,
	}
}

// Assemble loads the project and packs its sources against query.
func (p *Pipeline) Assemble(ctx context.Context, query string) (*contextpack.Result, error) {
	sources, err := LoadSourcesWithOptions(ctx, p.config.ProjectDir, p.config.Sources)
	if err != nil {
		return nil, err
	}
	log.Printf("[Context Pipeline] Packing %d sources for model %s", len(sources), p.config.Model)

	result := p.packer.Pack(sources, p.options(query))
	log.Printf("[Context Pipeline] Packed %d blocks (%d/%d tokens, signature %s)",
		len(result.Blocks), result.TotalTokens, result.TokenBudget, result.Signature)
	if result.WarningMessage != nil {
		log.Printf("[Context Pipeline] %s", *result.WarningMessage)
	}
	return &result, nil
}

// Ask answers a question about the project.
// The pipeline: load -> pack -> signature check -> prompt assembly -> LLM generation.
// When a stored answer exists for the same question and its pack signature is
// unchanged, it is returned without calling the model unless refresh is set.
func (p *Pipeline) Ask(ctx context.Context, question string, refresh bool) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, narrative.ErrMissingQuestion
	}
	if p.generator == nil {
		return nil, ErrNoLLM
	}

	log.Printf("[Context Pipeline] Answering: %s", question)

	// Stage 1: Packing
	pack, err := p.Assemble(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("packing failed: %w", err)
	}

	key := store.Key{Project: p.project, Model: p.config.Model, Question: question}

	// Stage 2: Signature check
	if p.answers != nil && !refresh {
		rec, err := p.answers.Get(ctx, key)
		switch {
		case err == nil && rec.Signature == pack.Signature:
			log.Printf("[Context Pipeline] Context unchanged (signature %s), reusing stored answer", pack.Signature)
			return &Answer{
				Narrative: &narrative.Narrative{
					Subject:     question,
					Text:        rec.Answer,
					GeneratedAt: rec.CreatedAt,
					Model:       rec.Model,
				},
				Pack:   pack,
				Reused: true,
			}, nil
		case err == nil:
			log.Printf("[Context Pipeline] Context changed (%s -> %s), regenerating", rec.Signature, pack.Signature)
		case !errors.Is(err, store.ErrNotFound):
			log.Printf("[Context Pipeline] Warning: failed to read stored answer: %v", err)
		}
	}

	// Stage 3: Prompt Assembly
	prompt, err := narrative.AssemblePrompt(question, pack)
	if err != nil {
		return nil, fmt.Errorf("prompt assembly failed: %w", err)
	}
	log.Printf("[Context Pipeline] Assembled prompt (%d characters)", len(prompt.System)+len(prompt.User))

	// Stage 4: LLM Generation
	narr, err := p.generator.Generate(ctx, question, prompt)
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}
	log.Printf("[Context Pipeline] Generated answer (%d characters)", len(narr.Text))

	if p.answers != nil {
		rec := store.Record{
			Key:         key,
			Signature:   pack.Signature,
			Answer:      narr.Text,
			Model:       narr.Model,
			TokenBudget: pack.TokenBudget,
			TotalTokens: pack.TotalTokens,
			CreatedAt:   narr.GeneratedAt,
		}
		if err := p.answers.Put(ctx, rec); err != nil {
			log.Printf("[Context Pipeline] Warning: failed to store answer: %v", err)
		}
	}

	return &Answer{Narrative: narr, Pack: pack}, nil
}
