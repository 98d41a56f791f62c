package contextpack

import (
	"fmt"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/modelcaps"
)

// CapabilityLookup resolves a model identifier to its token limits. It must
// return a usable capability for unknown identifiers.
type CapabilityLookup interface {
	Lookup(model string) modelcaps.Capability
}

// Packer builds context packs with a fixed configuration. It is immutable and
// safe for concurrent use.
type Packer struct {
	models CapabilityLookup
	config Config
}

// NewPacker creates a Packer. A nil lookup uses the built-in model registry and
// zero config fields take their defaults.
func NewPacker(models CapabilityLookup, config Config) *Packer {
	if models == nil {
		models = modelcaps.Default()
	}
	return &Packer{
		models: models,
		config: config.withDefaults(),
	}
}

// Config returns the effective packing tunables.
func (p *Packer) Config() Config {
	return p.config
}

// Budget resolves the token budget Pack would use for opts.
func (p *Packer) Budget(opts Options) int {
	return ResolveBudget(p.models.Lookup(opts.Model), opts, p.config)
}

// Pack ranks sources against opts.Query and greedily fills the resolved token
// budget, truncating the last block that partially fits.
func (p *Packer) Pack(sources []Source, opts Options) Result {
	budget := p.Budget(opts)
	terms := NormalizeQuery(opts.Query)
	ranked := ScoreSources(sources, terms)

	maxBlocks := p.config.MaxBlocks
	if opts.MaxBlocks != nil && *opts.MaxBlocks > 0 {
		maxBlocks = *opts.MaxBlocks
	}

	sel := p.selectBlocks(ranked, budget, maxBlocks)

	result := Result{
		Blocks:      sel.blocks,
		Serialized:  Serialize(sel.blocks),
		TotalTokens: sel.total,
		TokenBudget: budget,
		Truncated:   sel.truncated || len(sel.excluded) > 0,
		Excluded:    sel.excluded,
		Signature:   Signature(sel.blocks),
	}
	result.WarningMessage = warningFor(result, len(ranked), sel.unexamined)
	return result
}

// Pack packs sources with DefaultConfig and the built-in model registry.
func Pack(sources []Source, opts Options) Result {
	return NewPacker(nil, DefaultConfig()).Pack(sources, opts)
}

type selection struct {
	blocks    []Block
	excluded  []string
	total     int
	truncated bool

	// unexamined counts candidates left behind by the early stop
	unexamined int
}

// selectBlocks is a single bounded bin-packing pass over the ranked candidates.
// Once the block cap is reached the scan continues only to record exclusions.
// After a block is taken, a remaining budget below MinTruncatedBlock ends the
// scan outright.
func (p *Packer) selectBlocks(ranked []ScoredSource, budget, maxBlocks int) selection {
	sel := selection{
		blocks:   []Block{},
		excluded: []string{},
	}
	remaining := budget

	for i, cand := range ranked {
		if len(sel.blocks) == maxBlocks {
			sel.excluded = append(sel.excluded, exclusion(cand.Source, ReasonMaxBlocks))
			continue
		}

		tokens := EstimateTokens(cand.Source.Content)
		switch {
		case tokens <= remaining:
			sel.blocks = append(sel.blocks, Block{
				Source: cand.Source,
				Score:  cand.Score,
				Tokens: tokens,
			})
			remaining -= tokens
			sel.total += tokens

		case remaining >= p.config.MinTruncatedBlock:
			content := TruncateToTokens(cand.Source.Content, remaining)
			cut := EstimateTokens(content)
			if cut > remaining {
				sel.excluded = append(sel.excluded, exclusion(cand.Source, ReasonInsufficientBudget))
				continue
			}
			src := cand.Source
			src.Content = content
			sel.blocks = append(sel.blocks, Block{
				Source:    src,
				Score:     cand.Score,
				Tokens:    cut,
				Truncated: true,
			})
			remaining -= cut
			sel.total += cut
			sel.truncated = true

		default:
			sel.excluded = append(sel.excluded, exclusion(cand.Source, ReasonInsufficientBudget))
			continue
		}

		if remaining < p.config.MinTruncatedBlock {
			sel.unexamined = len(ranked) - i - 1
			break
		}
	}

	return sel
}

func exclusion(s Source, reason string) string {
	return fmt.Sprintf("%s:%s (%s): %s", s.Type, s.ID, s.Label, reason)
}

// warningFor summarizes why a result is empty or partial. It returns nil when
// every candidate was included in full.
func warningFor(r Result, candidates, unexamined int) *string {
	var msg string
	switch {
	case candidates == 0:
		msg = "No context sources with content were available."
	case r.Truncated || unexamined > 0:
		truncatedBlocks := 0
		for _, b := range r.Blocks {
			if b.Truncated {
				truncatedBlocks++
			}
		}
		msg = fmt.Sprintf("Context trimmed to fit a %d-token budget: %d of %d blocks truncated, %d sources excluded.",
			r.TokenBudget, truncatedBlocks, len(r.Blocks), len(r.Excluded))
		if unexamined > 0 {
			msg += fmt.Sprintf(" %d lower-ranked sources were not considered after the budget ran out.", unexamined)
		}
	default:
		return nil
	}
	return &msg
}
