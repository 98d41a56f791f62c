package contextpack

import (
	"math"

	"github.com/Sai-Roopesh/becomeAnAuthor-sub003/internal/modelcaps"
)

// ResolveBudget derives the absolute token budget for evidence blocks from the
// model's capability and the caller's overrides.
//
// The response reservation defaults to the larger of the recommended output and
// half the model's output ceiling. The budget never drops below MinBudget and
// never exceeds either the model's remaining input room or MaxBudgetCap.
func ResolveBudget(c modelcaps.Capability, opts Options, cfg Config) int {
	cfg = cfg.withDefaults()

	var reserved float64
	if opts.ReserveResponseTokens != nil {
		reserved = float64(*opts.ReserveResponseTokens)
	} else {
		reserved = math.Max(float64(c.RecommendedOutput), float64(c.MaxOutputTokens)/2)
	}

	modelAvailable := c.MaxInputTokens - int(math.Ceil(reserved))
	if modelAvailable < cfg.MinBudget {
		modelAvailable = cfg.MinBudget
	}

	requested := modelAvailable
	if opts.MaxContextTokens != nil {
		requested = *opts.MaxContextTokens
	}

	upper := min(modelAvailable, cfg.MaxBudgetCap)
	return max(cfg.MinBudget, min(requested, upper))
}
