package score

import (
	"github.com/ppiankov/trustgraph/internal/model"
	"github.com/ppiankov/trustgraph/internal/opinion"
)

const (
	// SupportedThreshold is the lowest projected probability labelled supported.
	SupportedThreshold = 0.7

	// RefutedThreshold is the highest projected probability labelled refuted.
	RefutedThreshold = 0.3
)

// Classify maps a projected probability to a verdict.
// Both boundaries belong to the stricter category.
func Classify(projected float64) model.Verdict {
	switch {
	case projected >= SupportedThreshold:
		return model.VerdictSupported
	case projected <= RefutedThreshold:
		return model.VerdictRefuted
	default:
		return model.VerdictContested
	}
}

// Summarize returns the rounded opinion together with its verdict.
// The verdict is taken from the unrounded projected probability.
func Summarize(op opinion.Opinion) model.OpinionSummary {
	return model.OpinionSummary{
		Confidence: confidenceOf(op),
		Verdict:    Classify(op.Projected()),
	}
}

func confidenceOf(op opinion.Opinion) model.Confidence {
	return model.Confidence{
		Belief:               model.Round(op.Belief()),
		Disbelief:            model.Round(op.Disbelief()),
		Uncertainty:          model.Round(op.Uncertainty()),
		BaseRate:             model.Round(op.BaseRate()),
		ProjectedProbability: model.Round(op.Projected()),
	}
}
