// Package evidence maps external confidence scalars into opinions.
package evidence

import (
	"errors"
	"fmt"
	"math"

	"github.com/ppiankov/trustgraph/internal/opinion"
)

const (
	// BaseUncertainty is the uncertainty of a single data point with weight 1.
	BaseUncertainty = 0.3

	// MinUncertainty is the floor: no single piece of evidence is ever certain.
	MinUncertainty = 0.05

	// DefaultWeight is the evidence weight of one ordinary data point.
	DefaultWeight = 1.0

	// MinWeight is the lightest accepted evidence. It yields the vacuous opinion.
	MinWeight = BaseUncertainty
)

var (
	// ErrInvalidConfidence is returned for confidence outside [0,1].
	ErrInvalidConfidence = errors.New("confidence must be in [0,1]")

	// ErrInvalidWeight is returned for an evidence weight below MinWeight.
	ErrInvalidWeight = errors.New("evidence weight too small")
)

// ScalarToOpinion converts a confidence in [0,1] into an opinion.
//
// Uncertainty is max(0.05, 0.3/weight). A weight below 0.3 would need more
// than all of the mass as uncertainty and is rejected. The remaining mass is
// split between belief and disbelief by the confidence ratio.
func ScalarToOpinion(confidence, weight float64) (opinion.Opinion, error) {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return opinion.Opinion{}, fmt.Errorf("%w: got %v", ErrInvalidConfidence, confidence)
	}
	if math.IsNaN(weight) || weight < MinWeight {
		return opinion.Opinion{}, fmt.Errorf("%w: got %v, need at least %v", ErrInvalidWeight, weight, MinWeight)
	}

	u := Uncertainty(weight)
	remaining := 1 - u

	return opinion.New(remaining*confidence, remaining*(1-confidence), u, opinion.DefaultBaseRate)
}

// Uncertainty returns the uncertainty mass assigned to one data point of the
// given weight. weight must be at least MinWeight.
func Uncertainty(weight float64) float64 {
	return math.Max(MinUncertainty, BaseUncertainty/weight)
}

// Flip swaps belief and disbelief. Apply it to evidence that contradicts a
// claim so that confidence in the contradiction becomes disbelief in the claim.
func Flip(op opinion.Opinion) opinion.Opinion {
	return opinion.Must(op.Disbelief(), op.Belief(), op.Uncertainty(), op.BaseRate())
}

// Oriented maps a scalar and flips it when the evidence contradicts the claim.
func Oriented(confidence, weight float64, supports bool) (opinion.Opinion, error) {
	op, err := ScalarToOpinion(confidence, weight)
	if err != nil {
		return opinion.Opinion{}, err
	}
	if !supports {
		op = Flip(op)
	}
	return op, nil
}
