// Package fusion folds collections of opinions into a single opinion.
package fusion

import (
	"errors"
	"fmt"
	"math"

	"github.com/ppiankov/trustgraph/internal/opinion"
)

// ErrInvalidTrust is returned for a source trust outside [0,1].
var ErrInvalidTrust = errors.New("source trust must be in [0,1]")

// FuseEvidence left-folds cumulative fusion over opinions.
// No evidence yields the vacuous opinion, one opinion is returned unchanged.
func FuseEvidence(opinions []opinion.Opinion) (opinion.Opinion, error) {
	if len(opinions) == 0 {
		return opinion.Vacuous(), nil
	}

	result := opinions[0]
	for i, op := range opinions[1:] {
		fused, err := opinion.CumulativeFuse(result, op)
		if err != nil {
			return opinion.Opinion{}, fmt.Errorf("fuse opinion %d: %w", i+1, err)
		}
		result = fused
	}
	return result, nil
}

// TrustOpinion builds the dogmatic trust opinion (trust, 1-trust, 0, 0.5).
func TrustOpinion(trust float64) (opinion.Opinion, error) {
	if math.IsNaN(trust) || trust < 0 || trust > 1 {
		return opinion.Opinion{}, fmt.Errorf("%w: got %v", ErrInvalidTrust, trust)
	}
	return opinion.New(trust, 1-trust, 0, opinion.DefaultBaseRate)
}

// ApplyTrustDiscount discounts op by the trustworthiness of its source.
// Trust 1 leaves op unchanged, trust 0 turns it into pure uncertainty.
func ApplyTrustDiscount(op opinion.Opinion, sourceTrust float64) (opinion.Opinion, error) {
	t, err := TrustOpinion(sourceTrust)
	if err != nil {
		return opinion.Opinion{}, err
	}
	return opinion.TrustDiscount(t, op), nil
}
