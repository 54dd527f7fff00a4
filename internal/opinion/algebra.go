package opinion

import (
	"fmt"
	"math"
)

// CumulativeFuse combines two independent opinions about the same
// proposition. Both inputs must share a base rate.
//
// The operator is commutative and associative, and the vacuous opinion is
// its identity, so folding it over a list in any order gives the same result.
func CumulativeFuse(a, b Opinion) (Opinion, error) {
	if math.Abs(a.baseRate-b.baseRate) > Tolerance {
		return Opinion{}, fmt.Errorf("%w: cumulative fusion of base rates %v and %v", ErrPrecondition, a.baseRate, b.baseRate)
	}

	k := a.uncertainty + b.uncertainty - a.uncertainty*b.uncertainty
	if k == 0 {
		// Both opinions are dogmatic: weigh them equally.
		return New(
			(a.belief+b.belief)/2,
			(a.disbelief+b.disbelief)/2,
			0,
			a.baseRate,
		)
	}

	return New(
		(a.belief*b.uncertainty+b.belief*a.uncertainty)/k,
		(a.disbelief*b.uncertainty+b.disbelief*a.uncertainty)/k,
		(a.uncertainty*b.uncertainty)/k,
		a.baseRate,
	)
}

// TrustDiscount attenuates opinion x by the trust opinion t held about the
// source that produced x. Full trust leaves x unchanged; full distrust
// yields pure uncertainty. The result keeps x's base rate.
func TrustDiscount(t, x Opinion) Opinion {
	b := t.belief * x.belief
	d := t.belief * x.disbelief
	// dT + uT + bT·uX, which equals 1-b-d without cancellation error.
	u := t.disbelief + t.uncertainty + t.belief*x.uncertainty

	return Opinion{
		belief:      b,
		disbelief:   d,
		uncertainty: u,
		baseRate:    x.baseRate,
	}
}

// ConflictMetric measures disagreement between two opinions as the distance
// between their projected probabilities scaled by their joint certainty.
// It is symmetric and zero for identical opinions; uncertain opinions never
// register strong conflict.
func ConflictMetric(a, b Opinion) float64 {
	// Certainty factors are multiplied first so swapping a and b cannot
	// change the rounding.
	return math.Abs(a.Projected()-b.Projected()) * ((1 - a.uncertainty) * (1 - b.uncertainty))
}
