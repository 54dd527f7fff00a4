// Package opinion implements subjective logic opinions and the operators
// used to combine them.
package opinion

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance is the floating point slack allowed when checking that
// belief + disbelief + uncertainty == 1 and that every field lies in [0,1].
const Tolerance = 1e-6

// DefaultBaseRate is the uninformative prior used when no base rate is given.
const DefaultBaseRate = 0.5

var (
	// ErrInvariant is returned when an opinion would violate b+d+u=1 or a
	// field falls outside [0,1].
	ErrInvariant = errors.New("opinion invariant violated")

	// ErrPrecondition is returned when operator inputs are incompatible
	// (e.g. fusing opinions with different base rates).
	ErrPrecondition = errors.New("opinion precondition violated")
)

// Opinion is an immutable (belief, disbelief, uncertainty, base rate) tuple.
// The zero value is not a valid opinion; use New, Must or Vacuous.
type Opinion struct {
	belief      float64
	disbelief   float64
	uncertainty float64
	baseRate    float64
}

// New constructs an opinion and validates its invariants.
// Values are never clamped: out-of-range input is an error.
func New(belief, disbelief, uncertainty, baseRate float64) (Opinion, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"belief", belief},
		{"disbelief", disbelief},
		{"uncertainty", uncertainty},
		{"base rate", baseRate},
	}
	for _, f := range fields {
		if !inUnitInterval(f.value) {
			return Opinion{}, fmt.Errorf("%w: %s %v outside [0,1]", ErrInvariant, f.name, f.value)
		}
	}

	sum := belief + disbelief + uncertainty
	if math.Abs(sum-1) > Tolerance {
		return Opinion{}, fmt.Errorf("%w: belief+disbelief+uncertainty = %v, want 1", ErrInvariant, sum)
	}

	return Opinion{
		belief:      belief,
		disbelief:   disbelief,
		uncertainty: uncertainty,
		baseRate:    baseRate,
	}, nil
}

// Must is like New but panics on invalid input. Intended for constants and tests.
func Must(belief, disbelief, uncertainty, baseRate float64) Opinion {
	op, err := New(belief, disbelief, uncertainty, baseRate)
	if err != nil {
		panic(err)
	}
	return op
}

// Vacuous returns the "no evidence" opinion (0, 0, 1, 0.5).
func Vacuous() Opinion {
	return Opinion{uncertainty: 1, baseRate: DefaultBaseRate}
}

// Belief returns the belief mass b.
func (o Opinion) Belief() float64 { return o.belief }

// Disbelief returns the disbelief mass d.
func (o Opinion) Disbelief() float64 { return o.disbelief }

// Uncertainty returns the uncertainty mass u.
func (o Opinion) Uncertainty() float64 { return o.uncertainty }

// BaseRate returns the prior probability a used when projecting.
func (o Opinion) BaseRate() float64 { return o.baseRate }

// Projected returns the projected probability b + a·u.
func (o Opinion) Projected() float64 {
	return o.belief + o.baseRate*o.uncertainty
}

// IsVacuous reports whether the opinion carries no evidence at all.
func (o Opinion) IsVacuous() bool {
	return o.belief == 0 && o.disbelief == 0 && o.uncertainty == 1
}

// Equal reports whether two opinions match field by field within Tolerance.
func (o Opinion) Equal(other Opinion) bool {
	return math.Abs(o.belief-other.belief) <= Tolerance &&
		math.Abs(o.disbelief-other.disbelief) <= Tolerance &&
		math.Abs(o.uncertainty-other.uncertainty) <= Tolerance &&
		math.Abs(o.baseRate-other.baseRate) <= Tolerance
}

func (o Opinion) String() string {
	return fmt.Sprintf("(b=%.4f, d=%.4f, u=%.4f, a=%.4f)", o.belief, o.disbelief, o.uncertainty, o.baseRate)
}

func inUnitInterval(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	return v >= -Tolerance && v <= 1+Tolerance
}
