package model

import "time"

// Verdict is the categorical label derived from a projected probability
type Verdict string

const (
	VerdictSupported Verdict = "supported" // P >= 0.7
	VerdictContested Verdict = "contested" // 0.3 < P < 0.7
	VerdictRefuted   Verdict = "refuted"   // P <= 0.3
)

// Claim is the scored record handed to formatting and presentation.
// It is created once per scoring request and never mutated afterwards.
type Claim struct {
	ID          string          `json:"id"`                 // urn:uuid identifier for linked-data output
	ClaimText   string          `json:"claimText"`          // The claim as supplied by the caller
	Confidence  Confidence      `json:"confidence"`         // Final fused (and possibly discounted) opinion
	Verdict     Verdict         `json:"verdict"`            // Derived from Confidence.ProjectedProbability
	GeneratedAt time.Time       `json:"generatedAt"`        // Wall-clock UTC, provenance only
	Sources     []Source        `json:"sources"`            // Pass-through source metadata
	Conflict    *ConflictReport `json:"conflict,omitempty"` // Present only when evidence pools disagree
}

// Confidence is an opinion rounded for display stability
type Confidence struct {
	Belief               float64 `json:"belief"`
	Disbelief            float64 `json:"disbelief"`
	Uncertainty          float64 `json:"uncertainty"`
	BaseRate             float64 `json:"baseRate"`
	ProjectedProbability float64 `json:"projectedProbability"`
}

// OpinionSummary is a Confidence together with its verdict
type OpinionSummary struct {
	Confidence
	Verdict Verdict `json:"verdict"`
}

// Mass is the belief/disbelief/uncertainty triple of an opinion, rounded
type Mass struct {
	Belief      float64 `json:"belief"`
	Disbelief   float64 `json:"disbelief"`
	Uncertainty float64 `json:"uncertainty"`
}

// NewMass rounds the three masses to display precision
func NewMass(belief, disbelief, uncertainty float64) Mass {
	return Mass{
		Belief:      Round(belief),
		Disbelief:   Round(disbelief),
		Uncertainty: Round(uncertainty),
	}
}
