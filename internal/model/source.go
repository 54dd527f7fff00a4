package model

// Source is external metadata about where a piece of evidence came from.
// It is passed through to the claim record unmodified.
type Source struct {
	Title      string  `json:"title" yaml:"title"`
	URL        string  `json:"url" yaml:"url"`
	TrustScore float64 `json:"trustScore" yaml:"trustScore"` // Reliability of the source in [0,1]
	Supports   bool    `json:"supports" yaml:"supports"`     // Whether the source supports or contradicts the claim
}

// EvidenceInput is one confidence scalar produced by an upstream assessor
type EvidenceInput struct {
	Confidence     float64  `json:"confidence" yaml:"confidence"`                             // Assessed confidence in [0,1]
	EvidenceWeight *float64 `json:"evidenceWeight,omitempty" yaml:"evidenceWeight,omitempty"` // Independent evidence represented (default 1.0)
	Supports       bool     `json:"supports" yaml:"supports"`                                 // false when the evidence contradicts the claim
	SourceIndex    *int     `json:"sourceIndex,omitempty" yaml:"sourceIndex,omitempty"`       // Index into ScoreRequest.Sources
}

// Weight returns the evidence weight, falling back to def when unset
func (e EvidenceInput) Weight(def float64) float64 {
	if e.EvidenceWeight == nil {
		return def
	}
	return *e.EvidenceWeight
}

// ScoreRequest is everything needed to score a single claim
type ScoreRequest struct {
	ClaimText   string          `json:"claimText" yaml:"claimText"`
	Evidence    []EvidenceInput `json:"evidence" yaml:"evidence"`
	Sources     []Source        `json:"sources" yaml:"sources"`
	SourceTrust *float64        `json:"sourceTrust,omitempty" yaml:"sourceTrust,omitempty"` // Claim-level discount applied to the fused opinion
}

// RequestFile is the on-disk batch format: one query and the claims checked for it
type RequestFile struct {
	Query  string         `json:"query" yaml:"query"`
	Claims []ScoreRequest `json:"claims" yaml:"claims"`
}
