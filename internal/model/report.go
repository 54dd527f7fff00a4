package model

import (
	"math"
	"time"
)

// ConflictReport describes disagreement between the evidence supporting a
// claim and the evidence contradicting it
type ConflictReport struct {
	ConflictDegree       float64 `json:"conflictDegree"`
	SupportingOpinion    Mass    `json:"supportingOpinion"`
	ContradictingOpinion Mass    `json:"contradictingOpinion"`
	NumSupporting        int     `json:"numSupporting"`
	NumContradicting     int     `json:"numContradicting"`
}

// PairwiseConflict is a legacy report for one pair of opinions in a flat list
type PairwiseConflict struct {
	Pair           [2]int  `json:"pair"`
	ConflictDegree float64 `json:"conflictDegree"`
	OpinionA       Mass    `json:"opinionA"`
	OpinionB       Mass    `json:"opinionB"`
}

// Report groups the claims scored for one query
type Report struct {
	Query       string    `json:"query,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
	Claims      []Claim   `json:"claims"`
	Stats       Stats     `json:"stats"`
	Errors      []string  `json:"errors,omitempty"` // Claims that could not be scored

	Pairwise []PairwiseConflict `json:"pairwiseConflicts,omitempty"` // Legacy cross-claim comparison, opt-in
}

// Stats counts claims per verdict
type Stats struct {
	Total       int `json:"total"`
	Supported   int `json:"supported"`
	Contested   int `json:"contested"`
	Refuted     int `json:"refuted"`
	Conflicting int `json:"conflicting"`
}

// NewReport builds a report and its statistics from scored claims
func NewReport(query string, claims []Claim, generatedAt time.Time) *Report {
	r := &Report{
		Query:       query,
		GeneratedAt: generatedAt,
		Claims:      claims,
	}
	for _, c := range claims {
		r.Stats.Total++
		switch c.Verdict {
		case VerdictSupported:
			r.Stats.Supported++
		case VerdictContested:
			r.Stats.Contested++
		case VerdictRefuted:
			r.Stats.Refuted++
		}
		if c.Conflict != nil {
			r.Stats.Conflicting++
		}
	}
	return r
}

// ConflictingClaims returns the claims that carry a conflict report
func (r *Report) ConflictingClaims() []Claim {
	var out []Claim
	for _, c := range r.Claims {
		if c.Conflict != nil {
			out = append(out, c)
		}
	}
	return out
}

// Round rounds to 4 decimal places for display stability
func Round(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
