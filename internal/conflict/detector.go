// Package conflict detects disagreement between evidence pools.
package conflict

import (
	"fmt"

	"github.com/ppiankov/trustgraph/internal/fusion"
	"github.com/ppiankov/trustgraph/internal/model"
	"github.com/ppiankov/trustgraph/internal/opinion"
)

const (
	// DefaultThreshold is the within-claim conflict threshold.
	DefaultThreshold = 0.2

	// DefaultPairwiseThreshold is the legacy pairwise threshold.
	DefaultPairwiseThreshold = 0.3
)

// Report is the unrounded result of a within-claim comparison.
type Report struct {
	Degree           float64
	Supporting       opinion.Opinion
	Contradicting    opinion.Opinion
	NumSupporting    int
	NumContradicting int
}

// Record converts the report into its rounded, externally consumable form.
func (r *Report) Record() *model.ConflictReport {
	if r == nil {
		return nil
	}
	return &model.ConflictReport{
		ConflictDegree:       model.Round(r.Degree),
		SupportingOpinion:    massOf(r.Supporting),
		ContradictingOpinion: massOf(r.Contradicting),
		NumSupporting:        r.NumSupporting,
		NumContradicting:     r.NumContradicting,
	}
}

// DetectWithinClaim fuses the supporting and the contradicting opinions for
// one claim and compares the two pools. Contradicting opinions must already
// be flipped. It returns nil when either pool is empty or the conflict does
// not exceed threshold.
func DetectWithinClaim(supporting, contradicting []opinion.Opinion, threshold float64) (*Report, error) {
	if len(supporting) == 0 || len(contradicting) == 0 {
		return nil, nil
	}

	fusedFor, err := fusion.FuseEvidence(supporting)
	if err != nil {
		return nil, fmt.Errorf("fuse supporting evidence: %w", err)
	}
	fusedAgainst, err := fusion.FuseEvidence(contradicting)
	if err != nil {
		return nil, fmt.Errorf("fuse contradicting evidence: %w", err)
	}

	degree := opinion.ConflictMetric(fusedFor, fusedAgainst)
	if degree <= threshold {
		return nil, nil
	}

	return &Report{
		Degree:           degree,
		Supporting:       fusedFor,
		Contradicting:    fusedAgainst,
		NumSupporting:    len(supporting),
		NumContradicting: len(contradicting),
	}, nil
}

// DetectPairwise compares every unordered pair in a flat list and reports
// the pairs whose conflict exceeds threshold.
//
// Deprecated: pairs drawn from one flat list may concern different
// propositions. Use DetectWithinClaim.
func DetectPairwise(opinions []opinion.Opinion, threshold float64) []model.PairwiseConflict {
	var conflicts []model.PairwiseConflict
	for i := 0; i < len(opinions); i++ {
		for j := i + 1; j < len(opinions); j++ {
			degree := opinion.ConflictMetric(opinions[i], opinions[j])
			if degree > threshold {
				conflicts = append(conflicts, model.PairwiseConflict{
					Pair:           [2]int{i, j},
					ConflictDegree: model.Round(degree),
					OpinionA:       massOf(opinions[i]),
					OpinionB:       massOf(opinions[j]),
				})
			}
		}
	}
	return conflicts
}

func massOf(op opinion.Opinion) model.Mass {
	return model.NewMass(op.Belief(), op.Disbelief(), op.Uncertainty())
}
