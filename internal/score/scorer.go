package score

import (
	"errors"
	"fmt"

	"github.com/ppiankov/trustgraph/internal/conflict"
	"github.com/ppiankov/trustgraph/internal/evidence"
	"github.com/ppiankov/trustgraph/internal/fusion"
	"github.com/ppiankov/trustgraph/internal/model"
	"github.com/ppiankov/trustgraph/internal/opinion"
)

// ErrInvalidSourceIndex is returned when evidence references a missing source.
var ErrInvalidSourceIndex = errors.New("evidence references unknown source")

// Scorer turns a score request into a claim record
type Scorer struct {
	config model.ScoringConfig
}

// NewScorer creates a new scorer. Zero or negative thresholds and weight
// fall back to the package defaults.
func NewScorer(cfg model.ScoringConfig) *Scorer {
	if cfg.DefaultWeight <= 0 {
		cfg.DefaultWeight = evidence.DefaultWeight
	}
	if cfg.ConflictThreshold <= 0 {
		cfg.ConflictThreshold = conflict.DefaultThreshold
	}
	if cfg.PairwiseThreshold <= 0 {
		cfg.PairwiseThreshold = conflict.DefaultPairwiseThreshold
	}
	return &Scorer{config: cfg}
}

// Assessment is the intermediate state of scoring one claim
type Assessment struct {
	Opinion       opinion.Opinion   // Final fused, possibly discounted opinion
	Supporting    []opinion.Opinion // Supporting evidence after per-source trust
	Contradicting []opinion.Opinion // Contradicting evidence, flipped, after per-source trust
	Conflict      *conflict.Report  // nil when the pools agree
}

// Evaluate runs the evidence algebra for one request:
//  1. map every scalar to an opinion, flipping contradicting evidence
//  2. optionally discount each opinion by its source's trust score
//  3. fuse everything into one opinion, in input order
//  4. optionally discount the fused opinion by the claim-level source trust
//  5. compare the supporting and contradicting pools
func (s *Scorer) Evaluate(req model.ScoreRequest) (*Assessment, error) {
	all := make([]opinion.Opinion, 0, len(req.Evidence))
	a := &Assessment{}

	for i, e := range req.Evidence {
		op, err := evidence.Oriented(e.Confidence, e.Weight(s.config.DefaultWeight), e.Supports)
		if err != nil {
			return nil, fmt.Errorf("evidence %d: %w", i, err)
		}

		if s.config.PerSourceTrust && e.SourceIndex != nil {
			idx := *e.SourceIndex
			if idx < 0 || idx >= len(req.Sources) {
				return nil, fmt.Errorf("evidence %d: %w: index %d of %d", i, ErrInvalidSourceIndex, idx, len(req.Sources))
			}
			op, err = fusion.ApplyTrustDiscount(op, req.Sources[idx].TrustScore)
			if err != nil {
				return nil, fmt.Errorf("evidence %d: source %d: %w", i, idx, err)
			}
		}

		all = append(all, op)
		if e.Supports {
			a.Supporting = append(a.Supporting, op)
		} else {
			a.Contradicting = append(a.Contradicting, op)
		}
	}

	fused, err := fusion.FuseEvidence(all)
	if err != nil {
		return nil, fmt.Errorf("fuse evidence: %w", err)
	}

	if req.SourceTrust != nil {
		fused, err = fusion.ApplyTrustDiscount(fused, *req.SourceTrust)
		if err != nil {
			return nil, fmt.Errorf("claim trust: %w", err)
		}
	}
	a.Opinion = fused

	a.Conflict, err = conflict.DetectWithinClaim(a.Supporting, a.Contradicting, s.config.ConflictThreshold)
	if err != nil {
		return nil, fmt.Errorf("detect conflict: %w", err)
	}

	return a, nil
}

// Score evaluates a request and assembles the claim record
func (s *Scorer) Score(req model.ScoreRequest) (*model.Claim, error) {
	a, err := s.Evaluate(req)
	if err != nil {
		return nil, err
	}
	return AssembleClaim(req.ClaimText, a.Opinion, req.Sources, a.Conflict)
}

// PairwiseConflicts runs the legacy detector over the final opinions of
// several claims.
//
// Deprecated: it compares evidence across unrelated claims. Prefer the
// per-claim conflict report produced by Score.
func (s *Scorer) PairwiseConflicts(reqs []model.ScoreRequest) ([]model.PairwiseConflict, error) {
	var ops []opinion.Opinion
	for _, req := range reqs {
		a, err := s.Evaluate(req)
		if err != nil {
			return nil, err
		}
		ops = append(ops, a.Opinion)
	}
	return conflict.DetectPairwise(ops, s.config.PairwiseThreshold), nil
}
