package score

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/trustgraph/internal/conflict"
	"github.com/ppiankov/trustgraph/internal/model"
	"github.com/ppiankov/trustgraph/internal/opinion"
)

var (
	// ErrEmptyClaim is returned when the claim text is blank.
	ErrEmptyClaim = errors.New("claim text is empty")

	// ErrInvalidSource is returned when a source lacks a URL or has a trust
	// score outside [0,1].
	ErrInvalidSource = errors.New("invalid source")
)

// nowFunc is the clock used for provenance timestamps (replaceable in tests)
var nowFunc = time.Now

// AssembleClaim packages an opinion, its verdict, the sources and an optional
// conflict report into a claim record. The generation timestamp is the only
// side effect and never affects the computed values.
func AssembleClaim(claimText string, op opinion.Opinion, sources []model.Source, report *conflict.Report) (*model.Claim, error) {
	if strings.TrimSpace(claimText) == "" {
		return nil, ErrEmptyClaim
	}

	for i, src := range sources {
		if strings.TrimSpace(src.URL) == "" {
			return nil, fmt.Errorf("%w: source %d has no url", ErrInvalidSource, i)
		}
		if math.IsNaN(src.TrustScore) || src.TrustScore < 0 || src.TrustScore > 1 {
			return nil, fmt.Errorf("%w: source %d trust score %v outside [0,1]", ErrInvalidSource, i, src.TrustScore)
		}
	}

	// The claim owns its own copy of the sources.
	owned := make([]model.Source, len(sources))
	copy(owned, sources)

	return &model.Claim{
		ID:          "urn:uuid:" + uuid.NewString(),
		ClaimText:   claimText,
		Confidence:  confidenceOf(op),
		Verdict:     Classify(op.Projected()),
		GeneratedAt: nowFunc().UTC(),
		Sources:     owned,
		Conflict:    report.Record(),
	}, nil
}
