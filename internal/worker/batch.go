package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/trustgraph/internal/model"
	"go.uber.org/zap"
)

// ClaimScorer scores one claim request
type ClaimScorer interface {
	ScoreClaim(ctx context.Context, req model.ScoreRequest) (*model.Claim, error)
}

// ScoreJob scores a single claim
type ScoreJob struct {
	Index   int
	Request model.ScoreRequest
	Scorer  ClaimScorer
}

// Execute scores the request
func (j *ScoreJob) Execute(ctx context.Context) *ScoreResult {
	start := time.Now()
	claim, err := j.Scorer.ScoreClaim(ctx, j.Request)
	return &ScoreResult{
		Index:     j.Index,
		ClaimText: j.Request.ClaimText,
		Claim:     claim,
		Error:     err,
		Duration:  time.Since(start),
	}
}

// ScoreResult is the outcome of one score job
type ScoreResult struct {
	Index     int
	ClaimText string
	Claim     *model.Claim
	Error     error
	Duration  time.Duration
}

// BatchProcessor scores independent claims concurrently. Claims share no
// state, so no ordering between jobs is required.
type BatchProcessor struct {
	scorer      ClaimScorer
	concurrency int
	logger      *zap.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(scorer ClaimScorer, concurrency int, logger *zap.Logger) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{
		scorer:      scorer,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ProcessRequests scores every request and returns results in input order.
// Requests that never ran because ctx ended carry ctx's error.
func (b *BatchProcessor) ProcessRequests(ctx context.Context, reqs []model.ScoreRequest) []*ScoreResult {
	if len(reqs) == 0 {
		return []*ScoreResult{}
	}

	pool := NewPool[*ScoreResult](ctx, b.concurrency)
	pool.Start()

	// Submit from a separate goroutine so a full queue cannot deadlock
	// against unread results.
	go func() {
		defer pool.Close()
		for i, req := range reqs {
			if !pool.Submit(&ScoreJob{Index: i, Request: req, Scorer: b.scorer}) {
				return
			}
		}
	}()

	ordered := make([]*ScoreResult, len(reqs))
	for sr := range pool.Results() {
		ordered[sr.Index] = sr

		if sr.Error != nil {
			b.logger.Warn("claim scoring failed",
				zap.Int("index", sr.Index),
				zap.String("claim", sr.ClaimText),
				zap.Error(sr.Error))
			continue
		}
		b.logger.Debug("claim scored",
			zap.Int("index", sr.Index),
			zap.String("verdict", string(sr.Claim.Verdict)),
			zap.Duration("duration", sr.Duration))
	}

	for i, r := range ordered {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("claim %d was not scored", i)
			}
			ordered[i] = &ScoreResult{Index: i, ClaimText: reqs[i].ClaimText, Error: err}
		}
	}

	return ordered
}
