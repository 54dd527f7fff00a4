package worker

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/trustgraph/internal/model"
)

// mockScorer implements ClaimScorer
type mockScorer struct {
	failOn string
	delay  time.Duration
	calls  int32
}

func (m *mockScorer) ScoreClaim(ctx context.Context, req model.ScoreRequest) (*model.Claim, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.failOn != "" && req.ClaimText == m.failOn {
		return nil, errors.New("score error")
	}
	return &model.Claim{ClaimText: req.ClaimText, Verdict: model.VerdictContested}, nil
}

func requests(n int) []model.ScoreRequest {
	reqs := make([]model.ScoreRequest, n)
	for i := range reqs {
		reqs[i] = model.ScoreRequest{ClaimText: "claim " + strings.Repeat("x", i)}
	}
	return reqs
}

func TestBatchProcessor_ProcessRequests(t *testing.T) {
	scorer := &mockScorer{delay: time.Millisecond}
	processor := NewBatchProcessor(scorer, 3, nil)

	reqs := requests(25)
	results := processor.ProcessRequests(context.Background(), reqs)

	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	for i, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %d: %v", i, res.Error)
			continue
		}
		if res.Index != i || res.Claim.ClaimText != reqs[i].ClaimText {
			t.Errorf("result %d out of order: index %d claim %q", i, res.Index, res.Claim.ClaimText)
		}
	}

	if atomic.LoadInt32(&scorer.calls) != int32(len(reqs)) {
		t.Errorf("expected %d scorer calls, got %d", len(reqs), scorer.calls)
	}
}

func TestBatchProcessor_ProcessRequests_Error(t *testing.T) {
	reqs := requests(3)
	scorer := &mockScorer{failOn: reqs[1].ClaimText}
	processor := NewBatchProcessor(scorer, 2, nil)

	results := processor.ProcessRequests(context.Background(), reqs)

	if results[1].Error == nil {
		t.Error("expected error for failing claim")
	}
	if results[1].Claim != nil {
		t.Error("expected nil claim on error")
	}
	if results[0].Error != nil || results[2].Error != nil {
		t.Error("other claims should succeed")
	}
}

func TestBatchProcessor_ProcessRequests_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockScorer{}, 2, nil)

	results := processor.ProcessRequests(context.Background(), nil)
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil results, got %#v", results)
	}
}

func TestBatchProcessor_ProcessRequests_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewBatchProcessor(&mockScorer{delay: time.Second}, 2, nil)
	reqs := requests(10)

	done := make(chan []*ScoreResult)
	go func() {
		done <- processor.ProcessRequests(ctx, reqs)
	}()

	select {
	case results := <-done:
		if len(results) != len(reqs) {
			t.Fatalf("expected %d results, got %d", len(reqs), len(results))
		}
		for i, res := range results {
			if res.Error == nil {
				t.Errorf("expected error for cancelled claim %d", i)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ProcessRequests did not return after cancellation")
	}
}
