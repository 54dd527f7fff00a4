package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/trustgraph/internal/authority"
	"github.com/ppiankov/trustgraph/internal/cache"
	"github.com/ppiankov/trustgraph/internal/model"
	"github.com/ppiankov/trustgraph/internal/score"
	"github.com/ppiankov/trustgraph/internal/worker"
	"go.uber.org/zap"
)

// Pipeline wires scoring, caching, batch execution and rendering together
type Pipeline struct {
	scorer   *score.Scorer
	store    *cache.ClaimStore // nil when caching is disabled
	batch    *worker.BatchProcessor
	renderer *Renderer
	trust    *authority.Classifier
	config   *model.Config
	logger   *zap.Logger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pipeline{
		scorer:   score.NewScorer(cfg.Scoring),
		renderer: NewRenderer(cfg.Output.IncludeFooter, cfg.Output.JSONLD),
		trust:    authority.NewClassifier(&cfg.Authority),
		config:   cfg,
		logger:   logger,
	}

	if cfg.Cache.Enabled {
		backend := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		p.store = cache.NewClaimStore(backend, 0)
	}

	p.batch = worker.NewBatchProcessor(p, cfg.Concurrency.Workers, logger)
	return p
}

// ScoreClaim scores one request, serving identical requests from the cache.
// A cached claim keeps its original generatedAt timestamp.
func (p *Pipeline) ScoreClaim(ctx context.Context, req model.ScoreRequest) (*model.Claim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var key string
	if p.store != nil {
		k, err := cache.RequestKey(req, p.config.Scoring)
		if err != nil {
			p.logger.Warn("cache key failed", zap.Error(err))
		} else {
			key = k
			if claim, found := p.store.Get(key); found {
				p.logger.Debug("cache hit", zap.String("key", key), zap.String("claim", req.ClaimText))
				return claim, nil
			}
		}
	}

	claim, err := p.scorer.Score(req)
	if err != nil {
		return nil, fmt.Errorf("score %q: %w", truncate(req.ClaimText, 60), err)
	}

	if key != "" {
		if err := p.store.Put(key, claim); err != nil {
			// A failed cache write never fails scoring.
			p.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return claim, nil
}

// ScoreAll scores every claim of a request file concurrently and builds a
// report. Claims that fail are listed in Report.Errors; only an empty
// result is an error.
func (p *Pipeline) ScoreAll(ctx context.Context, file *model.RequestFile, pairwise bool) (*model.Report, error) {
	start := time.Now()
	results := p.batch.ProcessRequests(ctx, file.Claims)

	var claims []model.Claim
	var failures []string
	var scored []model.ScoreRequest
	for _, r := range results {
		if r.Error != nil {
			failures = append(failures, fmt.Sprintf("claim %d: %v", r.Index, r.Error))
			continue
		}
		claims = append(claims, *r.Claim)
		scored = append(scored, file.Claims[r.Index])
	}

	if len(claims) == 0 && len(failures) > 0 {
		return nil, fmt.Errorf("no claims scored: %s", failures[0])
	}

	report := model.NewReport(file.Query, claims, time.Now().UTC())
	report.Errors = failures

	if pairwise {
		conflicts, err := p.scorer.PairwiseConflicts(scored)
		if err != nil {
			return nil, fmt.Errorf("pairwise conflicts: %w", err)
		}
		report.Pairwise = conflicts
	}

	p.logger.Info("report scored",
		zap.String("query", file.Query),
		zap.Int("claims", report.Stats.Total),
		zap.Int("failed", len(failures)),
		zap.Int("conflicting", report.Stats.Conflicting),
		zap.Duration("duration", time.Since(start)))

	return report, nil
}

// ScoreFile loads a request file and scores it. Sources without a trust
// score are classified with the configured authority tiers.
func (p *Pipeline) ScoreFile(ctx context.Context, path string, pairwise bool) (*model.Report, error) {
	file, err := loadRequests(path, p.trust)
	if err != nil {
		return nil, err
	}
	return p.ScoreAll(ctx, file, pairwise)
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logger.Debug("wrote JSON", zap.String("path", jsonPath))
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logger.Debug("wrote Markdown", zap.String("path", mdPath))
	}

	return nil
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}
