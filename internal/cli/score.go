package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/trustgraph/internal/model"
	"github.com/ppiankov/trustgraph/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	outJSON           string
	outMD             string
	timeout           time.Duration
	noCache           bool
	noFooter          bool
	jsonld            bool
	pairwise          bool
	conflictThreshold float64
	perSourceTrust    bool
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Score the claims in a request file",
	Long: `Score reads claims and their evidence from a YAML or JSON file and:
- Maps each confidence score to a subjective opinion
- Discounts evidence by the trust of its source
- Fuses all evidence per claim into one opinion
- Classifies each claim as supported, contested or refuted
- Reports conflict between supporting and contradicting evidence

Example:
  trustgraph score claims.yaml
  trustgraph score claims.yaml --json report.json --md report.md
  trustgraph score claims.json --jsonld --json report.jsonld --pairwise`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	scoreCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scoreCmd.Flags().BoolVar(&jsonld, "jsonld", false, "write JSON output as JSON-LD")
	scoreCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scoring timeout")
	scoreCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh scoring)")
	scoreCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	scoreCmd.Flags().BoolVar(&pairwise, "pairwise", false, "also report legacy pairwise conflicts between claims")
	scoreCmd.Flags().Float64Var(&conflictThreshold, "conflict-threshold", 0.2, "within-claim conflict threshold")
	scoreCmd.Flags().BoolVar(&perSourceTrust, "per-source-trust", true, "discount each evidence item by its source's trust score")
}

func runScore(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if err := applyScoreFlags(cmd, cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Debug("scoring",
		zap.String("file", file),
		zap.Duration("timeout", timeout),
		zap.Bool("cache", cfg.Cache.Enabled),
		zap.Float64("conflict_threshold", cfg.Scoring.ConflictThreshold))

	p := pipeline.NewPipeline(cfg, logger)

	report, err := p.ScoreFile(ctx, file, pairwise)
	if err != nil {
		return fmt.Errorf("score failed: %w", err)
	}

	if err := p.RenderReport(report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	p.Renderer().RenderSummary(cmd.OutOrStdout(), report)
	return nil
}

// applyScoreFlags overrides config values with flags the user set explicitly
// and validates the result
func applyScoreFlags(cmd *cobra.Command, cfg *model.Config) error {
	flags := cmd.Flags()
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	if flags.Changed("jsonld") {
		cfg.Output.JSONLD = jsonld
	}
	if flags.Changed("conflict-threshold") {
		cfg.Scoring.ConflictThreshold = conflictThreshold
	}
	if flags.Changed("per-source-trust") {
		cfg.Scoring.PerSourceTrust = perSourceTrust
	}
	return validateConfig(cfg)
}
