package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ppiankov/trustgraph/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noCache, noFooter, jsonld and pairwise are defined in score.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Score several request files in parallel",
	Long: `Batch scores every claim of every request file with a shared worker pool
and writes one JSON and one Markdown report per input file.

Example:
  trustgraph batch claims/*.yaml
  trustgraph batch a.yaml b.json --concurrency 8 --output-dir ./reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./trustgraph-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh scoring)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&jsonld, "jsonld", false, "write JSON output as JSON-LD")
	batchCmd.Flags().BoolVar(&pairwise, "pairwise", false, "also report legacy pairwise conflicts between claims")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	if err := applyScoreFlags(cmd, cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "  TrustGraph Batch Scoring\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "  Input files:  %d\n", len(args))
	fmt.Fprintf(out, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(out, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(out, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(out, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, logger)

	successCount := 0
	failureCount := 0
	claimCount := 0

	for _, file := range args {
		report, err := p.ScoreFile(ctx, file, pairwise)
		if err != nil {
			failureCount++
			fmt.Fprintf(out, "✗ %s: %v\n", file, err)
			logger.Warn("batch file failed", zap.String("file", file), zap.Error(err))
			continue
		}

		slug := sanitizeFilename(file)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := p.RenderReport(report, jsonPath, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(out, "✗ %s: %v\n", file, err)
			continue
		}

		successCount++
		claimCount += report.Stats.Total
		fmt.Fprintf(out, "✓ %s (%d claims: %d supported, %d contested, %d refuted, %d conflicting)\n",
			file, report.Stats.Total, report.Stats.Supported, report.Stats.Contested,
			report.Stats.Refuted, report.Stats.Conflicting)
	}

	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "  Batch Complete\n")
	fmt.Fprintf(out, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "  Files:     %d\n", len(args))
	fmt.Fprintf(out, "  Claims:    %d\n", claimCount)
	fmt.Fprintf(out, "  Success:   %d\n", successCount)
	fmt.Fprintf(out, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(out, "  Output:    %s\n", outputDir)
	fmt.Fprintf(out, "\n")

	if successCount == 0 {
		return fmt.Errorf("all %d files failed", failureCount)
	}
	return nil
}

// sanitizeFilename turns an input path into a safe report base name
func sanitizeFilename(s string) string {
	s = filepath.Base(s)
	s = strings.TrimSuffix(s, filepath.Ext(s))

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	if s == "" || s == "." {
		s = "report"
	}

	r := []rune(s)
	if len(r) > 100 {
		s = string(r[:100])
	}
	return s
}
