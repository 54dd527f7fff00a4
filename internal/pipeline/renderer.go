package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/trustgraph/internal/model"
)

// barWidth is the number of cells in a terminal opinion bar
const barWidth = 30

// Renderer writes reports as JSON, JSON-LD, Markdown and terminal summaries
type Renderer struct {
	includeFooter bool
	jsonld        bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool, jsonld bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		jsonld:        jsonld,
	}
}

// RenderJSON writes the report as indented JSON, or JSON-LD when enabled
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	var payload interface{} = report
	if r.jsonld {
		payload = ReportDocument(report)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder
	r.writeMarkdown(&b, report)
	return writeFile(path, []byte(b.String()))
}

func (r *Renderer) writeMarkdown(w io.Writer, report *model.Report) {
	title := report.Query
	if title == "" {
		title = "Claim verification"
	}

	fmt.Fprintf(w, "# %s\n\n", title)
	fmt.Fprintf(w, "_Generated %s_\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	s := report.Stats
	fmt.Fprintf(w, "| Claims | Supported | Contested | Refuted | Conflicts |\n")
	fmt.Fprintf(w, "|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(w, "| %d | %d | %d | %d | %d |\n\n", s.Total, s.Supported, s.Contested, s.Refuted, s.Conflicting)

	for i, c := range report.Claims {
		fmt.Fprintf(w, "## %d. %s\n\n", i+1, c.ClaimText)
		fmt.Fprintf(w, "**Verdict:** %s %s (P = %.4f)\n\n", verdictMarker(c.Verdict), c.Verdict, c.Confidence.ProjectedProbability)
		fmt.Fprintf(w, "`%s`\n\n", OpinionBar(c.Confidence))
		fmt.Fprintf(w, "| belief | disbelief | uncertainty | base rate |\n|---:|---:|---:|---:|\n")
		fmt.Fprintf(w, "| %.4f | %.4f | %.4f | %.4f |\n\n", c.Confidence.Belief, c.Confidence.Disbelief, c.Confidence.Uncertainty, c.Confidence.BaseRate)

		if c.Conflict != nil {
			fmt.Fprintf(w, "> ⚠️ **Conflicting evidence** (degree %.4f): %d supporting vs %d contradicting\n\n",
				c.Conflict.ConflictDegree, c.Conflict.NumSupporting, c.Conflict.NumContradicting)
		}

		if len(c.Sources) > 0 {
			fmt.Fprintf(w, "Sources:\n\n")
			for _, src := range c.Sources {
				label := "supports"
				if !src.Supports {
					label = "contradicts"
				}
				name := src.Title
				if name == "" {
					name = src.URL
				}
				fmt.Fprintf(w, "- [%s](%s) (trust: %.2f, %s)\n", name, src.URL, src.TrustScore, label)
			}
			fmt.Fprintln(w)
		}
	}

	if len(report.Pairwise) > 0 {
		fmt.Fprintf(w, "## Pairwise conflicts (legacy)\n\n")
		for _, pc := range report.Pairwise {
			fmt.Fprintf(w, "- claims %d and %d: degree %.4f\n", pc.Pair[0]+1, pc.Pair[1]+1, pc.ConflictDegree)
		}
		fmt.Fprintln(w)
	}

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "## Errors\n\n")
		for _, e := range report.Errors {
			fmt.Fprintf(w, "- %s\n", e)
		}
		fmt.Fprintln(w)
	}

	if r.includeFooter {
		fmt.Fprintf(w, "---\n\n")
		fmt.Fprintf(w, "_Scores are subjective logic opinions fused from the supplied evidence. ")
		fmt.Fprintf(w, "They describe how well the evidence supports each claim, not whether it is true._\n")
	}
}

// RenderSummary prints a short terminal summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	if report.Query != "" {
		fmt.Fprintf(w, "  %s\n", report.Query)
	} else {
		fmt.Fprintln(w, "  TrustGraph Report")
	}
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	for _, c := range report.Claims {
		fmt.Fprintf(w, "%s %-9s P=%.2f  %s\n", verdictMarker(c.Verdict), c.Verdict, c.Confidence.ProjectedProbability, c.ClaimText)
		fmt.Fprintf(w, "   %s\n", OpinionBar(c.Confidence))
		if c.Conflict != nil {
			fmt.Fprintf(w, "   ⚠ conflict %.2f (%d for / %d against)\n",
				c.Conflict.ConflictDegree, c.Conflict.NumSupporting, c.Conflict.NumContradicting)
		}
	}

	s := report.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Claims:     %d\n", s.Total)
	fmt.Fprintf(w, "  Supported:  %d\n", s.Supported)
	fmt.Fprintf(w, "  Contested:  %d\n", s.Contested)
	fmt.Fprintf(w, "  Refuted:    %d\n", s.Refuted)
	fmt.Fprintf(w, "  Conflicts:  %d\n", s.Conflicting)
	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "  Failed:     %d\n", len(report.Errors))
	}
	fmt.Fprintln(w)
}

// OpinionBar draws belief, uncertainty and disbelief as a fixed-width bar.
// Uncertainty takes whatever cells belief and disbelief leave.
func OpinionBar(c model.Confidence) string {
	b := int(c.Belief*barWidth + 0.5)
	d := int(c.Disbelief*barWidth + 0.5)
	if b+d > barWidth {
		d = barWidth - b
	}
	u := barWidth - b - d

	return "[" + strings.Repeat("█", b) + strings.Repeat("░", u) + strings.Repeat("▒", d) + "]"
}

func verdictMarker(v model.Verdict) string {
	switch v {
	case model.VerdictSupported:
		return "✓"
	case model.VerdictRefuted:
		return "✗"
	default:
		return "~"
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
