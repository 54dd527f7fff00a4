package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/trustgraph/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, model.DefaultConfig())
	bindEnv(v)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := model.DefaultConfig()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TRUSTGRAPH_SCORING_CONFLICT_THRESHOLD", "0.35")
	t.Setenv("TRUSTGRAPH_CACHE_MEMORY_TTL", "15m")
	t.Setenv("TRUSTGRAPH_CONCURRENCY_WORKERS", "9")
	t.Setenv("TRUSTGRAPH_AUTHORITY_TERTIARY_TRUST", "0.3")

	cfg, err := loadConfig(newTestViper())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Scoring.ConflictThreshold != 0.35 {
		t.Errorf("conflict threshold = %v, want 0.35", cfg.Scoring.ConflictThreshold)
	}
	if cfg.Cache.MemoryTTL != 15*time.Minute {
		t.Errorf("memory ttl = %v, want 15m", cfg.Cache.MemoryTTL)
	}
	if cfg.Concurrency.Workers != 9 {
		t.Errorf("workers = %d, want 9", cfg.Concurrency.Workers)
	}
	if cfg.Authority.TertiaryTrust != 0.3 {
		t.Errorf("tertiary trust = %v, want 0.3", cfg.Authority.TertiaryTrust)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "scoring:\n  per_source_trust: false\ncache:\n  disk_ttl: 48h\noutput:\n  jsonld: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	v := newTestViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("read config: %v", err)
	}

	cfg, err := loadConfig(v)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scoring.PerSourceTrust {
		t.Error("per_source_trust should be false")
	}
	if cfg.Cache.DiskTTL != 48*time.Hour {
		t.Errorf("disk ttl = %v, want 48h", cfg.Cache.DiskTTL)
	}
	if !cfg.Output.JSONLD {
		t.Error("jsonld should be true")
	}
	if cfg.Scoring.ConflictThreshold != 0.2 {
		t.Errorf("unset key should keep default, got %v", cfg.Scoring.ConflictThreshold)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		desc   string
		modify func(*model.Config)
	}{
		{"negative threshold", func(c *model.Config) { c.Scoring.ConflictThreshold = -0.1 }},
		{"pairwise above one", func(c *model.Config) { c.Scoring.PairwiseThreshold = 1.5 }},
		{"zero weight", func(c *model.Config) { c.Scoring.DefaultWeight = 0 }},
		{"weight below minimum", func(c *model.Config) { c.Scoring.DefaultWeight = 0.1 }},
		{"no workers", func(c *model.Config) { c.Concurrency.Workers = 0 }},
		{"tier trust above one", func(c *model.Config) { c.Authority.SecondaryTrust = 1.2 }},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cfg := model.DefaultConfig()
			tt.modify(cfg)
			if err := validateConfig(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := validateConfig(model.DefaultConfig()); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestApplyScoreFlags_Validates(t *testing.T) {
	saved := conflictThreshold
	t.Cleanup(func() { conflictThreshold = saved })

	tests := []struct {
		value   string
		wantErr bool
	}{
		{"0.35", false},
		{"-0.5", true},
		{"1.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cmd := &cobra.Command{Use: "score"}
			cmd.Flags().Float64Var(&conflictThreshold, "conflict-threshold", 0.2, "")
			if err := cmd.Flags().Set("conflict-threshold", tt.value); err != nil {
				t.Fatalf("set flag: %v", err)
			}

			cfg := model.DefaultConfig()
			err := applyScoreFlags(cmd, cfg)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "conflict_threshold") {
					t.Errorf("expected conflict_threshold error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Scoring.ConflictThreshold != 0.35 {
				t.Errorf("conflict threshold = %v, want 0.35", cfg.Scoring.ConflictThreshold)
			}
		})
	}
}

func TestInitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".trustgraph", "config.yaml")

	if err := initConfigFile(path); err != nil {
		t.Fatalf("init: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "# TrustGraph Configuration File") {
		t.Error("missing header comment")
	}
	if !strings.Contains(string(data), "memory_ttl: 1h0m0s") {
		t.Errorf("durations should be human-readable:\n%s", data)
	}

	var decoded model.Config
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(&decoded, model.DefaultConfig()) {
		t.Errorf("decoded = %+v, want defaults", decoded)
	}

	if err := initConfigFile(path); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"claims.yaml", "claims"},
		{"dir/sub/fasting claims.json", "fasting-claims"},
		{"weird:name?.yml", "weird_name_"},
		{"noext", "noext"},
		{".yaml", "report"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	input := filepath.Join(dir, "claims.yaml")
	content := `query: Does coffee help focus?
claims:
  - claimText: Caffeine improves short-term attention
    evidence:
      - confidence: 0.9
        supports: true
        sourceIndex: 0
    sources:
      - title: Meta-analysis
        url: https://example.org/meta
        trustScore: 1.0
        supports: true
`
	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "out", "report.json")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"score", input, "--no-cache", "--json", jsonPath})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	if err := Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(report.Claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(report.Claims))
	}
	c := report.Claims[0]
	if c.Verdict != model.VerdictSupported || c.Confidence.ProjectedProbability != 0.78 {
		t.Errorf("claim = %s P=%v, want supported P=0.78", c.Verdict, c.Confidence.ProjectedProbability)
	}
	if !strings.Contains(stdout.String(), "Caffeine improves short-term attention") {
		t.Errorf("summary missing claim:\n%s", stdout.String())
	}
}
