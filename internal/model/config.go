package model

import "time"

// Config is the complete TrustGraph configuration tree
type Config struct {
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Authority   AuthorityConfig   `yaml:"authority" mapstructure:"authority"`
}

// ScoringConfig controls the evidence algebra parameters
type ScoringConfig struct {
	ConflictThreshold float64 `yaml:"conflict_threshold" mapstructure:"conflict_threshold"` // Within-claim conflict threshold
	PairwiseThreshold float64 `yaml:"pairwise_threshold" mapstructure:"pairwise_threshold"` // Legacy pairwise threshold
	DefaultWeight     float64 `yaml:"default_weight" mapstructure:"default_weight"`         // Evidence weight when none supplied
	PerSourceTrust    bool    `yaml:"per_source_trust" mapstructure:"per_source_trust"`     // Discount each evidence item by its source's trust score
}

// CacheConfig controls caching of scored claims
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch scoring parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
	JSONLD        bool `yaml:"jsonld" mapstructure:"jsonld"` // Emit JSON-LD documents instead of plain JSON
}

// AuthorityConfig assigns default trust scores to sources by URL.
// It only applies to sources whose trustScore is omitted in a request file.
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"` // host -> primary|secondary|tertiary
	PathPatterns     []PathPattern     `yaml:"path_patterns,omitempty" mapstructure:"path_patterns"`
	PrimaryTrust     float64           `yaml:"primary_trust" mapstructure:"primary_trust"`
	SecondaryTrust   float64           `yaml:"secondary_trust" mapstructure:"secondary_trust"`
	TertiaryTrust    float64           `yaml:"tertiary_trust" mapstructure:"tertiary_trust"`
}

// PathPattern maps URL paths matching a regular expression to a tier
type PathPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Tier    string `yaml:"tier" mapstructure:"tier"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			ConflictThreshold: 0.2,
			PairwiseThreshold: 0.3,
			DefaultWeight:     1.0,
			PerSourceTrust:    true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".trustgraph-cache",
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
			JSONLD:        false,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"doi.org",
				"pubmed.ncbi.nlm.nih.gov",
				"nih.gov",
				"who.int",
				"cochranelibrary.com",
				"nature.com",
				"science.org",
				"nejm.org",
				"thelancet.com",
			},
			SecondaryDomains: []string{
				"wikipedia.org",
				"britannica.com",
				"arxiv.org",
				"reuters.com",
				"apnews.com",
				"bbc.co.uk",
			},
			PrimaryTrust:   0.9,
			SecondaryTrust: 0.7,
			TertiaryTrust:  0.5,
		},
	}
}
