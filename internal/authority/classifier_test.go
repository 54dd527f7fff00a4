package authority

import (
	"testing"

	"github.com/ppiankov/trustgraph/internal/model"
)

func TestClassifier_Domains(t *testing.T) {
	classifier := NewClassifier(&model.AuthorityConfig{
		PrimaryDomains:   []string{"doi.org", "nih.gov"},
		SecondaryDomains: []string{"wikipedia.org", "Britannica.com"},
	})

	tests := []struct {
		url      string
		expected Tier
		desc     string
	}{
		{"https://doi.org/10.1234/example", TierPrimary, "Primary domain exact match"},
		{"https://pubmed.ncbi.nlm.nih.gov/123", TierPrimary, "Primary domain with subdomain"},
		{"https://DOI.org:443/10.1/x", TierPrimary, "Host is case-insensitive and port is ignored"},
		{"https://en.wikipedia.org/wiki/Coffee", TierSecondary, "Wikipedia secondary source"},
		{"https://www.britannica.com/topic/coffee", TierSecondary, "Configured domain is case-insensitive"},
		{"https://notdoi.org/paper", TierTertiary, "Suffix without dot boundary does not match"},
		{"https://example.com/blog", TierTertiary, "Unknown domain"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := classifier.Classify(tt.url); got != tt.expected {
				t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, got)
			}
		})
	}
}

func TestClassifier_AcademicTLDs(t *testing.T) {
	classifier := NewClassifier(&model.AuthorityConfig{})

	for _, u := range []string{"https://www.cdc.gov/x", "https://stanford.edu/study", "https://www.ox.ac.uk/research"} {
		if got := classifier.Classify(u); got != TierPrimary {
			t.Errorf("Expected primary for %s, got %v", u, got)
		}
	}
}

func TestClassifier_DomainMapOverrides(t *testing.T) {
	classifier := NewClassifier(&model.AuthorityConfig{
		SecondaryDomains: []string{"example.org"},
		DomainMap: map[string]string{
			"example.org":   "primary",
			"blog.cdc.gov":  "3",
			"reviews.local": "secondary",
		},
	})

	tests := []struct {
		url      string
		expected Tier
	}{
		{"https://example.org/a", TierPrimary},
		{"https://blog.cdc.gov/post", TierTertiary},
		{"http://reviews.local/item", TierSecondary},
	}

	for _, tt := range tests {
		if got := classifier.Classify(tt.url); got != tt.expected {
			t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, got)
		}
	}
}

func TestClassifier_PathPatterns(t *testing.T) {
	classifier := NewClassifier(&model.AuthorityConfig{
		PathPatterns: []model.PathPattern{
			{Pattern: "/guidelines/", Tier: "primary"},
			{Pattern: "/wiki/", Tier: "secondary"},
			{Pattern: "([", Tier: "primary"}, // invalid, skipped
		},
	})

	tests := []struct {
		url      string
		expected Tier
	}{
		{"https://example.com/guidelines/2024", TierPrimary},
		{"https://fandom.example/wiki/Coffee", TierSecondary},
		{"https://example.com/about", TierTertiary},
	}

	for _, tt := range tests {
		if got := classifier.Classify(tt.url); got != tt.expected {
			t.Errorf("Expected %v for %s, got %v", tt.expected, tt.url, got)
		}
	}
}

func TestClassifier_Trust(t *testing.T) {
	classifier := NewClassifier(nil)

	tests := []struct {
		url      string
		expected float64
	}{
		{"https://doi.org/10.1/x", 0.9},
		{"https://en.wikipedia.org/wiki/Tea", 0.7},
		{"https://someblog.example/post", 0.5},
		{"://not a url", 0.5},
	}

	for _, tt := range tests {
		if got := classifier.Trust(tt.url); got != tt.expected {
			t.Errorf("Trust(%s) = %v, want %v", tt.url, got, tt.expected)
		}
	}
}

func TestTier_String(t *testing.T) {
	tests := map[Tier]string{
		TierUnknown:   "unknown",
		TierPrimary:   "primary",
		TierSecondary: "secondary",
		TierTertiary:  "tertiary",
	}
	for tier, want := range tests {
		if got := tier.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", tier, got, want)
		}
	}
}
