// Package authority infers source trust scores from the authority tier of
// a source URL.
package authority

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/trustgraph/internal/model"
)

// Tier is the authority classification of a source
type Tier int

const (
	TierUnknown   Tier = 0 // Not yet classified
	TierPrimary   Tier = 1 // Journals, registries, official documents
	TierSecondary Tier = 2 // Encyclopedias, preprints, wire services
	TierTertiary  Tier = 3 // Blogs, personal websites, everything else
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// Classifier classifies sources into authority tiers
type Classifier struct {
	config       *model.AuthorityConfig
	primaryMap   map[string]bool
	secondaryMap map[string]bool
	pathPatterns []*compiledPattern
}

type compiledPattern struct {
	pattern *regexp.Regexp
	tier    Tier
}

// NewClassifier creates a classifier. A nil config uses the defaults.
// Path patterns that fail to compile are skipped.
func NewClassifier(config *model.AuthorityConfig) *Classifier {
	if config == nil {
		config = &model.DefaultConfig().Authority
	}

	c := &Classifier{
		config:       config,
		primaryMap:   make(map[string]bool, len(config.PrimaryDomains)),
		secondaryMap: make(map[string]bool, len(config.SecondaryDomains)),
	}

	for _, domain := range config.PrimaryDomains {
		c.primaryMap[strings.ToLower(domain)] = true
	}
	for _, domain := range config.SecondaryDomains {
		c.secondaryMap[strings.ToLower(domain)] = true
	}

	for _, pp := range config.PathPatterns {
		re, err := regexp.Compile(pp.Pattern)
		if err != nil {
			continue
		}
		c.pathPatterns = append(c.pathPatterns, &compiledPattern{pattern: re, tier: parseTier(pp.Tier)})
	}

	return c
}

// Classify classifies a URL into an authority tier
func (c *Classifier) Classify(rawURL string) Tier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return TierTertiary
	}

	host := strings.ToLower(parsed.Hostname())

	if tier, ok := c.config.DomainMap[host]; ok {
		return parseTier(tier)
	}

	// foo.nih.gov matches nih.gov
	if matchDomain(host, c.primaryMap) {
		return TierPrimary
	}
	if matchDomain(host, c.secondaryMap) {
		return TierSecondary
	}

	for _, cp := range c.pathPatterns {
		if cp.pattern.MatchString(parsed.Path) {
			return cp.tier
		}
	}

	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return TierPrimary
	}

	return TierTertiary
}

// Trust returns the default trust score for a URL's tier
func (c *Classifier) Trust(rawURL string) float64 {
	switch c.Classify(rawURL) {
	case TierPrimary:
		return c.config.PrimaryTrust
	case TierSecondary:
		return c.config.SecondaryTrust
	default:
		return c.config.TertiaryTrust
	}
}

func matchDomain(host string, domains map[string]bool) bool {
	if host == "" {
		return false
	}
	if domains[host] {
		return true
	}
	for domain := range domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func parseTier(tier string) Tier {
	switch strings.ToLower(tier) {
	case "primary", "1":
		return TierPrimary
	case "secondary", "2":
		return TierSecondary
	default:
		return TierTertiary
	}
}
