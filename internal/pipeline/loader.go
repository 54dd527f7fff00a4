package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/trustgraph/internal/authority"
	"github.com/ppiankov/trustgraph/internal/model"
	"gopkg.in/yaml.v3"
)

// TrustResolver supplies a trust score for a source that omits one
type TrustResolver interface {
	Trust(url string) float64
}

// trustProbe records which sources of a claim carry an explicit trustScore
type trustProbe struct {
	Sources []struct {
		TrustScore *float64 `json:"trustScore" yaml:"trustScore"`
	} `json:"sources" yaml:"sources"`
}

type fileProbe struct {
	Claims []trustProbe `json:"claims" yaml:"claims"`
}

type unmarshalFunc func([]byte, interface{}) error

// LoadRequests reads a request file. JSON and YAML are accepted, chosen by
// extension. A file may hold either a full RequestFile or a single claim.
// Sources without a trustScore get the default trust of their authority tier.
func LoadRequests(path string) (*model.RequestFile, error) {
	return loadRequests(path, authority.NewClassifier(nil))
}

func loadRequests(path string, resolver TrustResolver) (*model.RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeRequests(data, yaml.Unmarshal, resolver)
	case ".json", "":
		return decodeRequests(data, json.Unmarshal, resolver)
	default:
		return nil, fmt.Errorf("unsupported request format %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

func decodeRequests(data []byte, unmarshal unmarshalFunc, resolver TrustResolver) (*model.RequestFile, error) {
	var file model.RequestFile
	if err := unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}

	var probes []trustProbe
	if len(file.Claims) > 0 {
		var fp fileProbe
		if err := unmarshal(data, &fp); err != nil {
			return nil, fmt.Errorf("decode requests: %w", err)
		}
		probes = fp.Claims
	} else {
		var single model.ScoreRequest
		if err := unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		if strings.TrimSpace(single.ClaimText) == "" {
			return nil, fmt.Errorf("request file contains no claims")
		}
		var sp trustProbe
		if err := unmarshal(data, &sp); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		file.Claims = []model.ScoreRequest{single}
		probes = []trustProbe{sp}
	}

	if resolver != nil {
		fillTrust(file.Claims, probes, resolver)
	}
	return &file, nil
}

// fillTrust resolves trust scores for sources that omitted one
func fillTrust(claims []model.ScoreRequest, probes []trustProbe, resolver TrustResolver) {
	for i := range claims {
		if i >= len(probes) {
			return
		}
		sources := claims[i].Sources
		for j, p := range probes[i].Sources {
			if j < len(sources) && p.TrustScore == nil {
				sources[j].TrustScore = resolver.Trust(sources[j].URL)
			}
		}
	}
}
