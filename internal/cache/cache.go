package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/trustgraph/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// keyVersion changes whenever the scoring algebra changes in a way that
// invalidates previously stored claims
const keyVersion = "trustgraph:v1:"

// RequestKey derives a cache key from a score request and the scoring
// parameters it is evaluated with. Identical inputs always share a key.
func RequestKey(req model.ScoreRequest, cfg model.ScoringConfig) (string, error) {
	payload, err := json.Marshal(struct {
		Request model.ScoreRequest  `json:"request"`
		Scoring model.ScoringConfig `json:"scoring"`
	}{req, cfg})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	hash := sha256.Sum256(payload)
	return keyVersion + hex.EncodeToString(hash[:]), nil
}

// ClaimStore stores scored claims on top of a byte cache
type ClaimStore struct {
	backend Cache
	ttl     time.Duration
}

// NewClaimStore wraps backend; ttl 0 uses the backend's default
func NewClaimStore(backend Cache, ttl time.Duration) *ClaimStore {
	return &ClaimStore{backend: backend, ttl: ttl}
}

// Get returns the cached claim for key. Undecodable entries are dropped.
func (s *ClaimStore) Get(key string) (*model.Claim, bool) {
	data, found := s.backend.Get(key)
	if !found {
		return nil, false
	}

	var claim model.Claim
	if err := json.Unmarshal(data, &claim); err != nil {
		_ = s.backend.Delete(key)
		return nil, false
	}
	return &claim, true
}

// Put stores a claim under key
func (s *ClaimStore) Put(key string, claim *model.Claim) error {
	data, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("marshal claim: %w", err)
	}
	return s.backend.Set(key, data, s.ttl)
}
