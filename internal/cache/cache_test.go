package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/trustgraph/internal/model"
)

func sampleRequest() model.ScoreRequest {
	return model.ScoreRequest{
		ClaimText: "Green tea lowers blood pressure",
		Evidence:  []model.EvidenceInput{{Confidence: 0.8, Supports: true}},
		Sources:   []model.Source{{Title: "Review", URL: "https://doi.org/10.1/gt", TrustScore: 0.8, Supports: true}},
	}
}

func TestRequestKey_Deterministic(t *testing.T) {
	cfg := model.DefaultConfig().Scoring

	k1, err := RequestKey(sampleRequest(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := RequestKey(sampleRequest(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if k1 != k2 {
		t.Errorf("expected identical keys, got %s and %s", k1, k2)
	}
	if !strings.HasPrefix(k1, keyVersion) {
		t.Errorf("key %s missing version prefix", k1)
	}
}

func TestRequestKey_SensitiveToInputs(t *testing.T) {
	cfg := model.DefaultConfig().Scoring
	base, _ := RequestKey(sampleRequest(), cfg)

	req := sampleRequest()
	req.Evidence[0].Confidence = 0.81
	changedReq, _ := RequestKey(req, cfg)

	cfg.ConflictThreshold = 0.25
	changedCfg, _ := RequestKey(sampleRequest(), cfg)

	if base == changedReq {
		t.Error("key should change with evidence")
	}
	if base == changedCfg {
		t.Error("key should change with scoring config")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Errorf("expected hit with v, got %q %v", val, found)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}

	_ = c.Set("a", []byte("1"), 0)
	_ = c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after clear, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte("v"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected entry to expire")
	}
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)

	key := keyVersion + "abc"
	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	if val, found := c.Get(key); !found || string(val) != "payload" {
		t.Errorf("expected hit with payload, got %q %v", val, found)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || strings.Contains(entries[0].Name(), ":") {
		t.Errorf("unexpected cache files: %v", entries)
	}

	if err := c.Delete(key); err != nil {
		t.Errorf("delete: %v", err)
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestDiskCache_Expired(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestDiskCache_Corrupt(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected corrupt entry to miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expected corrupt entry to be removed")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Hour)

	// Write through a separate disk cache so only the disk layer has it.
	if err := NewDiskCache(dir, time.Hour).Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	if val, found := layered.Get("k"); !found || string(val) != "v" {
		t.Fatalf("expected disk hit, got %q %v", val, found)
	}
	if _, found := layered.memory.Get("k"); !found {
		t.Error("expected disk hit to be promoted to memory")
	}

	if err := layered.Clear(); err != nil {
		t.Errorf("clear: %v", err)
	}
	if _, found := layered.Get("k"); found {
		t.Error("expected miss after clear")
	}
}

func TestClaimStore(t *testing.T) {
	store := NewClaimStore(NewMemoryCache(time.Minute, time.Minute), 0)

	claim := &model.Claim{
		ID:          "urn:uuid:1",
		ClaimText:   "claim",
		Verdict:     model.VerdictSupported,
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Confidence:  model.Confidence{Belief: 0.63, Disbelief: 0.07, Uncertainty: 0.3, BaseRate: 0.5, ProjectedProbability: 0.78},
		Sources:     []model.Source{},
		Conflict:    &model.ConflictReport{ConflictDegree: 0.2573, NumSupporting: 1, NumContradicting: 1},
	}

	if _, found := store.Get("k"); found {
		t.Error("expected miss")
	}
	if err := store.Put("k", claim); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, found := store.Get("k")
	if !found {
		t.Fatal("expected hit")
	}
	if got.ID != claim.ID || got.Verdict != claim.Verdict || !got.GeneratedAt.Equal(claim.GeneratedAt) {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Conflict == nil || got.Conflict.ConflictDegree != 0.2573 {
		t.Errorf("conflict lost in round trip: %+v", got.Conflict)
	}
}

func TestClaimStore_DropsUndecodable(t *testing.T) {
	backend := NewMemoryCache(time.Minute, time.Minute)
	_ = backend.Set("k", []byte("garbage"), 0)

	store := NewClaimStore(backend, 0)
	if _, found := store.Get("k"); found {
		t.Error("expected undecodable entry to miss")
	}
	if _, found := backend.Get("k"); found {
		t.Error("expected undecodable entry to be deleted")
	}
}
