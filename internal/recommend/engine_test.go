package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hollowaylabs/vitrine/internal/types"
)

// scriptedGenerator returns a canned response and records what it was asked.
type scriptedGenerator struct {
	response   string
	err        error
	calls      int
	lastPrompt string
	lastTokens int64
}

func (g *scriptedGenerator) Complete(ctx context.Context, prompt string, maxNewTokens int64) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	g.lastTokens = maxNewTokens
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *scriptedGenerator) ModelName() string {
	return "scripted-model"
}

func newTestEngine(gen *scriptedGenerator) *Engine {
	return NewEngine(gen, testLookup(), discardLogger(), 5, 512)
}

func TestEngine_Generate(t *testing.T) {
	gen := &scriptedGenerator{
		response: `[{"id": "prod001", "explanation": "Great for daily runs", "confidence_score": 9}]`,
	}
	engine := newTestEngine(gen)

	result := engine.Generate(context.Background(), types.Preferences{}, []string{"prod003"})

	if result.Failed() {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.Count != 1 || len(result.Recommendations) != 1 {
		t.Fatalf("got count %d with %d recommendations, want 1", result.Count, len(result.Recommendations))
	}
	rec := result.Recommendations[0]
	if rec.Product.ID != "prod001" || rec.Product.Name != "Ultra-Comfort Running Shoes" {
		t.Errorf("product not hydrated from catalog: %+v", rec.Product)
	}
	if rec.ConfidenceScore != 9 {
		t.Errorf("confidence = %v, want 9", rec.ConfidenceScore)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	if gen.lastTokens != 512 {
		t.Errorf("maxNewTokens = %d, want 512", gen.lastTokens)
	}
}

func TestEngine_Generate_SecondCallHitsCache(t *testing.T) {
	gen := &scriptedGenerator{
		response: `[{"id": "prod002", "explanation": "Matches your interests", "confidence_score": 8}]`,
	}
	engine := newTestEngine(gen)
	history := []string{"prod001"}

	first := engine.Generate(context.Background(), types.Preferences{}, history)
	second := engine.Generate(context.Background(), types.Preferences{}, history)

	if gen.calls != 1 {
		t.Fatalf("generator called %d times, want 1 (second call should hit the cache)", gen.calls)
	}
	if second.Count != first.Count || len(second.Recommendations) != len(first.Recommendations) {
		t.Errorf("cached result differs: first %+v, second %+v", first, second)
	}
	if engine.CacheSize() != 1 {
		t.Errorf("cache size = %d, want 1", engine.CacheSize())
	}
}

func TestEngine_Generate_DistinctRequestsCallProvider(t *testing.T) {
	gen := &scriptedGenerator{response: `[]`}
	engine := newTestEngine(gen)

	engine.Generate(context.Background(), types.Preferences{}, []string{"prod001"})
	engine.Generate(context.Background(), types.Preferences{}, []string{"prod002"})

	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2 for distinct histories", gen.calls)
	}
	if engine.CacheSize() != 2 {
		t.Errorf("cache size = %d, want 2", engine.CacheSize())
	}
}

func TestEngine_Generate_FailureNotCached(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("completion request failed: 503")}
	engine := newTestEngine(gen)

	result := engine.Generate(context.Background(), types.Preferences{}, nil)

	if !result.Failed() {
		t.Fatal("expected a failed result")
	}
	if !strings.Contains(result.Error, "503") {
		t.Errorf("error = %q, want the provider failure message", result.Error)
	}
	if result.Count != 0 || len(result.Recommendations) != 0 {
		t.Errorf("failed result should be empty, got %+v", result)
	}
	if result.Recommendations == nil {
		t.Error("recommendations should be an empty slice, not nil")
	}
	if engine.CacheSize() != 0 {
		t.Errorf("cache size = %d, failures must not be cached", engine.CacheSize())
	}

	// Once the provider recovers, the same request goes through again.
	gen.err = nil
	gen.response = `[{"id": "prod001"}]`

	retry := engine.Generate(context.Background(), types.Preferences{}, nil)

	if retry.Failed() {
		t.Fatalf("retry should succeed, got error %q", retry.Error)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2 (failure must not short-circuit retries)", gen.calls)
	}
	if engine.CacheSize() != 1 {
		t.Errorf("cache size = %d, want 1 after successful retry", engine.CacheSize())
	}
}

func TestEngine_Generate_UnparsableResponseIsCached(t *testing.T) {
	gen := &scriptedGenerator{response: "I am sorry, I cannot help with that."}
	engine := newTestEngine(gen)

	result := engine.Generate(context.Background(), types.Preferences{}, nil)

	if result.Failed() {
		t.Fatalf("parse misses are not errors, got %q", result.Error)
	}
	if result.Count != 0 {
		t.Errorf("count = %d, want 0", result.Count)
	}
	if engine.CacheSize() != 1 {
		t.Fatalf("cache size = %d, empty parses should still be cached", engine.CacheSize())
	}

	engine.Generate(context.Background(), types.Preferences{}, nil)

	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1 (cached empty result should be reused)", gen.calls)
	}
}

func TestEngine_Generate_NormalizesPreferencesForCaching(t *testing.T) {
	gen := &scriptedGenerator{response: `[]`}
	engine := newTestEngine(gen)

	engine.Generate(context.Background(), types.Preferences{}, nil)
	engine.Generate(context.Background(), types.Preferences{
		PriceRange: types.PriceRangeAll,
		Categories: []string{},
		Brands:     []string{},
	}, []string{})

	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1 (zero-value and normalized preferences are the same request)", gen.calls)
	}
	if engine.CacheSize() != 1 {
		t.Errorf("cache size = %d, want 1", engine.CacheSize())
	}
}

func TestEngine_Generate_PromptUsesCatalogSample(t *testing.T) {
	gen := &scriptedGenerator{response: `[]`}
	catalog := &stubCatalog{products: []types.Product{
		{ID: "prod001", Name: "First", Price: 10},
		{ID: "prod002", Name: "Second", Price: 20},
		{ID: "prod003", Name: "Third", Price: 30},
	}}
	engine := NewEngine(gen, catalog, discardLogger(), 2, 256)

	engine.Generate(context.Background(), types.Preferences{}, []string{"prod003"})

	if !strings.Contains(gen.lastPrompt, "prod001") || !strings.Contains(gen.lastPrompt, "prod002") {
		t.Error("prompt should carry the first two catalog products")
	}
	if strings.Contains(gen.lastPrompt, `"id": "prod003"`) {
		t.Error("prompt sample should stop at the configured size")
	}
	if !strings.Contains(gen.lastPrompt, "Browsing History:") {
		t.Error("prompt missing browsing history section")
	}
	if gen.lastTokens != 256 {
		t.Errorf("maxNewTokens = %d, want 256", gen.lastTokens)
	}
}

func TestEngine_Generate_UnknownIDsDropFromResult(t *testing.T) {
	gen := &scriptedGenerator{
		response: `[{"id": "prod001"}, {"id": "prod404"}]`,
	}
	engine := newTestEngine(gen)

	result := engine.Generate(context.Background(), types.Preferences{}, nil)

	if result.Count != 1 {
		t.Fatalf("count = %d, want 1 (unknown product skipped)", result.Count)
	}
	if result.Recommendations[0].Product.ID != "prod001" {
		t.Errorf("product ID = %q, want prod001", result.Recommendations[0].Product.ID)
	}
}

func TestEngine_ModelName(t *testing.T) {
	engine := newTestEngine(&scriptedGenerator{})

	if engine.ModelName() != "scripted-model" {
		t.Errorf("ModelName = %q, want scripted-model", engine.ModelName())
	}
}

func TestNewEngine_NilLogger(t *testing.T) {
	engine := NewEngine(&scriptedGenerator{response: `[]`}, testLookup(), nil, 5, 512)

	result := engine.Generate(context.Background(), types.Preferences{}, nil)

	if result.Failed() {
		t.Fatalf("unexpected error: %s", result.Error)
	}
}
