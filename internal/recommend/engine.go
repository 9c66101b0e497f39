package recommend

import (
	"context"
	"log/slog"

	"github.com/hollowaylabs/vitrine/internal/completion"
	"github.com/hollowaylabs/vitrine/internal/types"
)

// Catalog is the product source for prompt building and ID resolution.
type Catalog interface {
	All() []types.Product
	Get(id string) (types.Product, bool)
}

// Engine drives the recommendation pipeline end to end.
type Engine struct {
	generator    completion.Generator
	catalog      Catalog
	cache        *ResultCache
	logger       *slog.Logger
	sampleSize   int
	maxNewTokens int64
}

// NewEngine creates a recommendation engine.
func NewEngine(generator completion.Generator, cat Catalog, logger *slog.Logger, sampleSize int, maxNewTokens int64) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		generator:    generator,
		catalog:      cat,
		cache:        NewResultCache(),
		logger:       logger,
		sampleSize:   sampleSize,
		maxNewTokens: maxNewTokens,
	}
}

// Generate produces recommendations for the given preferences and browsing
// history. Results are cached by prompt hash; a completion failure is
// reported in the result's Error field and never cached, so the next
// identical request retries the provider.
func (e *Engine) Generate(ctx context.Context, prefs types.Preferences, history []string) types.RecommendationResult {
	prefs = prefs.Normalize()
	prompt := BuildPrompt(prefs, history, e.catalog.All(), e.sampleSize)
	key := CacheKey(prompt)

	if result, ok := e.cache.Get(key); ok {
		e.logger.Info("returning cached recommendations", "cache_key", key)
		return result
	}

	raw, err := e.generator.Complete(ctx, prompt, e.maxNewTokens)
	if err != nil {
		e.logger.Error("completion failed", "error", err, "cache_key", key)
		return types.RecommendationResult{
			Recommendations: []types.Recommendation{},
			Count:           0,
			Error:           err.Error(),
		}
	}

	recommendations := ParseResponse(raw, e.catalog, e.logger)
	result := types.RecommendationResult{
		Recommendations: recommendations,
		Count:           len(recommendations),
	}
	e.cache.Put(key, result)

	e.logger.Info("generated recommendations",
		"cache_key", key,
		"count", result.Count,
		"model", e.generator.ModelName(),
	)
	return result
}

// CacheSize returns the number of cached recommendation results.
func (e *Engine) CacheSize() int {
	return e.cache.Len()
}

// ModelName reports which completion model the engine invokes.
func (e *Engine) ModelName() string {
	return e.generator.ModelName()
}
