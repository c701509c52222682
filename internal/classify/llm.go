package classify

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pbankaus/akviza/internal/cache"
	"github.com/pbankaus/akviza/internal/filter"
	"github.com/pbankaus/akviza/internal/llm"
	"github.com/pbankaus/akviza/internal/match"
	"github.com/pbankaus/akviza/internal/model"
	"github.com/pbankaus/akviza/internal/worker"
)

// classifyEndpoint is the rate limiter key for classification calls.
const classifyEndpoint = "classify"

// LLMClassifier asks an external model for the category and falls back to
// the rule cascade whenever the model is unavailable, slow, or answers
// outside the closed category set. Lookups are cached by (name, ABV).
//
// Hard overrides run before the cache: a stale or wrong cached entry must
// never beat them.
type LLMClassifier struct {
	provider llm.Provider
	store    cache.Cache
	limiter  *worker.Limiter
	fallback Classifier
	cfg      model.ClassifyConfig
	ttl      time.Duration
	verbose  bool
}

// NewLLMClassifier builds an LLM-backed classifier. provider may be nil,
// store may be nil; every degraded configuration still classifies, it just
// leans harder on the fallback.
func NewLLMClassifier(provider llm.Provider, store cache.Cache, limiter *worker.Limiter, fallback Classifier, cfg model.ClassifyConfig, ttl time.Duration, verbose bool) *LLMClassifier {
	return &LLMClassifier{
		provider: provider,
		store:    store,
		limiter:  limiter,
		fallback: fallback,
		cfg:      cfg,
		ttl:      ttl,
		verbose:  verbose,
	}
}

// Classify resolves the category: overrides, then cache, then the model,
// then the rule cascade.
func (c *LLMClassifier) Classify(ctx context.Context, name string, abv, volume float64) (model.Category, error) {
	if cat, ok := c.forced(name, abv); ok {
		return cat, nil
	}
	if name == "" || c.provider == nil {
		return c.fallback.Classify(ctx, name, abv, volume)
	}

	key := cache.ClassificationKey(name, abv)
	if c.store != nil {
		if data, found := c.store.Get(key); found && model.ValidCategory(string(data)) {
			return model.Category(data), nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, classifyEndpoint); err != nil {
			return c.fallback.Classify(ctx, name, abv, volume)
		}
	}

	raw, err := c.provider.ClassifyProduct(ctx, name, abv)
	if err != nil {
		c.logf("LLM classification failed for %q, using rules: %v", name, err)
		return c.fallback.Classify(ctx, name, abv, volume)
	}
	if !model.ValidCategory(raw) {
		c.logf("LLM returned unknown category %q for %q, using rules", raw, name)
		return c.fallback.Classify(ctx, name, abv, volume)
	}

	if c.store != nil {
		_ = c.store.Set(key, []byte(raw), c.ttl)
	}
	return model.Category(raw), nil
}

// forced applies the hard keyword overrides that bypass cache and model.
func (c *LLMClassifier) forced(name string, abv float64) (model.Category, bool) {
	lower := strings.ToLower(name)

	if match.ContainsAny(lower, c.cfg.ForcedWineKeywords) {
		if abv > 8.5 {
			return model.CategoryWine8515, true
		}
		return model.CategoryWineUpTo85, true
	}
	if match.ContainsAny(lower, c.cfg.ForcedSpiritKeywords) {
		return model.CategoryEthylAlcohol, true
	}
	if match.ContainsAny(lower, filter.NonAlcoholicKeywords) {
		return model.CategoryNonAlcohol, true
	}
	return "", false
}

func (c *LLMClassifier) logf(format string, args ...any) {
	if c.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
