// Package pipeline orchestrates the complete processing of one invoice
// document: extraction, clustering, classification and costing.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pbankaus/akviza/internal/cache"
	"github.com/pbankaus/akviza/internal/classify"
	"github.com/pbankaus/akviza/internal/cluster"
	"github.com/pbankaus/akviza/internal/excise"
	"github.com/pbankaus/akviza/internal/extract"
	"github.com/pbankaus/akviza/internal/filter"
	"github.com/pbankaus/akviza/internal/llm"
	"github.com/pbankaus/akviza/internal/model"
	"github.com/pbankaus/akviza/internal/parse"
	"github.com/pbankaus/akviza/internal/worker"
)

// Pipeline orchestrates the complete document process.
type Pipeline struct {
	collector  *extract.Collector
	classifier classify.Classifier
	calculator *excise.Calculator
	provider   llm.Provider // Optional summary extraction (nil if disabled)
	store      cache.Cache  // Optional result cache (nil if disabled)
	config     *model.Config
}

// New creates a pipeline from the given configuration. The LLM provider and
// caches are optional: without them classification falls back to the rule
// table and nothing is cached.
func New(cfg *model.Config) (*Pipeline, error) {
	classifyCfg, err := classify.LoadExceptions(cfg.Classify)
	if err != nil {
		return nil, fmt.Errorf("load exceptions: %w", err)
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM), cfg.Excise.Labels)
		if err != nil {
			fmt.Printf("Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			provider = p
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.ClassificationTTL, cfg.Cache.Dir, cfg.Cache.ClassificationTTL)
	}

	rules := classify.NewRuleClassifier(classifyCfg)
	var classifier classify.Classifier = rules
	if provider != nil {
		limiter := worker.NewLimiter(cfg.LLM.RequestsPerSecond, 0)
		classifier = classify.NewLLMClassifier(provider, store, limiter, rules, classifyCfg,
			cfg.Cache.ClassificationTTL, cfg.Output.Verbose)
	}

	return &Pipeline{
		collector:  extract.NewCollector(),
		classifier: classifier,
		calculator: excise.NewCalculator(cfg.Excise),
		provider:   provider,
		store:      store,
		config:     cfg,
	}, nil
}

// Options tune the processing of a single document.
type Options struct {
	// TransportAmount overrides transport detection when positive.
	TransportAmount float64
}

// ProcessFile runs the pipeline over an extraction-result JSON file.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts Options) *model.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return &model.Result{Error: fmt.Sprintf("read document: %v", err)}
	}
	return p.Process(ctx, data, opts)
}

// Process runs the pipeline over raw extraction-result JSON. It always
// returns a Result: failures set Error rather than propagating.
func (p *Pipeline) Process(ctx context.Context, data []byte, opts Options) *model.Result {
	// A manual transport amount changes the outcome, so only the plain run
	// is cached.
	cacheable := p.store != nil && opts.TransportAmount == 0
	if cacheable {
		if cached, ok := p.store.Get(cache.ResultKey(data)); ok {
			var result model.Result
			if err := json.Unmarshal(cached, &result); err == nil {
				return &result
			}
		}
	}

	doc, err := extract.ParseDocument(data)
	if err != nil {
		return &model.Result{Error: err.Error()}
	}

	fragments := p.collector.Collect(doc)
	products := cluster.NewBuilder(doc).Extract(fragments)
	products, rowFreight := filter.SeparateTransport(products)

	summaryDiscount, summaryTransport := p.documentSummary(ctx, doc.Text)
	transportAmount, transportSource := p.resolveTransport(doc, opts.TransportAmount, rowFreight, summaryTransport)

	// A freight-only or empty document still reports the transport it carries.
	if len(products) == 0 {
		return &model.Result{
			Error: "no products found in document",
			Summary: model.Summary{
				DiscountAmount:  summaryDiscount,
				TransportAmount: transportAmount,
				TransportSource: transportSource,
				SupplierName:    doc.SupplierName(),
			},
		}
	}

	for _, prod := range products {
		prod.Name = parse.CleanProductName(prod.Name)
	}

	excise.ApplyDiscount(products, summaryDiscount)
	p.classifyAll(ctx, products)
	p.calculator.Enrich(products, transportAmount)

	result := &model.Result{
		Summary: model.Summary{
			DiscountAmount:  summaryDiscount,
			TransportAmount: transportAmount,
			TransportSource: transportSource,
			SupplierName:    doc.SupplierName(),
		},
	}
	result.Products = make([]model.Product, len(products))
	for i, prod := range products {
		result.Products[i] = *prod
	}

	if cacheable {
		if encoded, err := json.Marshal(result); err == nil {
			_ = p.store.Set(cache.ResultKey(data), encoded, p.config.Cache.ResultTTL)
		}
	}
	return result
}

// documentSummary asks the LLM for the invoice-level discount and transport
// amounts. Failures degrade to zeros, never to a processing error.
func (p *Pipeline) documentSummary(ctx context.Context, text string) (discount, transport float64) {
	if p.provider == nil || text == "" {
		return 0, 0
	}
	summary, err := p.provider.ExtractSummary(ctx, text)
	if err != nil {
		fmt.Printf("Warning: document summary extraction failed: %v\n", err)
		return 0, 0
	}
	// Invoices state discounts as negative line amounts.
	return math.Abs(summary.DiscountAmount), summary.TransportAmount
}

// resolveTransport picks the transport amount: a manual override wins, then
// the largest of the detected candidates, validated against the configured
// ceiling.
func (p *Pipeline) resolveTransport(doc *extract.Document, manual, rowFreight, summaryTransport float64) (float64, model.TransportSource) {
	if manual > 0 {
		if err := extract.ValidateTransport(manual, p.config.Transport.MaxAmount); err != nil {
			fmt.Printf("Warning: manual transport amount rejected: %v\n", err)
			return 0, model.TransportNone
		}
		return manual, model.TransportManual
	}

	best := extract.DetectTransport(doc)
	if rowFreight > best {
		best = rowFreight
	}
	if summaryTransport > best {
		best = summaryTransport
	}
	if best <= 0 {
		return 0, model.TransportNone
	}
	if err := extract.ValidateTransport(best, p.config.Transport.MaxAmount); err != nil {
		fmt.Printf("Warning: detected transport amount rejected: %v\n", err)
		return 0, model.TransportNone
	}
	return best, model.TransportAutomatic
}

// classifyAll assigns a category to every product. Packaging rows are pinned
// to the non-alcohol category without consulting the classifier.
func (p *Pipeline) classifyAll(ctx context.Context, products []*model.Product) {
	for _, prod := range products {
		if prod.IsPackaging {
			prod.CategoryKey = model.CategoryNonAlcohol
			continue
		}
		category, err := p.classifier.Classify(ctx, prod.Name, prod.ABV, prod.Volume)
		if err != nil {
			fmt.Printf("Warning: classification of %q failed: %v\n", prod.Name, err)
			category = model.CategoryNonAlcohol
		}
		prod.CategoryKey = category
	}
}

// ClearCache drops all cached classifications and results.
func (p *Pipeline) ClearCache() error {
	if p.store == nil {
		return nil
	}
	return p.store.Clear()
}

// TariffsValid reports whether the configured tariff table covers now.
func (p *Pipeline) TariffsValid() bool {
	return p.calculator.TariffsValidAt(time.Now())
}
