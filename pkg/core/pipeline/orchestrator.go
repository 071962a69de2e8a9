// Package pipeline wires the analysis stages into one end-to-end run:
// document load -> fact extraction -> metrics -> section index -> valuation,
// with an optional cache in front of the whole computation.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"filinglens/pkg/core/document"
	"filinglens/pkg/core/metrics"
	"filinglens/pkg/core/sections"
	"filinglens/pkg/core/store"
	"filinglens/pkg/core/xbrl"
	"filinglens/pkg/models"
)

// Orchestrator manages the end-to-end analysis flow for one filing at a
// time. Instances are safe for concurrent use across documents: every run
// operates only on its own inputs.
type Orchestrator struct {
	scanner    *xbrl.Scanner
	reconciler *xbrl.RevenueReconciler
	engine     *metrics.Engine
	valuator   *metrics.Valuator
	builder    *sections.Builder
	mapping    xbrl.ConceptMapping
	cache      *store.AnalysisCache
	log        *zap.Logger
}

// NewOrchestrator creates an orchestrator with the built-in concept mapping
// and section catalogue. cache may be nil to disable caching; a nil logger
// disables logging.
func NewOrchestrator(cache *store.AnalysisCache, log *zap.Logger) (*Orchestrator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	mapping, err := xbrl.DefaultConceptMapping()
	if err != nil {
		return nil, fmt.Errorf("failed to load concept mapping: %w", err)
	}
	catalog, err := sections.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load section catalog: %w", err)
	}

	return &Orchestrator{
		scanner:    xbrl.NewScanner(log),
		reconciler: xbrl.NewRevenueReconciler(log),
		engine:     metrics.NewEngine(log),
		valuator:   metrics.NewValuator(log),
		builder:    sections.NewBuilder(catalog, log),
		mapping:    mapping,
		cache:      cache,
		log:        log,
	}, nil
}

// RunFile analyzes a filing on disk. currentPrice may be nil when no
// market price is available; valuation is then skipped.
func (o *Orchestrator) RunFile(ctx context.Context, path string, currentPrice *float64) (*models.FilingAnalysis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", document.ErrMissingInput, path)
	}
	return o.Run(ctx, raw, currentPrice)
}

// Run analyzes a filing held in memory.
func (o *Orchestrator) Run(ctx context.Context, raw []byte, currentPrice *float64) (*models.FilingAnalysis, error) {
	fingerprint := store.Fingerprint(raw)

	if o.cache != nil {
		cached, err := o.cache.Get(ctx, fingerprint)
		if err != nil {
			o.log.Warn("cache read failed", zap.Error(err))
		}
		if cached != nil {
			o.log.Info("cache hit", zap.String("fingerprint", fingerprint[:12]))
			return o.withValuation(cached, currentPrice)
		}
	}

	doc, err := document.FromBytes(raw)
	if err != nil {
		return nil, err
	}

	contexts := xbrl.BuildContextMap(doc.Query())
	units := xbrl.BuildUnitMap(doc.Query())

	// The generic scan and the revenue pass are independent reads of the
	// same parsed document; both must finish before the override.
	var (
		wg      sync.WaitGroup
		table   xbrl.FactTable
		revenue map[string]float64
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		table = o.scanner.ScanFacts(doc.Query(), contexts, units, o.mapping)
	}()
	go func() {
		defer wg.Done()
		revenue = o.reconciler.CollectRevenue(doc.Query(), contexts, units)
	}()
	wg.Wait()
	o.reconciler.Override(table, revenue)

	analysis, err := o.engine.Compute(table)
	if err != nil {
		return nil, err
	}

	fa := &models.FilingAnalysis{
		Metadata:   doc.Metadata(),
		Facts:      table,
		Analysis:   analysis,
		Sections:   o.builder.Build(doc.FullText()),
		AnalyzedAt: time.Now(),
	}

	if o.cache != nil {
		if err := o.cache.Save(ctx, fingerprint, fa); err != nil {
			o.log.Warn("cache write failed", zap.Error(err))
		}
	}

	return o.withValuation(fa, currentPrice)
}

// withValuation attaches a valuation snapshot when a price was supplied.
// The snapshot is recomputed per run: prices are live, analyses are not.
func (o *Orchestrator) withValuation(fa *models.FilingAnalysis, currentPrice *float64) (*models.FilingAnalysis, error) {
	if currentPrice == nil {
		return fa, nil
	}
	snap, err := o.valuator.Snapshot(fa.Facts, fa.Analysis, *currentPrice)
	if err != nil {
		return nil, err
	}
	fa.Valuation = snap
	return fa, nil
}

// Retrieve routes a query against the analysis section index: the intent
// filter first, then the lexical fallback ranking when intents select
// nothing.
func (o *Orchestrator) Retrieve(fa *models.FilingAnalysis, intents []string, query string, topK int, minScore float64) []*sections.Section {
	filtered := sections.FilterByIntents(fa.Sections, intents)
	if filtered.Len() > 0 && len(intents) > 0 {
		return filtered.Sections()
	}
	return sections.FallbackRank(fa.Sections, query, topK, minScore)
}
