package xbrl

import (
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// =============================================================================
// REVENUE RECONCILER
// A second, narrower pass over the document restricted to the authoritative
// top-line revenue concepts. Filers tag revenue inconsistently and the
// generic merge can pick up partial segment figures, so when this pass finds
// anything it replaces the revenue series wholesale.
// =============================================================================

// Concepts considered authoritative for consolidated top-line revenue.
var revenueConcepts = map[string]bool{
	"us-gaap:Revenues": true,
	"us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax": true,
}

// RevenueReconciler rebuilds the revenue series from authoritative concepts.
type RevenueReconciler struct {
	log *zap.Logger
}

// NewRevenueReconciler creates a reconciler. A nil logger disables logging.
func NewRevenueReconciler(log *zap.Logger) *RevenueReconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RevenueReconciler{log: log}
}

// CollectRevenue scans the document for facts tagged with an authoritative
// revenue concept and returns period -> max scaled value. Duplicates for a
// period keep the maximum: smaller values are assumed to be segment slices.
//
// This pass is independent of the generic fact scan and may run concurrently
// with it.
func (r *RevenueReconciler) CollectRevenue(doc *goquery.Document, contexts map[string]string, units map[string]ScaleHint) map[string]float64 {
	byPeriod := make(map[string]float64)

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if !hasTagSuffix(sel, "nonfraction") {
			return
		}
		concept, period, scaled, ok := resolveFact(sel, contexts, units)
		if !ok || !revenueConcepts[concept] {
			return
		}
		if prev, exists := byPeriod[period]; !exists || scaled > prev {
			byPeriod[period] = scaled
		}
	})

	return byPeriod
}

// Override replaces the table's revenue series with the reconciled one.
// The replacement is wholesale, never a per-period patch: mixing two
// resolution strategies inside one metric is worse than committing to one.
// An empty reconciled series leaves the generic result untouched.
func (r *RevenueReconciler) Override(table FactTable, byPeriod map[string]float64) {
	if len(byPeriod) == 0 {
		r.log.Debug("revenue reconciler found nothing; keeping generic revenue")
		return
	}

	old := table[MetricRevenue]
	table[MetricRevenue] = byPeriod

	r.log.Debug("revenue series overridden",
		zap.Int("periods", len(byPeriod)),
		zap.Int("replaced_periods", len(old)),
	)
}
