package xbrl

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// =============================================================================
// FACT SCANNER
// Walks every ix:nonFraction assertion, resolves it to (concept, period,
// scaled value) and merges source concepts into the canonical Fact Table.
// =============================================================================

// Scanner extracts scaled numeric facts from a parsed filing.
type Scanner struct {
	log *zap.Logger
}

// NewScanner creates a fact scanner. A nil logger disables logging.
func NewScanner(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log}
}

// resolveFact turns one nonFraction element into (concept, period, scaled
// value). ok is false when the fact must be skipped: missing attributes, an
// unresolvable context, or unparsable text. A malformed decimals attribute is
// NOT a skip; the raw value is kept unscaled.
func resolveFact(sel *goquery.Selection, contexts map[string]string, units map[string]ScaleHint) (concept, period string, scaled float64, ok bool) {
	concept = strings.TrimSpace(sel.AttrOr("name", ""))
	if concept == "" {
		return "", "", 0, false
	}

	ctxRef := sel.AttrOr("contextref", "")
	if ctxRef == "" {
		return "", "", 0, false
	}
	period, found := contexts[ctxRef]
	if !found {
		return "", "", 0, false
	}

	number := ParseSignedNumber(sel.Text())
	if number == nil {
		return "", "", 0, false
	}

	unitRef := sel.AttrOr("unitref", "")
	hint, found := units[unitRef]
	if !found {
		// Some filers reference units never declared in the document;
		// the unit id itself ("usd_millions") can still carry the hint.
		hint = ParseScaleHint(unitRef)
	}

	scaled = *number * DecimalScale(sel.AttrOr("decimals", "")) * hint.Multiplier()
	return concept, period, scaled, true
}

// ScanFacts performs the full extraction pass: every nonFraction assertion is
// resolved and stored against its raw concept, then concepts are merged into
// canonical metrics per the mapping's preference order.
//
// Deterministic given the same document: duplicate assertions for one
// (concept, period) keep the maximum scaled value, on the assumption that the
// smaller duplicates are dimensional (segment) breakdowns of the consolidated
// total.
func (s *Scanner) ScanFacts(doc *goquery.Document, contexts map[string]string, units map[string]ScaleHint, mapping ConceptMapping) FactTable {
	raw := s.scanRawConcepts(doc, contexts, units)
	table := mergeConcepts(raw, mapping)

	s.log.Debug("fact scan complete",
		zap.Int("raw_concepts", len(raw)),
		zap.Int("canonical_metrics", len(table)),
		zap.Int("periods", len(table.Periods())),
	)
	return table
}

// scanRawConcepts collects concept -> period -> max scaled value.
func (s *Scanner) scanRawConcepts(doc *goquery.Document, contexts map[string]string, units map[string]ScaleHint) map[string]map[string]float64 {
	raw := make(map[string]map[string]float64)
	var skipped int

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if !hasTagSuffix(sel, "nonfraction") {
			return
		}
		concept, period, scaled, ok := resolveFact(sel, contexts, units)
		if !ok {
			skipped++
			return
		}

		series := raw[concept]
		if series == nil {
			series = make(map[string]float64)
			raw[concept] = series
		}
		if prev, exists := series[period]; !exists || scaled > prev {
			series[period] = scaled
		}
	})

	if skipped > 0 {
		s.log.Debug("skipped unresolvable facts", zap.Int("count", skipped))
	}
	return raw
}

// mergeConcepts folds raw concepts into canonical metrics. Concepts are
// visited in preference order; a period set by a higher-preference concept is
// never overridden by a lower one.
func mergeConcepts(raw map[string]map[string]float64, mapping ConceptMapping) FactTable {
	table := make(FactTable)

	for metric, conceptList := range mapping {
		merged := make(map[string]float64)
		for _, concept := range conceptList {
			for period, value := range raw[concept] {
				if _, taken := merged[period]; taken {
					continue
				}
				merged[period] = value
			}
		}
		if len(merged) > 0 {
			table[metric] = merged
		}
	}

	return table
}
