package xbrl

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// CONTEXT / UNIT RESOLVER
// Builds the two lookup tables every fact resolution depends on:
//   contextRef -> period end date, unitRef -> scale hint
// =============================================================================

// hasTagSuffix reports whether the element's tag name ends with suffix.
// Covers namespaced variants: xbrli:context, context, ix:nonfraction, etc.
func hasTagSuffix(sel *goquery.Selection, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(goquery.NodeName(sel)), suffix)
}

// firstTextBySuffix returns the trimmed text of the first descendant whose
// tag name ends with suffix, or "" when none exists.
func firstTextBySuffix(sel *goquery.Selection, suffix string) string {
	var found string
	sel.Find("*").EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if !hasTagSuffix(child, suffix) {
			return true
		}
		found = strings.TrimSpace(child.Text())
		return false
	})
	return found
}

// BuildContextMap scans the document for context elements and maps each
// context id to its period end date string ("YYYY-MM-DD").
//
// Instant periods are tried first (point-in-time contexts), then endDate.
// An empty result is a valid, degraded outcome: every fact referencing an
// unknown context is simply dropped downstream.
func BuildContextMap(doc *goquery.Document) map[string]string {
	contexts := make(map[string]string)

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if !hasTagSuffix(sel, "context") {
			return
		}
		id, ok := sel.Attr("id")
		if !ok || id == "" {
			return
		}

		if date := firstTextBySuffix(sel, "instant"); date != "" {
			contexts[id] = date
			return
		}
		if date := firstTextBySuffix(sel, "enddate"); date != "" {
			contexts[id] = date
		}
	})

	return contexts
}

// BuildUnitMap scans the document for unit elements and derives a scale hint
// from each unit's descriptive text (e.g. "iso4217:USD shares in millions").
func BuildUnitMap(doc *goquery.Document) map[string]ScaleHint {
	units := make(map[string]ScaleHint)

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if !hasTagSuffix(sel, "unit") {
			return
		}
		id, ok := sel.Attr("id")
		if !ok || id == "" {
			return
		}
		units[id] = ParseScaleHint(sel.Text())
	})

	return units
}

// ParseScaleHint derives a magnitude from descriptive unit text.
func ParseScaleHint(desc string) ScaleHint {
	lower := strings.ToLower(desc)
	switch {
	case strings.Contains(lower, "thousand"):
		return ScaleThousands
	case strings.Contains(lower, "million"):
		return ScaleMillions
	case strings.Contains(lower, "billion"):
		return ScaleBillions
	}
	return ScaleNone
}
