package sections

import (
	"regexp"
	"sort"
	"strings"
)

// =============================================================================
// SECTION RETRIEVAL FILTER
// Two pure functions over the Section Index: an intent-based type filter
// and a lexical-overlap fallback ranking for free-text queries.
// =============================================================================

// Query intents recognized by the type filter.
const (
	IntentRisks      = "risks"
	IntentMDNA       = "mdna"
	IntentFinancials = "financials"
)

// Fallback ranking bounds.
const (
	DefaultMinScore = 0.15
	DefaultTopK     = 5

	// Only the leading slice of each section body feeds the token set;
	// full bodies run to hundreds of KB.
	snippetLen = 2000
)

// intentTypes maps a query intent to the section types it selects.
var intentTypes = map[string]SectionType{
	IntentRisks:      TypeRisks,
	IntentMDNA:       TypeMDNA,
	IntentFinancials: TypeFinancials,
}

// FilterByIntents keeps only sections whose type matches a requested
// intent. Unknown intents select nothing; an empty or all-unknown intent
// set returns the full index unfiltered.
func FilterByIntents(ix *Index, intents []string) *Index {
	wanted := make(map[SectionType]bool)
	for _, intent := range intents {
		if t, ok := intentTypes[intent]; ok {
			wanted[t] = true
		}
	}
	if len(wanted) == 0 {
		return ix
	}

	out := NewIndex()
	for _, s := range ix.Sections() {
		if wanted[s.SectionType] {
			out.Add(s)
		}
	}
	return out
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]+`)

// tokenize case-folds, strips punctuation and splits on whitespace.
func tokenize(text string) map[string]bool {
	text = nonAlnum.ReplaceAllString(strings.ToLower(text), " ")
	tokens := make(map[string]bool)
	for _, t := range strings.Fields(text) {
		tokens[t] = true
	}
	return tokens
}

// scoreSection is the lexical overlap between the query tokens and the
// section's label plus a bounded prefix of its body.
func scoreSection(queryTokens map[string]bool, s *Section) float64 {
	if len(queryTokens) == 0 {
		return 0
	}
	snippet := s.Text
	if len(snippet) > snippetLen {
		snippet = snippet[:snippetLen]
	}
	sectionTokens := tokenize(s.Label + " " + snippet)

	overlap := 0
	for t := range queryTokens {
		if sectionTokens[t] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(queryTokens))
}

// FallbackRank ranks sections by lexical overlap with the query, dropping
// anything below minScore and capping the result at topK. Ties keep index
// order. Used when the intent filter yields nothing useful.
func FallbackRank(ix *Index, query string, topK int, minScore float64) []*Section {
	if topK <= 0 {
		topK = DefaultTopK
	}
	queryTokens := tokenize(query)

	type scored struct {
		section *Section
		score   float64
	}
	var candidates []scored
	for _, s := range ix.Sections() {
		score := scoreSection(queryTokens, s)
		if score >= minScore && score > 0 {
			candidates = append(candidates, scored{s, score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	out := make([]*Section, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.section)
	}
	return out
}
