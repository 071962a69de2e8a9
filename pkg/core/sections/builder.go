package sections

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// =============================================================================
// SECTION MAP BUILDER
// Detects "Item X." headings in the flattened filing text, slices the text
// into sections and overlays them onto the static catalogue.
// =============================================================================

// headingPattern matches "Item 1.", "ITEM 1A. Risk Factors", etc. and
// captures the item number plus up to 120 chars of heading line.
var headingPattern = regexp.MustCompile(`(?i)(item\s+(\d+[a-z]?)\.\s*[^\n]{0,120})`)

type heading struct {
	start  int
	id     string // normalized, e.g. "item_1a"
	number string // as written, e.g. "1A"
	label  string // full heading line, trimmed
}

// detected is one deduplicated section body found in the text.
type detected struct {
	id    string
	label string
	text  string
}

// Builder constructs Section Indexes from flattened filing text.
type Builder struct {
	catalog []CatalogEntry
	log     *zap.Logger
}

// NewBuilder creates a builder over the given catalogue. A nil logger
// disables logging.
func NewBuilder(catalog []CatalogEntry, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{catalog: catalog, log: log}
}

// findHeadings locates every item heading, sorted by position.
func findHeadings(fullText string) []heading {
	var out []heading
	for _, m := range headingPattern.FindAllStringSubmatchIndex(fullText, -1) {
		line := fullText[m[2]:m[3]]
		number := fullText[m[4]:m[5]]
		out = append(out, heading{
			start:  m[2],
			id:     "item_" + strings.ToLower(number),
			number: number,
			label:  strings.TrimSpace(line),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

// Build produces the Section Index for one document. No headings means an
// empty index: degraded, not an error.
func (b *Builder) Build(fullText string) *Index {
	headings := findHeadings(fullText)
	if len(headings) == 0 {
		b.log.Debug("no item headings detected")
		return NewIndex()
	}

	// Slice section bodies: heading start to next heading start.
	byID := make(map[string]detected)
	var detectedOrder []string
	for i, h := range headings {
		end := len(fullText)
		if i+1 < len(headings) {
			end = headings[i+1].start
		}
		text := strings.TrimSpace(fullText[h.start:end])

		// TOC mentions and real headings share an id; the real body is
		// the longer one.
		prev, seen := byID[h.id]
		if !seen {
			detectedOrder = append(detectedOrder, h.id)
		}
		if !seen || len(text) > len(prev.text) {
			byID[h.id] = detected{id: h.id, label: h.label, text: text}
		}
	}

	ix := NewIndex()

	// Catalogue first, in nominal order, whether present or not.
	for _, entry := range b.catalog {
		s := &Section{
			ID:          entry.ID,
			Label:       entry.Label,
			SectionType: entry.SectionType,
			Part:        entry.Part,
		}
		if d, found := byID[entry.ID]; found {
			if d.label != "" {
				s.Label = d.label
			}
			s.Text = d.text
			s.ApproxCharLen = len(d.text)
			s.PresentInDocument = true
		}
		ix.Add(s)
	}

	// Detected extras the catalogue does not know about.
	for _, id := range detectedOrder {
		if ix.Get(id) != nil {
			continue
		}
		d := byID[id]
		ix.Add(&Section{
			ID:                d.id,
			Label:             d.label,
			SectionType:       TypeOther,
			Part:              "UNKNOWN",
			Text:              d.text,
			ApproxCharLen:     len(d.text),
			PresentInDocument: true,
		})
	}

	b.log.Debug("section index built",
		zap.Int("headings", len(headings)),
		zap.Int("sections", ix.Len()),
	)
	return ix
}
