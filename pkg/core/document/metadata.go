package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// FILING METADATA
// Company name, trading symbol and CIK extracted from the dei facts that SEC
// filings carry inline. Every field is best-effort: a missing value is an
// empty string, never an error.
// =============================================================================

// Metadata identifies the filer of a 10-K.
type Metadata struct {
	CompanyName   string `json:"company_name"`
	TradingSymbol string `json:"ticker"`
	CIK           string `json:"cik"`
}

// Metadata extracts filer identification from the parsed filing.
func (d *Document) Metadata() Metadata {
	return Metadata{
		CompanyName:   d.companyName(),
		TradingSymbol: d.tradingSymbol(),
		CIK:           d.centralIndexKey(),
	}
}

// textByNameAttr returns the trimmed text of the first element whose name
// attribute contains needle (case-insensitive). This matches both inline
// ix:nonNumeric facts and plain XML tags regardless of namespace prefix.
func textByNameAttr(doc *goquery.Document, needle string) string {
	var out string
	doc.Find("[name]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name, _ := sel.Attr("name")
		if !strings.Contains(strings.ToLower(name), needle) {
			return true
		}
		if t := strings.TrimSpace(sel.Text()); t != "" {
			out = t
			return false
		}
		return true
	})
	return out
}

// companyName resolves the registrant name, falling back to the document
// <title> with "Form 10-K" boilerplate trimmed.
func (d *Document) companyName() string {
	if name := textByNameAttr(d.doc, "entityregistrantname"); name != "" {
		return name
	}

	title := strings.TrimSpace(d.doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	if idx := strings.Index(strings.ToLower(title), "form 10-k"); idx >= 0 {
		// "Apple Inc. - Form 10-K" -> "Apple Inc."
		if cleaned := strings.Trim(title[:idx], " -–—"); cleaned != "" {
			return cleaned
		}
	}
	return title
}

// tradingSymbol resolves the primary ticker. After the tagged fact, a light
// layout heuristic covers cover pages that label the symbol in a table.
func (d *Document) tradingSymbol() string {
	if sym := textByNameAttr(d.doc, "tradingsymbol"); sym != "" {
		return sym
	}

	var out string
	d.doc.Find("td,span,div").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(sel.Text()), "trading symbol") {
			return true
		}
		next := sel.NextAll().Filter("td,span,div").First()
		t := strings.TrimSpace(next.Text())
		if t != "" && len(t) <= 10 {
			out = t
			return false
		}
		return true
	})
	return out
}

// centralIndexKey resolves the SEC Central Index Key.
func (d *Document) centralIndexKey() string {
	return textByNameAttr(d.doc, "entitycentralindexkey")
}
