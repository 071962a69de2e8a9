package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleFiling = `
<html>
<head><title>Apple Inc. - Form 10-K</title><style>p { color: red; }</style></head>
<body>
<ix:nonNumeric name="dei:EntityRegistrantName" contextRef="c1">Apple Inc.</ix:nonNumeric>
<ix:nonNumeric name="dei:TradingSymbol" contextRef="c1">AAPL</ix:nonNumeric>
<ix:nonNumeric name="dei:EntityCentralIndexKey" contextRef="c1">0000320193</ix:nonNumeric>
<div>Item 1A. Risk Factors</div>
<div>Competition is intense.</div>
</body>
</html>`

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.htm"))
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filing.htm")
	if err := os.WriteFile(path, []byte(sampleFiling), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Query() == nil {
		t.Fatal("expected parsed document")
	}
}

func TestFullTextFlattening(t *testing.T) {
	doc, err := FromBytes([]byte(sampleFiling))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := doc.FullText()
	if !strings.Contains(text, "Item 1A. Risk Factors\nCompetition is intense.") {
		t.Errorf("expected newline-separated headings and bodies, got %q", text)
	}
	if strings.Contains(text, "color: red") {
		t.Error("style content must not leak into flattened text")
	}
}

func TestMetadataFromTaggedFacts(t *testing.T) {
	doc, err := FromBytes([]byte(sampleFiling))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := doc.Metadata()
	if meta.CompanyName != "Apple Inc." {
		t.Errorf("company: expected %q, got %q", "Apple Inc.", meta.CompanyName)
	}
	if meta.TradingSymbol != "AAPL" {
		t.Errorf("ticker: expected AAPL, got %q", meta.TradingSymbol)
	}
	if meta.CIK != "0000320193" {
		t.Errorf("cik: expected 0000320193, got %q", meta.CIK)
	}
}

// Without tagged facts the company name falls back to the <title>, with
// the form boilerplate trimmed.
func TestMetadataTitleFallback(t *testing.T) {
	doc, err := FromBytes([]byte(`<html><head><title>Contoso Corp - Form 10-K</title></head><body></body></html>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := doc.Metadata()
	if meta.CompanyName != "Contoso Corp" {
		t.Errorf("expected %q, got %q", "Contoso Corp", meta.CompanyName)
	}
	if meta.TradingSymbol != "" || meta.CIK != "" {
		t.Errorf("expected empty ticker and cik, got %+v", meta)
	}
}

// Cover pages sometimes only label the symbol in a table.
func TestMetadataTradingSymbolLayoutHeuristic(t *testing.T) {
	doc, err := FromBytes([]byte(`
		<html><body><table><tr>
		<td>Trading Symbol</td><td>MSFT</td>
		</tr></table></body></html>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := doc.Metadata().TradingSymbol; got != "MSFT" {
		t.Errorf("expected MSFT, got %q", got)
	}
}
