// Package report renders a filing analysis as a Markdown summary for
// downstream display and archival.
package report

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"filinglens/pkg/core/metrics"
	"filinglens/pkg/models"
)

// RenderMarkdown produces the Markdown report for one analysis. Absent
// values render as "n/a", never as zero.
func RenderMarkdown(fa *models.FilingAnalysis) string {
	var b strings.Builder

	title := fa.Metadata.CompanyName
	if title == "" {
		title = "Unknown Registrant"
	}
	fmt.Fprintf(&b, "# %s — 10-K Analysis\n\n", title)
	if fa.Metadata.TradingSymbol != "" {
		fmt.Fprintf(&b, "**Ticker:** %s  \n", fa.Metadata.TradingSymbol)
	}
	if fa.Metadata.CIK != "" {
		fmt.Fprintf(&b, "**CIK:** %s  \n", fa.Metadata.CIK)
	}

	if fa.Analysis != nil {
		renderMetrics(&b, fa.Analysis)
	}
	if fa.Valuation != nil {
		renderValuation(&b, fa.Valuation)
	}
	if fa.Sections != nil && fa.Sections.Len() > 0 {
		renderSections(&b, fa)
	}

	return b.String()
}

func renderMetrics(b *strings.Builder, a *metrics.Analysis) {
	fmt.Fprintf(b, "\n## Financial Metrics (key period: %s)\n\n", a.KeyPeriod)
	b.WriteString("| Metric |")
	for _, p := range a.Periods {
		fmt.Fprintf(b, " %s |", p)
	}
	b.WriteString("\n|---|")
	for range a.Periods {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	rows := []struct {
		label string
		value func(*metrics.PeriodMetrics) *float64
		pct   bool
	}{
		{"Revenue", func(m *metrics.PeriodMetrics) *float64 { return m.Revenue }, false},
		{"Gross margin", func(m *metrics.PeriodMetrics) *float64 { return m.GrossMargin }, true},
		{"Operating margin", func(m *metrics.PeriodMetrics) *float64 { return m.OperatingMargin }, true},
		{"EBITDA", func(m *metrics.PeriodMetrics) *float64 { return m.EBITDA }, false},
		{"Net income", func(m *metrics.PeriodMetrics) *float64 { return m.NetIncome }, false},
		{"Net margin", func(m *metrics.PeriodMetrics) *float64 { return m.NetMargin }, true},
		{"Free cash flow", func(m *metrics.PeriodMetrics) *float64 { return m.FCF }, false},
	}

	for _, row := range rows {
		fmt.Fprintf(b, "| %s |", row.label)
		for _, p := range a.Periods {
			m := a.PerPeriod[p]
			if m == nil {
				b.WriteString(" n/a |")
				continue
			}
			if row.pct {
				fmt.Fprintf(b, " %s |", fmtPct(row.value(m)))
			} else {
				fmt.Fprintf(b, " %s |", fmtAmount(row.value(m)))
			}
		}
		b.WriteString("\n")
	}

	if growth := a.YoY[metrics.GrowthRevenue]; len(growth) > 0 {
		b.WriteString("\n### Revenue Growth (YoY)\n\n")
		for _, p := range a.Periods {
			if g, ok := growth[p]; ok {
				fmt.Fprintf(b, "- %s: %.1f%%\n", p, g*100)
			}
		}
	}
}

func renderValuation(b *strings.Builder, v *metrics.ValuationSnapshot) {
	b.WriteString("\n## Valuation\n\n")
	fmt.Fprintf(b, "- Price: %.2f\n", v.CurrentPrice)
	fmt.Fprintf(b, "- Shares outstanding: %s", fmtAmount(v.Shares))
	if v.SharesSource != "" {
		fmt.Fprintf(b, " (source: %s)", v.SharesSource)
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "- Market cap: %s\n", fmtAmount(v.MarketCap))
	fmt.Fprintf(b, "- P/E: %s\n", fmtRatio(v.PE))
	fmt.Fprintf(b, "- FCF yield: %s\n", fmtPct(v.FCFYield))
}

func renderSections(b *strings.Builder, fa *models.FilingAnalysis) {
	b.WriteString("\n## Document Sections\n\n")
	for _, s := range fa.Sections.Sections() {
		mark := " "
		if s.PresentInDocument {
			mark = "x"
		}
		fmt.Fprintf(b, "- [%s] %s (%s)\n", mark, s.Label, s.SectionType)
	}
}

func fmtAmount(v *float64) string {
	if v == nil {
		return "n/a"
	}
	switch {
	case *v >= 1e9 || *v <= -1e9:
		return fmt.Sprintf("%.2fB", *v/1e9)
	case *v >= 1e6 || *v <= -1e6:
		return fmt.Sprintf("%.2fM", *v/1e6)
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func fmtRatio(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

// ValidateMarkdown checks the string parses as Markdown using Goldmark.
// Goldmark is very permissive, so this is a basic sanity check.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	doc := parser.Parse(reader)
	return doc != nil
}
