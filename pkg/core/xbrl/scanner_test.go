package xbrl

import (
	"testing"
)

const scannerTestDoc = `
<html><body>
<xbrli:context id="fy2024">
	<xbrli:period><xbrli:endDate>2024-09-28</xbrli:endDate></xbrli:period>
</xbrli:context>
<xbrli:context id="fy2023">
	<xbrli:period><xbrli:endDate>2023-09-30</xbrli:endDate></xbrli:period>
</xbrli:context>

<ix:nonFraction name="us-gaap:Revenues" contextRef="fy2024" unitRef="usd" decimals="-6">648,125</ix:nonFraction>
<ix:nonFraction name="us-gaap:SalesRevenueNet" contextRef="fy2024" unitRef="usd" decimals="0">1000</ix:nonFraction>
<ix:nonFraction name="us-gaap:SalesRevenueNet" contextRef="fy2023" unitRef="usd" decimals="0">90000</ix:nonFraction>

<ix:nonFraction name="us-gaap:NetIncomeLoss" contextRef="fy2024" unitRef="usd" decimals="0">50000</ix:nonFraction>
<ix:nonFraction name="us-gaap:NetIncomeLoss" contextRef="fy2024" unitRef="usd" decimals="0">20000</ix:nonFraction>

<ix:nonFraction name="us-gaap:Assets" contextRef="missing-ctx" unitRef="usd" decimals="0">123</ix:nonFraction>
<ix:nonFraction name="us-gaap:Liabilities" contextRef="fy2024" unitRef="usd" decimals="0">—</ix:nonFraction>
</body></html>`

// Preference merge: Revenues outranks SalesRevenueNet for fy2024, but
// SalesRevenueNet still contributes the period Revenues does not report.
func TestScanFactsPreferenceMerge(t *testing.T) {
	doc := mustParse(t, scannerTestDoc)
	contexts := BuildContextMap(doc)
	units := BuildUnitMap(doc)

	mapping := ConceptMapping{
		MetricRevenue:   {"us-gaap:Revenues", "us-gaap:SalesRevenueNet"},
		MetricNetIncome: {"us-gaap:NetIncomeLoss"},
	}

	table := NewScanner(nil).ScanFacts(doc, contexts, units, mapping)

	// decimals -6 restores the figure reported in millions
	rev2024 := table.Value(MetricRevenue, "2024-09-28")
	if rev2024 == nil || *rev2024 != 648125000000 {
		t.Fatalf("fy2024 revenue: expected 648125000000 from preferred concept, got %v", rev2024)
	}
	rev2023 := table.Value(MetricRevenue, "2023-09-30")
	if rev2023 == nil || *rev2023 != 90000 {
		t.Fatalf("fy2023 revenue: expected 90000 from fallback concept, got %v", rev2023)
	}
}

// Duplicate assertions for one (concept, period) keep the maximum: smaller
// duplicates are assumed to be segment breakdowns.
func TestScanFactsDuplicatesKeepMax(t *testing.T) {
	doc := mustParse(t, scannerTestDoc)
	contexts := BuildContextMap(doc)
	units := BuildUnitMap(doc)

	mapping := ConceptMapping{MetricNetIncome: {"us-gaap:NetIncomeLoss"}}
	table := NewScanner(nil).ScanFacts(doc, contexts, units, mapping)

	ni := table.Value(MetricNetIncome, "2024-09-28")
	if ni == nil || *ni != 50000 {
		t.Fatalf("expected max duplicate 50000, got %v", ni)
	}
}

// Facts with unknown contexts or unparsable text are dropped silently.
func TestScanFactsSkipsUnresolvable(t *testing.T) {
	doc := mustParse(t, scannerTestDoc)
	contexts := BuildContextMap(doc)
	units := BuildUnitMap(doc)

	mapping := ConceptMapping{
		"total_assets":      {"us-gaap:Assets"},
		"total_liabilities": {"us-gaap:Liabilities"},
	}
	table := NewScanner(nil).ScanFacts(doc, contexts, units, mapping)

	if v := table.Value("total_assets", "2024-09-28"); v != nil {
		t.Errorf("fact with unknown context should be dropped, got %v", *v)
	}
	if v := table.Value("total_liabilities", "2024-09-28"); v != nil {
		t.Errorf("fact with dash text should be dropped, got %v", *v)
	}
}

// No contexts at all yields an empty table, not an error.
func TestScanFactsNoContexts(t *testing.T) {
	doc := mustParse(t, `
		<html><body>
		<ix:nonFraction name="us-gaap:Revenues" contextRef="c1" decimals="0">100</ix:nonFraction>
		</body></html>`)

	mapping := ConceptMapping{MetricRevenue: {"us-gaap:Revenues"}}
	table := NewScanner(nil).ScanFacts(doc, BuildContextMap(doc), BuildUnitMap(doc), mapping)

	if len(table) != 0 {
		t.Errorf("expected empty table, got %v", table)
	}
	if len(table.Periods()) != 0 {
		t.Errorf("expected no periods, got %v", table.Periods())
	}
}

func TestFactTablePeriodsSorted(t *testing.T) {
	table := FactTable{
		MetricRevenue:   {"2024-09-28": 1, "2022-09-24": 2},
		MetricNetIncome: {"2023-09-30": 3},
	}
	periods := table.Periods()
	expected := []string{"2022-09-24", "2023-09-30", "2024-09-28"}
	if len(periods) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, periods)
	}
	for i := range expected {
		if periods[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, periods)
		}
	}
}
