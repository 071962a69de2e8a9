// Package xbrl extracts scaled numeric facts from inline-XBRL (iXBRL) 10-K
// filings.
//
// This package uses the following external libraries:
//   - github.com/PuerkitoBio/goquery: jQuery-style HTML traversal for locating
//     context, unit and ix:nonFraction elements
//   - gopkg.in/yaml.v2: declarative concept-mapping configuration
package xbrl

import (
	"sort"
)

// =============================================================================
// CANONICAL METRICS
// =============================================================================

// Canonical metric names. Every source concept the scanner understands is
// normalized into one of these keys (see concepts.yaml).
const (
	MetricRevenue                  = "revenue"
	MetricCostOfSales              = "cost_of_sales"
	MetricOperatingIncome          = "operating_income"
	MetricNetIncome                = "net_income"
	MetricOperatingCashFlow        = "operating_cash_flow"
	MetricCapitalExpenditures      = "capital_expenditures"
	MetricInterestExpense          = "interest_expense"
	MetricIncomeTaxExpense         = "income_tax_expense"
	MetricDepreciationAmortization = "depreciation_and_amortization"
	MetricSharesDiluted            = "weighted_avg_shares_diluted"
	MetricSharesBasic              = "weighted_avg_shares_basic"
	MetricCommonSharesOutstanding  = "common_shares_outstanding"
	MetricSharesOutstanding        = "shares_outstanding"
	MetricTotalAssets              = "total_assets"
	MetricTotalCurrentAssets       = "total_current_assets"
)

// =============================================================================
// SCALE HINTS
// =============================================================================

// ScaleHint is the magnitude implied by a unit's descriptive text.
type ScaleHint int

const (
	ScaleNone ScaleHint = iota
	ScaleThousands
	ScaleMillions
	ScaleBillions
)

// Multiplier returns the factor a raw value must be multiplied by.
func (h ScaleHint) Multiplier() float64 {
	switch h {
	case ScaleThousands:
		return 1_000
	case ScaleMillions:
		return 1_000_000
	case ScaleBillions:
		return 1_000_000_000
	}
	return 1
}

func (h ScaleHint) String() string {
	switch h {
	case ScaleThousands:
		return "thousands"
	case ScaleMillions:
		return "millions"
	case ScaleBillions:
		return "billions"
	}
	return "none"
}

// =============================================================================
// FACT TABLE
// =============================================================================

// FactTable maps canonical metric name -> period end date -> fully scaled
// value. At most one value exists per (metric, period).
type FactTable map[string]map[string]float64

// Value returns the value for a metric at a period, or nil when absent.
// Absence is never reported as zero.
func (t FactTable) Value(metric, period string) *float64 {
	series, ok := t[metric]
	if !ok {
		return nil
	}
	v, ok := series[period]
	if !ok {
		return nil
	}
	return &v
}

// Periods returns the sorted union of period end dates across all metrics.
// ISO date strings sort chronologically.
func (t FactTable) Periods() []string {
	seen := make(map[string]bool)
	for _, series := range t {
		for period := range series {
			seen[period] = true
		}
	}
	periods := make([]string, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	return periods
}

// Metrics returns the sorted canonical metric names present in the table.
func (t FactTable) Metrics() []string {
	metrics := make([]string, 0, len(t))
	for m := range t {
		metrics = append(metrics, m)
	}
	sort.Strings(metrics)
	return metrics
}
