// Package metrics turns a canonical fact table into per-period derived
// metrics, year-over-year growth and a price-dependent valuation snapshot.
//
// Every derived field is a *float64: nil means "not derivable from this
// filing", which is distinct from a computed zero and propagates as nil
// through growth and valuation rather than poisoning them with fake zeros.
package metrics

// =============================================================================
// METRICS DATA STRUCTURES
// =============================================================================

// PeriodMetrics holds base and derived figures for one reporting period.
// Margins are fractions (0-1), not percentages.
type PeriodMetrics struct {
	Revenue             *float64 `json:"revenue,omitempty"`
	NetIncome           *float64 `json:"net_income,omitempty"`
	OperatingIncome     *float64 `json:"operating_income,omitempty"`
	OperatingCashFlow   *float64 `json:"operating_cash_flow,omitempty"`
	CapitalExpenditures *float64 `json:"capital_expenditures,omitempty"`

	GrossProfit     *float64 `json:"gross_profit,omitempty"`
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	EBITDA          *float64 `json:"ebitda,omitempty"`
	EBITDAMargin    *float64 `json:"ebitda_margin,omitempty"`
	NetMargin       *float64 `json:"net_margin,omitempty"`
	FCF             *float64 `json:"fcf,omitempty"`
	FCFMargin       *float64 `json:"fcf_margin,omitempty"`
}

// Analysis is the full metrics output for one filing.
type Analysis struct {
	// Periods is sorted ascending; ISO date strings sort chronologically.
	Periods []string `json:"periods"`

	// KeyPeriod is the chronologically latest period with data.
	KeyPeriod string `json:"key_period"`

	PerPeriod map[string]*PeriodMetrics `json:"per_period"`

	// YoY maps growth series name ("revenue_growth", ...) to period -> rate.
	// Rates are fractions. A period without a defined rate is absent.
	YoY map[string]map[string]float64 `json:"yoy"`
}

// Key returns the metrics of the key period, or nil when empty.
func (a *Analysis) Key() *PeriodMetrics {
	if a == nil || a.KeyPeriod == "" {
		return nil
	}
	return a.PerPeriod[a.KeyPeriod]
}

// ValuationSnapshot relates the key period's figures to a market price
// supplied by the caller. Each ratio is independently nil when its own
// inputs are missing; a missing net income does not block the FCF yield.
type ValuationSnapshot struct {
	CurrentPrice float64  `json:"current_price"`
	Shares       *float64 `json:"shares,omitempty"`
	SharesSource string   `json:"shares_source,omitempty"`
	MarketCap    *float64 `json:"market_cap,omitempty"`
	PE           *float64 `json:"pe,omitempty"`
	FCFYield     *float64 `json:"fcf_yield,omitempty"`
	KeyPeriod    string   `json:"key_period"`
}

func floatPtr(v float64) *float64 { return &v }
