package metrics

import (
	"errors"
	"math"
	"sort"

	"go.uber.org/zap"

	"filinglens/pkg/core/xbrl"
)

// =============================================================================
// METRICS ENGINE
// Per-period derived metrics plus year-over-year growth, computed from the
// canonical fact table. Pure: same table in, same analysis out.
// =============================================================================

// ErrNoPeriods is returned when the fact table holds no periods at all.
// Callers must treat this as fatal for the document rather than rendering
// a table of zeros.
var ErrNoPeriods = errors.New("fact table contains no reporting periods")

// Growth series names, keyed into Analysis.YoY.
const (
	GrowthRevenue   = "revenue_growth"
	GrowthNetIncome = "net_income_growth"
	GrowthFCF       = "fcf_growth"
	GrowthEBITDA    = "ebitda_growth"
)

// Engine computes derived metrics from a fact table.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates a metrics engine. A nil logger disables logging.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Compute builds the full Analysis for a fact table.
func (e *Engine) Compute(table xbrl.FactTable) (*Analysis, error) {
	periods := table.Periods()
	if len(periods) == 0 {
		return nil, ErrNoPeriods
	}

	perPeriod := make(map[string]*PeriodMetrics, len(periods))
	for _, period := range periods {
		perPeriod[period] = computePeriod(table, period)
	}

	analysis := &Analysis{
		Periods:   periods,
		KeyPeriod: periods[len(periods)-1],
		PerPeriod: perPeriod,
		YoY:       computeGrowth(perPeriod, periods),
	}

	e.log.Debug("metrics computed",
		zap.Int("periods", len(periods)),
		zap.String("key_period", analysis.KeyPeriod),
	)
	return analysis, nil
}

// computePeriod derives metrics for one period. Each derived field is set
// only when all of its inputs are present; margins additionally require a
// non-zero revenue.
func computePeriod(table xbrl.FactTable, period string) *PeriodMetrics {
	revenue := table.Value(xbrl.MetricRevenue, period)
	costOfSales := table.Value(xbrl.MetricCostOfSales, period)
	operatingIncome := table.Value(xbrl.MetricOperatingIncome, period)
	netIncome := table.Value(xbrl.MetricNetIncome, period)
	opCF := table.Value(xbrl.MetricOperatingCashFlow, period)
	capex := table.Value(xbrl.MetricCapitalExpenditures, period)
	dAndA := table.Value(xbrl.MetricDepreciationAmortization, period)

	m := &PeriodMetrics{
		Revenue:             revenue,
		NetIncome:           netIncome,
		OperatingIncome:     operatingIncome,
		OperatingCashFlow:   opCF,
		CapitalExpenditures: capex,
	}

	if revenue != nil && costOfSales != nil {
		m.GrossProfit = floatPtr(*revenue - *costOfSales)
		m.GrossMargin = safeRatio(m.GrossProfit, revenue)
	}
	if operatingIncome != nil {
		m.OperatingMargin = safeRatio(operatingIncome, revenue)
	}

	m.EBITDA = deriveEBITDA(operatingIncome, netIncome, dAndA)
	m.EBITDAMargin = safeRatio(m.EBITDA, revenue)
	m.NetMargin = safeRatio(netIncome, revenue)

	if opCF != nil && capex != nil {
		m.FCF = floatPtr(*opCF - *capex)
		m.FCFMargin = safeRatio(m.FCF, revenue)
	}

	return m
}

// deriveEBITDA applies the fallback chain: operating income plus D&A when
// both exist, then operating income alone, then net income plus D&A, then
// net income alone. Nil when none of the inputs exist.
func deriveEBITDA(operatingIncome, netIncome, dAndA *float64) *float64 {
	switch {
	case operatingIncome != nil && dAndA != nil:
		return floatPtr(*operatingIncome + *dAndA)
	case operatingIncome != nil:
		return floatPtr(*operatingIncome)
	case netIncome != nil && dAndA != nil:
		return floatPtr(*netIncome + *dAndA)
	case netIncome != nil:
		return floatPtr(*netIncome)
	}
	return nil
}

// safeRatio divides num by denom, returning nil when either side is missing
// or the denominator is zero. Never zero, never a panic.
func safeRatio(num, denom *float64) *float64 {
	if num == nil || denom == nil || *denom == 0 {
		return nil
	}
	return floatPtr(*num / *denom)
}

// computeGrowth builds YoY growth for revenue, net income, FCF and EBITDA.
// Growth is (current - previous) / |previous| against the immediately
// preceding period; absent when either side is missing or previous is zero.
func computeGrowth(perPeriod map[string]*PeriodMetrics, periods []string) map[string]map[string]float64 {
	sorted := append([]string(nil), periods...)
	sort.Strings(sorted)

	tracked := []struct {
		name  string
		value func(*PeriodMetrics) *float64
	}{
		{GrowthRevenue, func(m *PeriodMetrics) *float64 { return m.Revenue }},
		{GrowthNetIncome, func(m *PeriodMetrics) *float64 { return m.NetIncome }},
		{GrowthFCF, func(m *PeriodMetrics) *float64 { return m.FCF }},
		{GrowthEBITDA, func(m *PeriodMetrics) *float64 { return m.EBITDA }},
	}

	yoy := make(map[string]map[string]float64, len(tracked))
	for _, t := range tracked {
		series := make(map[string]float64)
		for i := 1; i < len(sorted); i++ {
			curr := perPeriod[sorted[i]]
			prev := perPeriod[sorted[i-1]]
			if curr == nil || prev == nil {
				continue
			}
			cv, pv := t.value(curr), t.value(prev)
			if cv == nil || pv == nil || *pv == 0 {
				continue
			}
			series[sorted[i]] = (*cv - *pv) / math.Abs(*pv)
		}
		yoy[t.name] = series
	}
	return yoy
}
