package metrics

import (
	"go.uber.org/zap"

	"filinglens/pkg/core/xbrl"
)

// =============================================================================
// VALUATION CALCULATOR
// Relates the key period's extracted figures to an externally supplied
// market price. The price is always a caller input; this package never
// fetches quotes.
// =============================================================================

// sharesPriority is the order in which share-count metrics are tried when
// resolving shares outstanding for the key period.
var sharesPriority = []string{
	xbrl.MetricCommonSharesOutstanding,
	xbrl.MetricSharesOutstanding,
	xbrl.MetricSharesDiluted,
	xbrl.MetricSharesBasic,
}

// Valuator computes valuation snapshots.
type Valuator struct {
	log *zap.Logger
}

// NewValuator creates a valuator. A nil logger disables logging.
func NewValuator(log *zap.Logger) *Valuator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Valuator{log: log}
}

// Snapshot computes market cap, P/E and FCF yield for the analysis key
// period at the given price. The three ratios are independently
// nil-tolerant: a missing net income still allows an FCF yield.
//
// Recompute by calling again with a new price; snapshots are cheap and
// never cached.
func (v *Valuator) Snapshot(table xbrl.FactTable, analysis *Analysis, currentPrice float64) (*ValuationSnapshot, error) {
	if analysis == nil || len(analysis.Periods) == 0 {
		return nil, ErrNoPeriods
	}

	snap := &ValuationSnapshot{
		CurrentPrice: currentPrice,
		KeyPeriod:    analysis.KeyPeriod,
	}

	snap.Shares, snap.SharesSource = resolveShares(table, analysis.KeyPeriod)
	if snap.Shares != nil {
		snap.MarketCap = floatPtr(currentPrice * *snap.Shares)
	}

	key := analysis.Key()
	if key != nil && snap.MarketCap != nil {
		if key.NetIncome != nil && *key.NetIncome != 0 {
			snap.PE = floatPtr(*snap.MarketCap / *key.NetIncome)
		}
		snap.FCFYield = safeRatio(key.FCF, snap.MarketCap)
	}

	v.log.Debug("valuation snapshot",
		zap.String("key_period", snap.KeyPeriod),
		zap.String("shares_source", snap.SharesSource),
		zap.Bool("market_cap_defined", snap.MarketCap != nil),
	)
	return snap, nil
}

// resolveShares returns the first share-count metric with a value for the
// key period, following the fixed priority order.
func resolveShares(table xbrl.FactTable, keyPeriod string) (*float64, string) {
	for _, metric := range sharesPriority {
		if v := table.Value(metric, keyPeriod); v != nil {
			return v, metric
		}
	}
	return nil, ""
}
