package backtest

import "math"

// fillMetrics derives the summary metrics from the recorded equity curve.
// An empty curve yields a flat zero-trade result; a zero initial cash makes
// percentage figures NaN, which the report renders as undefined.
func fillMetrics(res *Result) {
	res.TotalTrades = len(res.Trades)

	if len(res.EquityCurve) == 0 {
		res.FinalEquity = res.InitialCash
	} else {
		res.FinalEquity = res.EquityCurve[len(res.EquityCurve)-1]
	}

	res.PnL = res.FinalEquity - res.InitialCash
	if res.InitialCash > 0 {
		res.PnLPct = res.PnL / res.InitialCash * 100
	} else {
		res.PnLPct = math.NaN()
	}

	res.MaxDrawdown = maxDrawdown(res.InitialCash, res.EquityCurve)
}

// maxDrawdown is the largest fractional decline from the running peak, with
// the peak initialized to the starting cash.
func maxDrawdown(initial float64, curve []float64) float64 {
	peak := initial
	maxDD := 0.0
	for _, eq := range curve {
		if eq > peak {
			peak = eq
		}
		if peak <= 0 {
			continue
		}
		dd := (peak - eq) / peak
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
