package backtest

import (
	"math"
	"testing"
)

func TestMaxDrawdown(t *testing.T) {
	// Peak 11000, trough 9000: drawdown 2000/11000.
	got := maxDrawdown(10000, []float64{10000, 11000, 9000, 9500})
	want := 2000.0 / 11000.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("maxDrawdown = %v, want %v", got, want)
	}
}

func TestMaxDrawdownMonotonicRise(t *testing.T) {
	if got := maxDrawdown(100, []float64{100, 110, 120, 130}); got != 0 {
		t.Errorf("maxDrawdown = %v, want 0", got)
	}
}

func TestMaxDrawdownStartsBelowInitial(t *testing.T) {
	// The peak starts at the initial cash, so an opening dip counts.
	got := maxDrawdown(100, []float64{90, 95})
	if math.Abs(got-0.10) > 1e-12 {
		t.Errorf("maxDrawdown = %v, want 0.10", got)
	}
}

func TestFillMetricsEmptyCurve(t *testing.T) {
	res := &Result{InitialCash: 10000}
	fillMetrics(res)

	if res.FinalEquity != 10000 {
		t.Errorf("FinalEquity = %v, want 10000", res.FinalEquity)
	}
	if res.PnL != 0 || res.PnLPct != 0 {
		t.Errorf("PnL = %v, PnLPct = %v, want zeros", res.PnL, res.PnLPct)
	}
	if res.TotalTrades != 0 || res.MaxDrawdown != 0 {
		t.Errorf("TotalTrades = %d, MaxDrawdown = %v, want zeros", res.TotalTrades, res.MaxDrawdown)
	}
}

func TestFillMetricsZeroBase(t *testing.T) {
	res := &Result{InitialCash: 0, EquityCurve: []float64{50, 60}}
	fillMetrics(res)

	if res.FinalEquity != 60 || res.PnL != 60 {
		t.Errorf("FinalEquity = %v, PnL = %v", res.FinalEquity, res.PnL)
	}
	if !math.IsNaN(res.PnLPct) {
		t.Errorf("PnLPct = %v, want NaN", res.PnLPct)
	}
}
