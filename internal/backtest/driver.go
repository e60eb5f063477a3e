// Package backtest replays a historical price series through a strategy and
// derives performance metrics from the resulting equity curve.
package backtest

import (
	"context"
	"time"

	"swing-reversion-bot/internal/exchange"
	"swing-reversion-bot/internal/logger"
	"swing-reversion-bot/internal/strategy"
	"swing-reversion-bot/internal/tradelog"
	"swing-reversion-bot/internal/types"
)

// Result holds the outcome of one backtest run.
type Result struct {
	Symbol      string
	Start, End  time.Time
	InitialCash float64
	FinalEquity float64
	PnL         float64
	PnLPct      float64 // NaN when the initial cash is zero
	MaxDrawdown float64
	TotalTrades int
	Trades      []types.TradeExecution
	EquityCurve []float64
}

// Driver runs the simulation loop: advance the cursor, fetch a bounded
// window, ask the strategy for a decision, apply it to the ledger, sample
// equity. Strictly sequential, no lookahead.
type Driver struct {
	ex         *exchange.Backtest
	strat      strategy.Strategy
	pf         *types.Portfolio
	windowSize int
	warmup     int
	journal    bool
}

func NewDriver(ex *exchange.Backtest, strat strategy.Strategy, pf *types.Portfolio, windowSize, warmup int) *Driver {
	if warmup < 0 {
		warmup = 0
	}
	return &Driver{
		ex:         ex,
		strat:      strat,
		pf:         pf,
		windowSize: windowSize,
		warmup:     warmup,
	}
}

// EnableJournal turns on JSON-lines trade/signal journaling.
func (d *Driver) EnableJournal() { d.journal = true }

// Run replays the series from the warm-up index to the end. An empty series
// terminates immediately with a zero-trade report.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	timer := logger.StartOperation(ctx, "backtest.Run", "symbol", d.pf.Symbol)
	ctx = timer.GetContext()

	res := &Result{
		Symbol:      d.pf.Symbol,
		InitialCash: d.pf.Cash,
	}

	n := d.ex.Len()
	if n == 0 {
		logger.Warn(ctx, "Empty price series, nothing to replay", "symbol", d.pf.Symbol)
		fillMetrics(res)
		timer.End("steps", 0, "trades", 0)
		return res, nil
	}

	res.Start = time.Unix(d.ex.Candle(0).Ts, 0).UTC()
	res.End = time.Unix(d.ex.Candle(n-1).Ts, 0).UTC()

	for i := d.warmup; i < n; i++ {
		d.ex.Seek(i)

		snap, err := d.ex.FetchSnapshot(ctx, d.pf.Symbol, d.windowSize)
		if err != nil {
			timer.EndWithError(err)
			return nil, err
		}
		price := snap.CurrentPrice

		sig := d.strat.GenerateSignal(snap, *d.pf)
		if sig.Action != types.ActionHold {
			logger.Signal(ctx, d.pf.Symbol, string(sig.Action), sig.Size, sig.Reason, "price", price)
		} else if sig.Reason != "" {
			logger.Debug(ctx, "Hold", "symbol", d.pf.Symbol, "reason", sig.Reason, "price", price)
		}
		if d.journal && sig.Action != types.ActionHold {
			_ = tradelog.AppendSignal(tradelog.SignalEntry{
				Symbol: d.pf.Symbol,
				Action: string(sig.Action),
				Size:   sig.Size,
				Price:  price,
				Reason: sig.Reason,
			})
		}

		switch sig.Action {
		case types.ActionBuy:
			// The ledger is the authority: a buy the cash cannot cover is
			// skipped, not an error. Sizing and ledger state can diverge
			// after a restored run.
			if d.pf.ApplyBuy(sig.Size, price) {
				d.recordFill(ctx, sig, types.SideBuy, price, res)
			} else {
				logger.Debug(ctx, "Buy skipped, insufficient cash",
					"symbol", d.pf.Symbol, "size", sig.Size, "price", price, "cash", d.pf.Cash)
			}
		case types.ActionSell:
			if d.pf.ApplySell(sig.Size, price) {
				d.recordFill(ctx, sig, types.SideSell, price, res)
			} else {
				logger.Debug(ctx, "Sell skipped, insufficient inventory",
					"symbol", d.pf.Symbol, "size", sig.Size, "quantity", d.pf.Quantity)
			}
		}

		res.EquityCurve = append(res.EquityCurve, d.pf.Value(price))
	}

	fillMetrics(res)
	timer.End("steps", len(res.EquityCurve), "trades", res.TotalTrades)
	return res, nil
}

// recordFill realizes the trade on the venue, notifies the strategy, and
// journals the execution. Called only after the ledger mutation succeeded.
func (d *Driver) recordFill(ctx context.Context, sig types.Signal, side types.Side, price float64, res *Result) {
	exec, err := d.ex.Execute(ctx, d.pf.Symbol, side, sig.Size, price)
	if err != nil {
		logger.ErrorWithErr(ctx, "Execution failed", err, "symbol", d.pf.Symbol, "side", side)
		return
	}
	res.Trades = append(res.Trades, exec)
	d.strat.OnFill(sig, exec.Price, exec.Size, exec.Timestamp)

	logger.Trade(ctx, d.pf.Symbol, string(side), exec.Size, exec.Price, "reason", sig.Reason)
	if d.journal {
		_ = tradelog.Append(tradelog.Entry{
			Symbol: d.pf.Symbol,
			Side:   string(side),
			Size:   exec.Size,
			Price:  exec.Price,
			Reason: sig.Reason,
		})
	}
}
