// Package exchange abstracts the execution venue: it serves bounded price
// windows and realizes trades. The backtest implementation replays an
// in-memory candle series and fills every order at the requested price.
package exchange

import (
	"context"
	"fmt"
	"time"

	"swing-reversion-bot/internal/types"
)

type Exchange interface {
	// FetchSnapshot returns up to limit closing prices ending at the current
	// simulated instant, newest last.
	FetchSnapshot(ctx context.Context, symbol string, limit int) (types.MarketSnapshot, error)

	// Execute realizes a trade. Backtest mode fills unconditionally at the
	// requested price; there is no slippage model.
	Execute(ctx context.Context, symbol string, side types.Side, size, price float64) (types.TradeExecution, error)
}

// Backtest replays a historical candle series. The cursor is owned by the
// driver: snapshots never contain bars after it.
type Backtest struct {
	symbol  string
	candles []types.Candle
	cursor  int
}

var _ Exchange = (*Backtest)(nil)

func NewBacktest(symbol string, candles []types.Candle) *Backtest {
	return &Backtest{symbol: symbol, candles: candles}
}

// Len returns the number of candles in the series.
func (b *Backtest) Len() int { return len(b.candles) }

// Seek positions the cursor at index i. The driver advances it once per
// simulated step.
func (b *Backtest) Seek(i int) { b.cursor = i }

// Candle returns the bar at index i.
func (b *Backtest) Candle(i int) types.Candle { return b.candles[i] }

func (b *Backtest) FetchSnapshot(_ context.Context, symbol string, limit int) (types.MarketSnapshot, error) {
	if len(b.candles) == 0 {
		return types.MarketSnapshot{}, fmt.Errorf("no candles loaded for %s", symbol)
	}
	if b.cursor < 0 || b.cursor >= len(b.candles) {
		return types.MarketSnapshot{}, fmt.Errorf("cursor %d out of range [0, %d)", b.cursor, len(b.candles))
	}

	end := b.cursor + 1
	start := end - limit
	if start < 0 {
		start = 0
	}

	prices := make([]float64, 0, end-start)
	for _, c := range b.candles[start:end] {
		prices = append(prices, c.Close)
	}

	cur := b.candles[b.cursor]
	return types.MarketSnapshot{
		Symbol:       symbol,
		Prices:       prices,
		CurrentPrice: cur.Close,
		Timestamp:    time.Unix(cur.Ts, 0).UTC(),
	}, nil
}

func (b *Backtest) Execute(_ context.Context, _ string, side types.Side, size, price float64) (types.TradeExecution, error) {
	var ts time.Time
	if b.cursor >= 0 && b.cursor < len(b.candles) {
		ts = time.Unix(b.candles[b.cursor].Ts, 0).UTC()
	}
	return types.TradeExecution{
		Side:      side,
		Size:      size,
		Price:     price,
		Timestamp: ts,
	}, nil
}
