package types

import "time"

type Candle struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// Action is a strategy decision for one step.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Side is the direction of an executed trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// MarketSnapshot is a bounded look-back window of closing prices ending at
// the current simulated instant. It is created fresh for every step and never
// mutated afterwards.
type MarketSnapshot struct {
	Symbol       string
	Prices       []float64 // oldest -> newest
	CurrentPrice float64   // last element of Prices
	Timestamp    time.Time
}

// Signal is the strategy's decision for one step. Size is required for
// buy/sell and zero for hold. Reason is free-form, for observability only.
type Signal struct {
	Action Action  `json:"action"`
	Size   float64 `json:"size,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

// TradeExecution records a fill produced by the execution venue.
type TradeExecution struct {
	Side      Side      `json:"side"`
	Size      float64   `json:"size"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}
