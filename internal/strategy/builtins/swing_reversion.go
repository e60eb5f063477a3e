// Package builtins provides the strategy implementations that ship with the
// bot.
package builtins

import (
	"fmt"
	"math"
	"time"

	"swing-reversion-bot/internal/exchange"
	"swing-reversion-bot/internal/store"
	"swing-reversion-bot/internal/strategy"
	"swing-reversion-bot/internal/ta"
	"swing-reversion-bot/internal/types"
)

// Compile-time interface check.
var _ strategy.Strategy = (*SwingReversion)(nil)

const (
	// maxExposureFrac caps the fraction of equity held in the asset.
	maxExposureFrac = 0.55
	// minNotionalUSD is the smallest buy worth placing.
	minNotionalUSD = 10.0
)

// lot is one executed buy not yet exited. The ledger is append-only; a full
// sell clears it as a whole.
type lot struct {
	Price float64
	Size  float64
}

// SwingReversion is a grid mean-reversion engine with a trailing-stop exit.
// It anchors on an SMA of recent closes, scales into deviations below the
// anchor in discrete grid steps, and exits the whole position via trailing
// stop, hard stop or a far take-profit backstop.
type SwingReversion struct {
	maPeriod               int
	gridStepFrac           float64
	maxGridLevels          int
	positionSizeFrac       float64
	stopLossFrac           float64
	takeProfitFrac         float64
	trailingActivationFrac float64
	trailingCallbackFrac   float64

	ex exchange.Exchange

	positions    []lot
	trailingHigh float64
}

// Register adds the built-in strategies to the given registry.
func Register(r *strategy.Registry) {
	r.Register("swing_reversion", func(cfg store.StrategyConfig, ex exchange.Exchange) (strategy.Strategy, error) {
		return NewSwingReversion(cfg, ex), nil
	})
}

func NewSwingReversion(cfg store.StrategyConfig, ex exchange.Exchange) *SwingReversion {
	return &SwingReversion{
		maPeriod:               cfg.MAPeriod,
		gridStepFrac:           cfg.GridStepFrac,
		maxGridLevels:          cfg.MaxGridLevels,
		positionSizeFrac:       cfg.PositionSizeFrac,
		stopLossFrac:           cfg.StopLossFrac,
		takeProfitFrac:         cfg.TakeProfitFrac,
		trailingActivationFrac: cfg.TrailingActivationFrac,
		trailingCallbackFrac:   cfg.TrailingCallbackFrac,
		ex:                     ex,
	}
}

// Name returns "swing_reversion".
func (s *SwingReversion) Name() string { return "swing_reversion" }

// GenerateSignal evaluates the decision branches in fixed precedence order:
// warm-up gate, trailing-high update, trailing stop, hard stop, take-profit
// backstop, grid entry. Abnormal conditions degrade to hold with a reason.
func (s *SwingReversion) GenerateSignal(market types.MarketSnapshot, portfolio types.Portfolio) types.Signal {
	if len(market.Prices) < s.maPeriod {
		return types.Signal{Action: types.ActionHold, Reason: "insufficient history"}
	}

	price := market.CurrentPrice
	sma := ta.SMA(market.Prices, s.maPeriod)
	deviation := (price - sma) / sma

	if portfolio.Quantity > 0 {
		if price > s.trailingHigh {
			s.trailingHigh = price
		}
	} else {
		s.trailingHigh = 0
	}

	if portfolio.Quantity > 0 && len(s.positions) > 0 {
		avgEntry := s.avgEntryPrice()

		// Trailing stop: armed once the high clears the activation band
		// above average entry, fired on a callback retrace from the high.
		if s.trailingHigh > avgEntry*(1+s.trailingActivationFrac) &&
			price < s.trailingHigh*(1-s.trailingCallbackFrac) {
			return types.Signal{Action: types.ActionSell, Size: portfolio.Quantity, Reason: "trailing stop"}
		}

		// Hard stop: price fell below average entry by the configured
		// fraction, independent of the trailing mechanism.
		if s.stopLossFrac > 0 && price < avgEntry*(1-s.stopLossFrac) {
			return types.Signal{Action: types.ActionSell, Size: portfolio.Quantity, Reason: "stop loss"}
		}
	}

	// Take-profit backstop; the threshold sits far above the trailing
	// activation so the trailing stop normally fires first.
	if deviation > s.takeProfitFrac && portfolio.Quantity > 0 {
		return types.Signal{Action: types.ActionSell, Size: portfolio.Quantity, Reason: "target hit"}
	}

	if deviation < 0 {
		levelIdx := int(math.Abs(deviation) / s.gridStepFrac)
		if levelIdx < 1 {
			// Dead zone immediately below the anchor.
			return types.Signal{Action: types.ActionHold}
		}
		if levelIdx > s.maxGridLevels {
			levelIdx = s.maxGridLevels
		}

		for _, p := range s.positions {
			if math.Abs(p.Price-price)/p.Price < s.gridStepFrac*0.5 {
				return types.Signal{Action: types.ActionHold, Reason: "level occupied"}
			}
		}

		totalEquity := portfolio.Cash + portfolio.Quantity*price
		if totalEquity <= 0 {
			return types.Signal{Action: types.ActionHold, Reason: "insufficient cash"}
		}
		exposure := (portfolio.Quantity * price) / totalEquity
		if exposure >= maxExposureFrac {
			return types.Signal{Action: types.ActionHold, Reason: "max exposure"}
		}

		buyUSD := totalEquity * s.positionSizeFrac
		if portfolio.Cash < buyUSD {
			buyUSD = portfolio.Cash
		}
		if buyUSD < minNotionalUSD {
			return types.Signal{Action: types.ActionHold, Reason: "insufficient cash"}
		}

		return types.Signal{
			Action: types.ActionBuy,
			Size:   buyUSD / price,
			Reason: fmt.Sprintf("grid buy level %d", levelIdx),
		}
	}

	return types.Signal{Action: types.ActionHold}
}

// OnFill records a buy lot, or clears the whole ledger on a sell. Sells are
// always sized as the full position, so there is no partial-lot removal.
func (s *SwingReversion) OnFill(sig types.Signal, price, size float64, _ time.Time) {
	switch sig.Action {
	case types.ActionBuy:
		s.positions = append(s.positions, lot{Price: price, Size: size})
	case types.ActionSell:
		s.positions = nil
	}
}

// PositionTotal returns the summed size of all open lots.
func (s *SwingReversion) PositionTotal() float64 {
	total := 0.0
	for _, p := range s.positions {
		total += p.Size
	}
	return total
}

// avgEntryPrice is the size-weighted average entry of the open lots. It is
// derived on demand; callers must ensure the ledger is non-empty.
func (s *SwingReversion) avgEntryPrice() float64 {
	var notional, size float64
	for _, p := range s.positions {
		notional += p.Price * p.Size
		size += p.Size
	}
	if size == 0 {
		return 0
	}
	return notional / size
}

// ExportState returns the decision-relevant state as a plain mapping.
func (s *SwingReversion) ExportState() map[string]any {
	positions := make([]map[string]float64, 0, len(s.positions))
	for _, p := range s.positions {
		positions = append(positions, map[string]float64{"price": p.Price, "size": p.Size})
	}
	return map[string]any{
		"active_positions": positions,
		"trailing_high":    s.trailingHigh,
	}
}

// ImportState restores state from a mapping produced by ExportState, either
// in memory or round-tripped through JSON.
func (s *SwingReversion) ImportState(state map[string]any) error {
	s.positions = nil
	s.trailingHigh = 0
	if state == nil {
		return nil
	}

	if v, ok := state["trailing_high"]; ok {
		th, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("trailing_high has unexpected type %T", v)
		}
		s.trailingHigh = th
	}

	raw, ok := state["active_positions"]
	if !ok || raw == nil {
		return nil
	}
	entries, err := asEntrySlice(raw)
	if err != nil {
		return err
	}
	for i, e := range entries {
		price, okP := toFloat(e["price"])
		size, okS := toFloat(e["size"])
		if !okP || !okS {
			return fmt.Errorf("active_positions[%d] is malformed: %v", i, e)
		}
		s.positions = append(s.positions, lot{Price: price, Size: size})
	}
	return nil
}

func asEntrySlice(raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case []map[string]float64:
		out := make([]map[string]any, 0, len(v))
		for _, m := range v {
			e := make(map[string]any, len(m))
			for k, f := range m {
				e[k] = f
			}
			out = append(out, e)
		}
		return out, nil
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("active_positions[%d] has unexpected type %T", i, item)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("active_positions has unexpected type %T", raw)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
