// Package strategy defines the decision-engine contract and a Registry of
// named strategy factories. The registry is an explicit object constructed
// at startup; nothing registers itself at import time.
package strategy

import (
	"fmt"
	"sort"
	"time"

	"swing-reversion-bot/internal/exchange"
	"swing-reversion-bot/internal/store"
	"swing-reversion-bot/internal/types"
)

// Strategy is the interface all decision engines implement. Implementations
// own their position ledger and any other decision-relevant state; the
// driver only reads position totals from the portfolio ledger.
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// GenerateSignal produces the decision for one step from the price
	// window and the portfolio snapshot.
	GenerateSignal(market types.MarketSnapshot, portfolio types.Portfolio) types.Signal

	// OnFill updates internal state after the driver realizes a trade.
	OnFill(sig types.Signal, price, size float64, ts time.Time)

	// ExportState returns the full decision-relevant state as a plain
	// mapping, suitable for persistence.
	ExportState() map[string]any

	// ImportState restores state previously produced by ExportState.
	// A restored engine must reproduce identical decisions given identical
	// subsequent inputs.
	ImportState(state map[string]any) error
}

// Factory constructs a strategy from its configuration and an exchange
// handle.
type Factory func(cfg store.StrategyConfig, ex exchange.Exchange) (Strategy, error)

// Registry holds a named collection of strategy factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name, replacing any previous one.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New constructs the named strategy.
func (r *Registry) New(name string, cfg store.StrategyConfig, ex exchange.Exchange) (Strategy, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, r.List())
	}
	return f(cfg, ex)
}

// List returns a sorted slice of all registered strategy names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
