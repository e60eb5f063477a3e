package types

import "testing"

func TestPortfolioValue(t *testing.T) {
	p := NewPortfolio("BTC-USD", 1000)
	p.Quantity = 2

	if got := p.Value(50); got != 1100 {
		t.Errorf("Value(50) = %v, want 1100", got)
	}
}

func TestApplyBuy(t *testing.T) {
	p := NewPortfolio("BTC-USD", 1000)

	if !p.ApplyBuy(5, 100) {
		t.Fatal("expected buy to fill")
	}
	if p.Cash != 500 || p.Quantity != 5 {
		t.Errorf("after buy: cash=%v quantity=%v, want 500 and 5", p.Cash, p.Quantity)
	}

	// Not enough cash left: must be rejected without touching the ledger.
	if p.ApplyBuy(6, 100) {
		t.Error("expected buy to be rejected on insufficient cash")
	}
	if p.Cash != 500 || p.Quantity != 5 {
		t.Errorf("rejected buy mutated ledger: cash=%v quantity=%v", p.Cash, p.Quantity)
	}

	if p.ApplyBuy(0, 100) {
		t.Error("expected zero-size buy to be rejected")
	}
}

func TestApplySell(t *testing.T) {
	p := NewPortfolio("BTC-USD", 0)
	p.Quantity = 3

	if !p.ApplySell(2, 50) {
		t.Fatal("expected sell to fill")
	}
	if p.Cash != 100 || p.Quantity != 1 {
		t.Errorf("after sell: cash=%v quantity=%v, want 100 and 1", p.Cash, p.Quantity)
	}

	// More than held: rejected, no short selling.
	if p.ApplySell(2, 50) {
		t.Error("expected sell to be rejected on insufficient inventory")
	}
	if p.Cash != 100 || p.Quantity != 1 {
		t.Errorf("rejected sell mutated ledger: cash=%v quantity=%v", p.Cash, p.Quantity)
	}
}
