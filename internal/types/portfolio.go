package types

// Portfolio is the single-symbol account ledger. It is mutated only by the
// backtest driver through ApplyBuy/ApplySell; cash and quantity never go
// negative.
type Portfolio struct {
	Symbol   string
	Cash     float64
	Quantity float64
}

func NewPortfolio(symbol string, cash float64) *Portfolio {
	return &Portfolio{Symbol: symbol, Cash: cash}
}

// Value returns the mark-to-market equity at the given price.
func (p *Portfolio) Value(price float64) float64 {
	return p.Cash + p.Quantity*price
}

// ApplyBuy debits cash and credits quantity. It reports false, leaving the
// ledger untouched, if cash does not cover the notional. A rejected buy is a
// policy no-op, not an error.
func (p *Portfolio) ApplyBuy(size, price float64) bool {
	cost := size * price
	if size <= 0 || p.Cash < cost {
		return false
	}
	p.Cash -= cost
	p.Quantity += size
	return true
}

// ApplySell credits cash and debits quantity. It reports false, leaving the
// ledger untouched, if the held quantity does not cover the size. No short
// selling.
func (p *Portfolio) ApplySell(size, price float64) bool {
	if size <= 0 || p.Quantity < size {
		return false
	}
	p.Cash += size * price
	p.Quantity -= size
	return true
}
