package strategy

import "stock-backtest/internal/model"

// Strategy produces one signed share quantity per bar: positive buys,
// negative sells, zero holds. Signals are generated once over the full
// series up front; this is an offline batch backtest, not a streaming
// simulation. The ledger remains the authority on executed sizes (buys may
// be shrunk for insufficient funds), so a strategy must not assume its
// emitted quantity was filled in full.
type Strategy interface {
	Name() string
	GenerateSignals(series model.PriceSeries) []int64
}
