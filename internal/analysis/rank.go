// Package analysis ranks strategy configurations by backtesting each one
// over the same price series.
package analysis

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"stock-backtest/internal/backtest"
	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

// Variant names one strategy configuration to rank.
type Variant struct {
	Name     string
	Strategy strategy.Strategy
}

// RankedResult pairs a variant with its backtest summary, sorted by return.
type RankedResult struct {
	Rank    int
	Name    string
	Summary backtest.Summary
}

// RankByReturn backtests every variant over the series with a fresh ledger
// each and sorts descending by return percentage. Each run owns its own
// ledger, so variants could be parallelized by callers that need it.
func RankByReturn(series model.PriceSeries, initialCash decimal.Decimal, fees model.FeeSchedule, variants []Variant) ([]RankedResult, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no bars")
	}

	engine := backtest.New()
	out := make([]RankedResult, 0, len(variants))
	for _, v := range variants {
		ledger, err := backtest.NewLedger(initialCash, fees, series[0].Date)
		if err != nil {
			return nil, err
		}
		res, err := engine.Run(series, ledger, v.Strategy)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		out = append(out, RankedResult{Name: v.Name, Summary: res.Summary})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Summary.ReturnPct.GreaterThan(out[j].Summary.ReturnPct)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// DefaultGrid is a small parameter sweep across both built-in strategies,
// used by the CLI rank command when no explicit variants are given.
func DefaultGrid(buyShares int64) []Variant {
	type maParams struct{ short, long int }
	type momParams struct {
		window    int
		threshold float64
	}

	var out []Variant
	for _, p := range []maParams{{5, 20}, {10, 30}, {20, 60}} {
		s := strategy.NewMACross(p.short, p.long, buyShares)
		out = append(out, Variant{Name: s.Name(), Strategy: s})
	}
	for _, p := range []momParams{{10, 0.05}, {20, 0.08}} {
		s := strategy.NewMomentum(p.window, p.threshold, buyShares)
		out = append(out, Variant{Name: s.Name(), Strategy: s})
	}
	return out
}
