package main

import (
	"flag"
	"fmt"

	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/strategy"
)

// Demo:
// - Generate a synthetic daily bar series
// - Run the MA crossover strategy against a fresh ledger
// - Print the first few ledger rows and the summary
func main() {
	n := flag.Int("n", 250, "Number of bars to generate")
	seed := flag.Int64("seed", 42, "Generator seed")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}

	series := data.NewGenerator(*seed).Series(*n)
	if len(series) == 0 {
		panic("no bars generated")
	}

	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		panic(err)
	}
	ledger, err := backtest.NewLedger(cfg.InitialCashDecimal(), cfg.ToFeeSchedule(), series[0].Date)
	if err != nil {
		panic(err)
	}

	result, err := backtest.New().Run(series, ledger, strat)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Generated %d bars starting %s\n", len(series), series[0].Date.Format("2006-01-02"))
	fmt.Printf("Strategy=%s\n\n", result.Strategy)

	for i := 0; i < min(12, len(result.Records)); i++ {
		r := result.Records[i]
		fmt.Printf(
			"%s %-5s price=%8s shares=%6d cash=%12s pos=%6d assets=%12s\n",
			r.Date.Format("2006-01-02"),
			string(r.Action),
			r.Price.StringFixed(2),
			r.Shares,
			r.Cash.StringFixed(2),
			r.Position,
			r.TotalAssets.StringFixed(2),
		)
	}

	if *outCSV != "" {
		if err := backtest.WriteLedgerCSV(*outCSV, result.Records); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	s := result.Summary
	fmt.Printf("\nDone. Buys=%d Sells=%d Tax=%s\n", s.BuyCount, s.SellCount, s.TotalTax.StringFixed(2))
	fmt.Printf("Initial=%s Final=%s Return=%s%%\n",
		s.InitialAssets.StringFixed(2), s.FinalAssets.StringFixed(2), s.ReturnPct.StringFixed(2))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
