package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"stock-backtest/internal/analysis"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:           "stockbt",
		Short:         "Run stock backtests against daily bar data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBacktestCmd(), newRankCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newBacktestCmd() *cobra.Command {
	var (
		dataPath string
		cfgPath  string
		outPath  string
		n        int
	)
	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay a strategy over a bar series and write the ledger CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := data.LoadPriceSeriesJSON(dataPath)
			if err != nil {
				return err
			}
			series := resp.Data
			if n > 0 && n < len(series) {
				series = series[:n]
			}
			if len(series) == 0 {
				return fmt.Errorf("no bars in %s", dataPath)
			}

			cfg := config.Default()
			if cfgPath != "" {
				cfg, err = config.Load(cfgPath)
				if err != nil {
					return err
				}
			}

			strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params)
			if err != nil {
				return err
			}
			ledger, err := backtest.NewLedger(cfg.InitialCashDecimal(), cfg.ToFeeSchedule(), series[0].Date)
			if err != nil {
				return err
			}
			res, err := backtest.New().Run(series, ledger, strat)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := backtest.WriteLedgerCSV(outPath, res.Records); err != nil {
				return err
			}

			fmt.Printf("Wrote %d rows to %s\n", len(res.Records), outPath)
			fmt.Printf("Strategy=%s\n", res.Strategy)
			fmt.Printf("Initial=%s Final=%s Return=%s%%\n",
				res.Summary.InitialAssets.StringFixed(2),
				res.Summary.FinalAssets.StringFixed(2),
				res.Summary.ReturnPct.StringFixed(2),
			)
			for _, m := range res.Messages {
				fmt.Printf("note: %s\n", m)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "sample_data.json", "Path to daily bar JSON")
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to YAML config (defaults apply if omitted)")
	cmd.Flags().StringVar(&outPath, "out", "results/ledger.csv", "Output CSV path")
	cmd.Flags().IntVar(&n, "n", 0, "Optional: limit to first N bars (0=all)")
	return cmd
}

func newRankCmd() *cobra.Command {
	var (
		dataPath string
		cash     float64
		shares   int64
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the built-in strategy grid by return over one series",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := data.LoadPriceSeriesJSON(dataPath)
			if err != nil {
				return err
			}
			if len(resp.Data) == 0 {
				return fmt.Errorf("no bars in %s", dataPath)
			}

			ranked, err := analysis.RankByReturn(
				resp.Data,
				decimal.NewFromFloat(cash),
				model.DefaultFeeSchedule(),
				analysis.DefaultGrid(shares),
			)
			if err != nil {
				return err
			}

			fmt.Printf("%-4s %-20s %-12s %-12s %-8s\n", "rank", "strategy", "final", "return%", "trades")
			for _, r := range ranked {
				fmt.Printf("%-4d %-20s %-12s %-12s %-8d\n",
					r.Rank,
					r.Name,
					r.Summary.FinalAssets.StringFixed(2),
					r.Summary.ReturnPct.StringFixed(2),
					r.Summary.TotalTrades,
				)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "sample_data.json", "Path to daily bar JSON")
	cmd.Flags().Float64Var(&cash, "cash", 100000, "Initial cash")
	cmd.Flags().Int64Var(&shares, "shares", 100, "Shares per non-establishing buy signal")
	return cmd
}
