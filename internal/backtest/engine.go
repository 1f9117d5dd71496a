package backtest

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

// Result bundles the audit trail and summary of one run.
type Result struct {
	Strategy string
	Records  []TransactionRecord
	Summary  Summary
	// Messages collects non-fatal per-bar failures (skipped trades,
	// failed establishment). Empty on a clean run.
	Messages []string
}

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes a backtest over a single-symbol bar series.
//
// Signals are generated once against the full series. The first bar with a
// valid close triggers the establishing buy (the shares argument is
// irrelevant there; the ledger sizes it to the available capital). Every
// later bar makes exactly one ledger call: buy, sell, or mark-to-market.
// Bars with missing closes are skipped entirely.
func (e *Engine) Run(series model.PriceSeries, ledger *Ledger, strat strategy.Strategy) (*Result, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger is nil")
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no bars")
	}

	signals := strat.GenerateSignals(series)
	if len(signals) != len(series) {
		return nil, fmt.Errorf("strategy %s: %d signals for %d bars", strat.Name(), len(signals), len(series))
	}

	var msgs []string
	first := series.FirstValid()
	if first < 0 {
		// No tradable price anywhere; the ledger keeps only its INIT record.
		msgs = append(msgs, "no valid close price in series")
	} else {
		bar := series[first]
		if res := ledger.Buy(bar.Date, decimal.NewFromFloat(bar.Close), 0); !res.OK {
			// Establishment failed; continue the run with zero position so
			// the trail still records mark-to-market rows.
			msgs = append(msgs, fmt.Sprintf("%s: %s", bar.Date.Format("2006-01-02"), res.Message))
		}

		for i := first + 1; i < len(series); i++ {
			bar := series[i]
			if !bar.HasClose() {
				continue
			}
			price := decimal.NewFromFloat(bar.Close)
			switch sig := signals[i]; {
			case sig > 0:
				if res := ledger.Buy(bar.Date, price, sig); !res.OK {
					msgs = append(msgs, fmt.Sprintf("%s: %s", bar.Date.Format("2006-01-02"), res.Message))
				}
			case sig < 0:
				if res := ledger.Sell(bar.Date, price, -sig); !res.OK {
					msgs = append(msgs, fmt.Sprintf("%s: %s", bar.Date.Format("2006-01-02"), res.Message))
				}
			default:
				ledger.Update(bar.Date, price)
			}
		}
	}

	return &Result{
		Strategy: strat.Name(),
		Records:  ledger.Records(),
		Summary:  ledger.Summary(),
		Messages: msgs,
	}, nil
}
