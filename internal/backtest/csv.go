package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// WriteLedgerCSV persists the transaction log as a CSV report, one row per
// ledger record.
func WriteLedgerCSV(path string, records []TransactionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"date",
		"action",
		"price",
		"shares",
		"cost_or_income",
		"tax",
		"net_amount",
		"cash",
		"position",
		"market_value",
		"total_assets",
		"cum_investment",
		"cum_profit",
		"profit_ratio_pct",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, r := range records {
		row := []string{
			strconv.Itoa(i),
			fmtDate(r.Date),
			string(r.Action),
			fmtMoney(r.Price),
			strconv.FormatInt(r.Shares, 10),
			fmtMoney(r.CostOrIncome),
			fmtMoney(r.Tax),
			fmtMoney(r.NetAmount),
			fmtMoney(r.Cash),
			strconv.FormatInt(r.Position, 10),
			fmtMoney(r.MarketValue),
			fmtMoney(r.TotalAssets),
			fmtMoney(r.CumInvestment),
			fmtMoney(r.CumProfit),
			fmtMoney(r.ProfitRatio),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtMoney(d decimal.Decimal) string {
	return d.StringFixed(4)
}
