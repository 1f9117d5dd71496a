package backtest

import (
	"github.com/shopspring/decimal"

	"stock-backtest/internal/model"
)

// Summary is the flat performance report computed from a finished
// transaction log.
type Summary struct {
	InitialAssets decimal.Decimal
	FinalAssets   decimal.Decimal
	ReturnPct     decimal.Decimal

	BuyCount    int
	SellCount   int
	TotalTrades int

	TotalTax       decimal.Decimal
	MaxTotalAssets decimal.Decimal
	MinTotalAssets decimal.Decimal

	TotalBuyCost    decimal.Decimal
	TotalSellIncome decimal.Decimal
	TotalBuyTax     decimal.Decimal
	TotalSellTax    decimal.Decimal

	// CumProfit and ProfitRatio are taken from the last record.
	CumProfit   decimal.Decimal
	ProfitRatio decimal.Decimal

	// Realized P&L extremes across individual sell events, FIFO-matched
	// against open buy lots. Zero when no sells occurred.
	MaxSingleTradeProfit decimal.Decimal
	MaxSingleTradeLoss   decimal.Decimal
}

// lot is a buy event's remaining unsold shares, kept for FIFO matching.
type lot struct {
	price  decimal.Decimal
	shares int64
}

// Summarize reduces a transaction log to its Summary. A log holding only
// the INIT record reports initial assets everywhere and zero counts.
func Summarize(initialCash decimal.Decimal, records []TransactionRecord) Summary {
	s := Summary{
		InitialAssets:  initialCash,
		FinalAssets:    initialCash,
		MaxTotalAssets: initialCash,
		MinTotalAssets: initialCash,
	}
	if len(records) == 0 {
		return s
	}

	s.MaxTotalAssets = records[0].TotalAssets
	s.MinTotalAssets = records[0].TotalAssets

	// FIFO queue of open buy lots; head advances as lots are consumed.
	var lots []lot
	head := 0

	for _, rec := range records {
		s.TotalTax = s.TotalTax.Add(rec.Tax)
		if rec.TotalAssets.GreaterThan(s.MaxTotalAssets) {
			s.MaxTotalAssets = rec.TotalAssets
		}
		if rec.TotalAssets.LessThan(s.MinTotalAssets) {
			s.MinTotalAssets = rec.TotalAssets
		}

		switch rec.Action {
		case model.ActionBuy:
			s.BuyCount++
			s.TotalBuyCost = s.TotalBuyCost.Add(rec.CostOrIncome)
			s.TotalBuyTax = s.TotalBuyTax.Add(rec.Tax)
			lots = append(lots, lot{price: rec.Price, shares: rec.Shares})
		case model.ActionSell:
			s.SellCount++
			s.TotalSellIncome = s.TotalSellIncome.Add(rec.CostOrIncome)
			s.TotalSellTax = s.TotalSellTax.Add(rec.Tax)

			// Consume open lots front-first; partially consumed lots keep
			// their remainder at the head. Unmatched shares contribute zero.
			remaining := rec.Shares
			profit := decimal.Zero
			for remaining > 0 && head < len(lots) {
				lt := &lots[head]
				matched := lt.shares
				if matched > remaining {
					matched = remaining
				}
				profit = profit.Add(
					rec.Price.Sub(lt.price).Mul(decimal.NewFromInt(matched)),
				)
				lt.shares -= matched
				remaining -= matched
				if lt.shares == 0 {
					head++
				}
			}

			if profit.GreaterThan(s.MaxSingleTradeProfit) {
				s.MaxSingleTradeProfit = profit
			}
			if profit.LessThan(s.MaxSingleTradeLoss) {
				s.MaxSingleTradeLoss = profit
			}
		}
	}

	s.TotalTrades = s.BuyCount + s.SellCount

	last := records[len(records)-1]
	s.FinalAssets = last.TotalAssets
	s.CumProfit = last.CumProfit
	s.ProfitRatio = last.ProfitRatio
	if initialCash.GreaterThan(decimal.Zero) {
		s.ReturnPct = s.FinalAssets.Sub(initialCash).
			Div(initialCash).
			Mul(decimal.NewFromInt(100))
	}
	return s
}
