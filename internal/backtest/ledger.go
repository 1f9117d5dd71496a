package backtest

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stock-backtest/internal/model"
)

// BoardLot is the minimum tradable unit for establishing and shrunk buys.
const BoardLot = 100

// TransactionRecord is one row of the ledger audit trail.
// This is the primary artifact for "what happened" in a backtest.
type TransactionRecord struct {
	Date   time.Time
	Action model.Action

	Price  decimal.Decimal
	Shares int64

	// CostOrIncome is the gross trade amount: price*shares spent on buys,
	// price*shares received on sells. Zero for INIT and HOLD rows.
	CostOrIncome decimal.Decimal
	Tax          decimal.Decimal
	// NetAmount is cost+tax for buys and income-tax for sells.
	NetAmount decimal.Decimal

	Cash        decimal.Decimal
	Position    int64
	MarketValue decimal.Decimal
	TotalAssets decimal.Decimal

	CumInvestment decimal.Decimal
	CumProfit     decimal.Decimal
	ProfitRatio   decimal.Decimal // percent
}

// OpResult reports the outcome of a single ledger operation. Failures are
// local: no record is appended and the run continues.
type OpResult struct {
	OK      bool
	Message string
}

// Ledger tracks cash, position, and the append-only transaction log for one
// backtest run. It is the sole authority on executed trade sizes: buys may
// be shrunk to what the remaining cash affords, sells are clamped to the
// held position. Not safe for concurrent use; each run owns its own Ledger.
type Ledger struct {
	initialCash    decimal.Decimal
	cash           decimal.Decimal
	position       int64
	initialBuyDone bool
	fees           model.FeeSchedule
	records        []TransactionRecord

	totalInvestment decimal.Decimal
	totalBuyCost    decimal.Decimal
	totalBuyTax     decimal.Decimal
	totalSellIncome decimal.Decimal
	totalSellTax    decimal.Decimal
}

// NewLedger creates a ledger holding initialCash and appends the synthetic
// INIT record dated at the run start. Invalid configuration (negative cash
// or fee rates) is fatal here, before any bars are processed.
func NewLedger(initialCash decimal.Decimal, fees model.FeeSchedule, start time.Time) (*Ledger, error) {
	if initialCash.IsNegative() {
		return nil, errors.New("initial cash must be >= 0")
	}
	if err := fees.Validate(); err != nil {
		return nil, fmt.Errorf("fee schedule invalid: %w", err)
	}
	l := &Ledger{
		initialCash: initialCash,
		cash:        initialCash,
		fees:        fees,
	}
	l.records = append(l.records, TransactionRecord{
		Date:        start,
		Action:      model.ActionInit,
		Cash:        l.cash,
		TotalAssets: l.cash,
	})
	return l, nil
}

// Buy executes a buy at price. The first buy of a run is the establishing
// trade: the requested shares are ignored and the position is sized to
// deploy as much capital as possible in whole board lots. Buys that exceed
// the remaining cash are shrunk to the largest affordable lot-aligned count
// instead of failing outright.
func (l *Ledger) Buy(date time.Time, price decimal.Decimal, shares int64) OpResult {
	if !l.initialBuyDone {
		maxShares := maxLotShares(l.cash, price)
		if maxShares == 0 {
			return OpResult{Message: "insufficient initial capital to establish a position"}
		}
		shares = maxShares
		l.initialBuyDone = true
	}

	cost := price.Mul(decimal.NewFromInt(shares))
	tax := l.fees.BuyTax(price, shares)
	total := cost.Add(tax)

	if total.GreaterThan(l.cash) {
		// Largest lot-aligned count the cash covers with proportional fees.
		rate := decimal.NewFromInt(1).
			Add(l.fees.Buy.CommissionRate).
			Add(l.fees.Buy.TransferFeeRate)
		shares = maxLotShares(l.cash, price.Mul(rate))
		cost = price.Mul(decimal.NewFromInt(shares))
		tax = l.fees.BuyTax(price, shares)
		total = cost.Add(tax)
		// The proportional estimate ignores the minimum-commission floor;
		// step down a lot at a time until the total actually fits.
		for shares > 0 && total.GreaterThan(l.cash) {
			shares -= BoardLot
			cost = price.Mul(decimal.NewFromInt(shares))
			tax = l.fees.BuyTax(price, shares)
			total = cost.Add(tax)
		}
		if shares <= 0 {
			return OpResult{Message: "insufficient funds to buy"}
		}
	}

	l.cash = l.cash.Sub(total)
	l.position += shares

	l.totalBuyCost = l.totalBuyCost.Add(cost)
	l.totalBuyTax = l.totalBuyTax.Add(tax)
	l.totalInvestment = l.totalInvestment.Add(total)

	marketValue := price.Mul(decimal.NewFromInt(l.position))
	profit := marketValue.Sub(l.totalInvestment)
	l.records = append(l.records, TransactionRecord{
		Date:          date,
		Action:        model.ActionBuy,
		Price:         price,
		Shares:        shares,
		CostOrIncome:  cost,
		Tax:           tax,
		NetAmount:     total,
		Cash:          l.cash,
		Position:      l.position,
		MarketValue:   marketValue,
		TotalAssets:   l.cash.Add(marketValue),
		CumInvestment: l.totalInvestment,
		CumProfit:     profit,
		ProfitRatio:   ratioPct(profit, l.totalInvestment),
	})

	return OpResult{
		OK:      true,
		Message: fmt.Sprintf("bought %d shares at %s, tax %s", shares, price.StringFixed(2), tax.StringFixed(2)),
	}
}

// Sell executes a sell at price. The requested shares are clamped to the
// held position; a request against an empty position fails.
func (l *Ledger) Sell(date time.Time, price decimal.Decimal, shares int64) OpResult {
	if shares > l.position {
		shares = l.position
	}
	if shares <= 0 {
		return OpResult{Message: "insufficient position to sell"}
	}

	income := price.Mul(decimal.NewFromInt(shares))
	tax := l.fees.SellTax(price, shares)
	net := income.Sub(tax)

	l.cash = l.cash.Add(net)
	l.position -= shares

	l.totalSellIncome = l.totalSellIncome.Add(income)
	l.totalSellTax = l.totalSellTax.Add(tax)
	// A sell recovers part of the invested capital.
	l.totalInvestment = l.totalInvestment.Sub(net)
	if l.totalInvestment.IsNegative() {
		l.totalInvestment = decimal.Zero
	}

	marketValue := price.Mul(decimal.NewFromInt(l.position))
	profit := marketValue.Sub(l.totalInvestment).Add(l.totalSellIncome).Sub(l.totalBuyCost)
	l.records = append(l.records, TransactionRecord{
		Date:          date,
		Action:        model.ActionSell,
		Price:         price,
		Shares:        shares,
		CostOrIncome:  income,
		Tax:           tax,
		NetAmount:     net,
		Cash:          l.cash,
		Position:      l.position,
		MarketValue:   marketValue,
		TotalAssets:   l.cash.Add(marketValue),
		CumInvestment: l.totalInvestment,
		CumProfit:     profit,
		ProfitRatio:   ratioPct(profit, l.totalBuyCost),
	})

	return OpResult{
		OK:      true,
		Message: fmt.Sprintf("sold %d shares at %s, tax %s", shares, price.StringFixed(2), tax.StringFixed(2)),
	}
}

// Update marks the position to market with no trade, appending a HOLD
// record. At most one record exists per calendar date: if the last record
// already carries this date, Update is a no-op.
func (l *Ledger) Update(date time.Time, price decimal.Decimal) {
	if last := l.records[len(l.records)-1]; sameDate(last.Date, date) {
		return
	}

	marketValue := price.Mul(decimal.NewFromInt(l.position))
	profit := decimal.Zero
	ratio := decimal.Zero
	if l.position > 0 {
		profit = marketValue.Sub(l.totalInvestment)
		ratio = ratioPct(profit, l.totalInvestment)
	}
	l.records = append(l.records, TransactionRecord{
		Date:          date,
		Action:        model.ActionHold,
		Price:         price,
		Cash:          l.cash,
		Position:      l.position,
		MarketValue:   marketValue,
		TotalAssets:   l.cash.Add(marketValue),
		CumInvestment: l.totalInvestment,
		CumProfit:     profit,
		ProfitRatio:   ratio,
	})
}

// Records returns the full audit trail, INIT row included.
func (l *Ledger) Records() []TransactionRecord { return l.records }

func (l *Ledger) InitialCash() decimal.Decimal { return l.initialCash }
func (l *Ledger) Cash() decimal.Decimal        { return l.cash }
func (l *Ledger) Position() int64              { return l.position }

// Summary reduces the transaction log to the flat report.
func (l *Ledger) Summary() Summary {
	return Summarize(l.initialCash, l.records)
}

// maxLotShares returns floor(cash / unitCost / BoardLot) * BoardLot.
func maxLotShares(cash, unitCost decimal.Decimal) int64 {
	if unitCost.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	lots := cash.Div(unitCost.Mul(decimal.NewFromInt(BoardLot))).IntPart()
	if lots <= 0 {
		return 0
	}
	return lots * BoardLot
}

func ratioPct(profit, base decimal.Decimal) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return profit.Div(base).Mul(decimal.NewFromInt(100))
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
