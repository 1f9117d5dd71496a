package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// BuyFees holds buy-side rates (fractions of the trade amount).
type BuyFees struct {
	CommissionRate  decimal.Decimal
	TransferFeeRate decimal.Decimal
}

// SellFees holds sell-side rates. Stamp duty applies to sells only.
type SellFees struct {
	CommissionRate  decimal.Decimal
	StampDutyRate   decimal.Decimal
	TransferFeeRate decimal.Decimal
}

// FeeSchedule is the transaction-cost configuration for one run, immutable
// once the ledger is constructed. The commission component is floored at
// MinCommission on both sides.
type FeeSchedule struct {
	Buy           BuyFees
	Sell          SellFees
	MinCommission decimal.Decimal
}

// DefaultFeeSchedule returns the standard A-share rates: 0.03% commission
// both ways (min 5 yuan), 0.1% stamp duty on sells, 0.002% transfer fee.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		Buy: BuyFees{
			CommissionRate:  decimal.NewFromFloat(0.0003),
			TransferFeeRate: decimal.NewFromFloat(0.00002),
		},
		Sell: SellFees{
			CommissionRate:  decimal.NewFromFloat(0.0003),
			StampDutyRate:   decimal.NewFromFloat(0.001),
			TransferFeeRate: decimal.NewFromFloat(0.00002),
		},
		MinCommission: decimal.NewFromInt(5),
	}
}

func (f FeeSchedule) Validate() error {
	rates := []decimal.Decimal{
		f.Buy.CommissionRate,
		f.Buy.TransferFeeRate,
		f.Sell.CommissionRate,
		f.Sell.StampDutyRate,
		f.Sell.TransferFeeRate,
		f.MinCommission,
	}
	for _, r := range rates {
		if r.IsNegative() {
			return errors.New("fee rates must be >= 0")
		}
	}
	return nil
}

// BuyTax returns the total buy-side cost for shares at price:
// max(amount*commission_rate, min_commission) + amount*transfer_fee_rate.
func (f FeeSchedule) BuyTax(price decimal.Decimal, shares int64) decimal.Decimal {
	amount := price.Mul(decimal.NewFromInt(shares))
	commission := decimal.Max(amount.Mul(f.Buy.CommissionRate), f.MinCommission)
	return commission.Add(amount.Mul(f.Buy.TransferFeeRate))
}

// SellTax returns the total sell-side cost for shares at price:
// floored commission + stamp duty + transfer fee.
func (f FeeSchedule) SellTax(price decimal.Decimal, shares int64) decimal.Decimal {
	amount := price.Mul(decimal.NewFromInt(shares))
	commission := decimal.Max(amount.Mul(f.Sell.CommissionRate), f.MinCommission)
	stamp := amount.Mul(f.Sell.StampDutyRate)
	return commission.Add(stamp).Add(amount.Mul(f.Sell.TransferFeeRate))
}
