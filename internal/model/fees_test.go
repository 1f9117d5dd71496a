package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuyTaxAboveFloor(t *testing.T) {
	fees := DefaultFeeSchedule()

	// 9900 shares at 10.00: amount 99000, commission 29.70, transfer 1.98.
	tax := fees.BuyTax(decimal.NewFromInt(10), 9900)
	assert.Equal(t, "31.68", tax.StringFixed(2))
}

func TestBuyTaxMinCommissionFloor(t *testing.T) {
	fees := DefaultFeeSchedule()

	// 100 shares at 10.00: amount 1000, commission 0.30 floors to 5.00.
	tax := fees.BuyTax(decimal.NewFromInt(10), 100)
	assert.Equal(t, "5.02", tax.StringFixed(2))
}

func TestSellTax(t *testing.T) {
	fees := DefaultFeeSchedule()

	// 1000 shares at 10.00: amount 10000, commission 3.00 floors to 5.00,
	// stamp duty 10.00, transfer 0.20.
	tax := fees.SellTax(decimal.NewFromInt(10), 1000)
	assert.Equal(t, "15.20", tax.StringFixed(2))
}

func TestSellTaxAboveFloor(t *testing.T) {
	fees := DefaultFeeSchedule()

	// 9900 shares at 12.00: amount 118800, commission 35.64, stamp 118.80,
	// transfer 2.376.
	tax := fees.SellTax(decimal.NewFromInt(12), 9900)
	assert.Equal(t, "156.82", tax.StringFixed(2))
}

func TestFeeScheduleValidate(t *testing.T) {
	fees := DefaultFeeSchedule()
	assert.NoError(t, fees.Validate())

	fees.Sell.StampDutyRate = decimal.NewFromFloat(-0.001)
	assert.Error(t, fees.Validate())
}
