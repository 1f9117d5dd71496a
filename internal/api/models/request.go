package models

import "stock-backtest/internal/model"

// BacktestRequest represents the request body for running a backtest.
type BacktestRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Config     BacktestConfig   `json:"config" binding:"required"`
	Options    BacktestOptions  `json:"options,omitempty"`
}

// DataSourceConfig defines where the bar series comes from.
type DataSourceConfig struct {
	Type string `json:"type" binding:"required"` // "file", "inline", "mock", "remote"

	// file
	Path string `json:"path,omitempty"`

	// inline
	Bars model.PriceSeries `json:"bars,omitempty"`

	// mock
	Mock *MockConfig `json:"mock,omitempty"`

	// remote
	BaseURL   string `json:"base_url,omitempty"`
	Symbol    string `json:"symbol,omitempty"`
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

// MockConfig parameterizes the synthetic series generator.
type MockConfig struct {
	Bars       int     `json:"bars"`
	StartPrice float64 `json:"start_price,omitempty"`
	Drift      float64 `json:"drift,omitempty"`
	Volatility float64 `json:"volatility,omitempty"`
	Seed       int64   `json:"seed,omitempty"`
}

// BacktestConfig contains cash, fee, and strategy configuration.
type BacktestConfig struct {
	InitialCash float64        `json:"initial_cash,omitempty"`
	Fees        *FeeConfig     `json:"fees,omitempty"`
	Strategy    StrategyConfig `json:"strategy" binding:"required"`
}

// FeeConfig mirrors the YAML fee schedule.
type FeeConfig struct {
	Buy           BuyFeeConfig  `json:"buy"`
	Sell          SellFeeConfig `json:"sell"`
	MinCommission float64       `json:"min_commission"`
}

type BuyFeeConfig struct {
	CommissionRate  float64 `json:"commission_rate"`
	TransferFeeRate float64 `json:"transfer_fee_rate"`
}

type SellFeeConfig struct {
	CommissionRate  float64 `json:"commission_rate"`
	StampDutyRate   float64 `json:"stamp_duty_rate"`
	TransferFeeRate float64 `json:"transfer_fee_rate"`
}

// StrategyConfig defines a strategy and its parameters.
type StrategyConfig struct {
	Name   string         `json:"name" binding:"required"`
	Params map[string]any `json:"params,omitempty"`
}

// BacktestOptions contains optional backtest parameters.
type BacktestOptions struct {
	LimitBars     int  `json:"limit_bars,omitempty"`     // 0 = all
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// CompareBacktestRequest runs several strategy variations over one series.
type CompareBacktestRequest struct {
	DataSource DataSourceConfig    `json:"data_source" binding:"required"`
	BaseConfig BacktestConfig      `json:"base_config" binding:"required"`
	Variations []BacktestVariation `json:"variations" binding:"required"`
}

// BacktestVariation defines one variation to test.
type BacktestVariation struct {
	Name     string         `json:"name" binding:"required"`
	Strategy StrategyConfig `json:"strategy" binding:"required"`
}
