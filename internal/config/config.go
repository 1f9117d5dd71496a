package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"stock-backtest/internal/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	InitialCash float64        `yaml:"initial_cash"`
	Fees        FeeConfig      `yaml:"fees"`
	Strategy    StrategyConfig `yaml:"strategy"`
}

type FeeConfig struct {
	Buy           BuyFeeConfig  `yaml:"buy"`
	Sell          SellFeeConfig `yaml:"sell"`
	MinCommission float64       `yaml:"min_commission"`
}

type BuyFeeConfig struct {
	CommissionRate  float64 `yaml:"commission_rate"`
	TransferFeeRate float64 `yaml:"transfer_fee_rate"`
}

type SellFeeConfig struct {
	CommissionRate  float64 `yaml:"commission_rate"`
	StampDutyRate   float64 `yaml:"stamp_duty_rate"`
	TransferFeeRate float64 `yaml:"transfer_fee_rate"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

// Default returns the stock defaults: 100k initial cash, standard A-share
// fee rates, MA crossover with 5/20 windows.
func Default() *Config {
	c := &Config{
		InitialCash: 100000,
		Strategy: StrategyConfig{
			Name: "ma-cross",
			Params: map[string]any{
				"short_window": 5,
				"long_window":  20,
			},
		},
	}
	c.Fees = defaultFees()
	return c
}

func defaultFees() FeeConfig {
	return FeeConfig{
		Buy: BuyFeeConfig{
			CommissionRate:  0.0003,
			TransferFeeRate: 0.00002,
		},
		Sell: SellFeeConfig{
			CommissionRate:  0.0003,
			StampDutyRate:   0.001,
			TransferFeeRate: 0.00002,
		},
		MinCommission: 5.0,
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Unset blocks fall back to defaults. A fully zero fees block means
	// "not configured" rather than a genuinely free market.
	if c.InitialCash == 0 {
		c.InitialCash = 100000
	}
	if c.Fees == (FeeConfig{}) {
		c.Fees = defaultFees()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the config without defaulting or validating it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.InitialCash < 0 {
		return errors.New("initial_cash must be >= 0")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	if err := c.ToFeeSchedule().Validate(); err != nil {
		return fmt.Errorf("fee config invalid: %w", err)
	}
	return nil
}

// ToFeeSchedule converts the float config fields to the decimal schedule
// the ledger consumes.
func (c *Config) ToFeeSchedule() model.FeeSchedule {
	return model.FeeSchedule{
		Buy: model.BuyFees{
			CommissionRate:  decimal.NewFromFloat(c.Fees.Buy.CommissionRate),
			TransferFeeRate: decimal.NewFromFloat(c.Fees.Buy.TransferFeeRate),
		},
		Sell: model.SellFees{
			CommissionRate:  decimal.NewFromFloat(c.Fees.Sell.CommissionRate),
			StampDutyRate:   decimal.NewFromFloat(c.Fees.Sell.StampDutyRate),
			TransferFeeRate: decimal.NewFromFloat(c.Fees.Sell.TransferFeeRate),
		},
		MinCommission: decimal.NewFromFloat(c.Fees.MinCommission),
	}
}

// InitialCashDecimal returns initial_cash as a decimal money amount.
func (c *Config) InitialCashDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.InitialCash)
}
