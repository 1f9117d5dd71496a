package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
initial_cash: 50000
fees:
  buy:
    commission_rate: 0.0003
    transfer_fee_rate: 0.00002
  sell:
    commission_rate: 0.0003
    stamp_duty_rate: 0.001
    transfer_fee_rate: 0.00002
  min_commission: 5
strategy:
  name: momentum
  params:
    momentum_window: 15
    threshold: 0.08
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50000.0, cfg.InitialCash)
	assert.Equal(t, "momentum", cfg.Strategy.Name)
	assert.Equal(t, 0.08, cfg.Strategy.Params["threshold"])
	assert.Equal(t, 0.001, cfg.Fees.Sell.StampDutyRate)
}

func TestLoadDefaultsUnsetBlocks(t *testing.T) {
	path := writeConfig(t, `
strategy:
  name: ma-cross
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 100000.0, cfg.InitialCash)
	assert.Equal(t, defaultFees(), cfg.Fees)
}

func TestLoadRejectsMissingStrategyName(t *testing.T) {
	path := writeConfig(t, `
initial_cash: 100000
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy.name")
}

func TestLoadRejectsNegativeRates(t *testing.T) {
	path := writeConfig(t, `
strategy:
  name: ma-cross
fees:
  buy:
    commission_rate: -0.0003
  sell:
    commission_rate: 0.0003
  min_commission: 5
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadUncheckedSkipsValidation(t *testing.T) {
	path := writeConfig(t, `
initial_cash: 42
`)

	cfg, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, 42.0, cfg.InitialCash)
	assert.Empty(t, cfg.Strategy.Name)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ma-cross", cfg.Strategy.Name)
}

func TestToFeeSchedule(t *testing.T) {
	cfg := Default()
	fees := cfg.ToFeeSchedule()

	require.NoError(t, fees.Validate())
	assert.Equal(t, "0.0003", fees.Buy.CommissionRate.String())
	assert.Equal(t, "0.001", fees.Sell.StampDutyRate.String())
	assert.Equal(t, "5", fees.MinCommission.String())
	assert.Equal(t, "100000", cfg.InitialCashDecimal().String())
}
