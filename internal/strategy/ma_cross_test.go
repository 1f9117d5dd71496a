package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-backtest/internal/model"
)

func seriesFromCloses(closes ...float64) model.PriceSeries {
	series := make(model.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = model.PriceBar{
			Date:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Close: c,
		}
	}
	return series
}

func TestMACrossGoldenAndDeathCross(t *testing.T) {
	// Decline into a rebound triggers a golden cross; the later slide
	// triggers the death cross exit.
	series := seriesFromCloses(10, 9, 8, 7, 6, 7, 9, 12, 8, 6)
	s := NewMACross(2, 3, 100)

	signals := s.GenerateSignals(series)
	require.Len(t, signals, len(series))

	assert.Equal(t, int64(100), signals[6])
	assert.Equal(t, int64(-100), signals[9])
	for i, sig := range signals {
		if i != 6 && i != 9 {
			assert.Zero(t, sig, "unexpected signal at bar %d", i)
		}
	}
}

func TestMACrossSellMatchesAccumulatedPosition(t *testing.T) {
	series := seriesFromCloses(10, 9, 8, 7, 6, 7, 9, 12, 8, 6)
	s := NewMACross(2, 3, 300)

	signals := s.GenerateSignals(series)
	assert.Equal(t, int64(300), signals[6])
	assert.Equal(t, int64(-300), signals[9])
}

func TestMACrossMonotonicSeriesNeverSignals(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 10 + float64(i)*0.1
	}
	s := NewMACross(5, 20, 100)

	signals := s.GenerateSignals(seriesFromCloses(closes...))
	for i, sig := range signals {
		assert.Zero(t, sig, "bar %d", i)
	}
}

func TestMACrossWarmupStaysZero(t *testing.T) {
	series := seriesFromCloses(10, 9, 8, 7, 6, 7, 9, 12)
	s := NewMACross(2, 5, 100)

	signals := s.GenerateSignals(series)
	for i := 0; i < s.LongWindow; i++ {
		assert.Zero(t, signals[i])
	}
}

func TestMACrossMissingCloseSuppressesSignals(t *testing.T) {
	// A NaN close poisons every window containing it; no signal may fire
	// off missing data.
	series := seriesFromCloses(10, 9, 8, math.NaN(), 6, 7, 9, 12)
	s := NewMACross(2, 3, 100)

	signals := s.GenerateSignals(series)
	for i := 3; i <= 5; i++ {
		assert.Zero(t, signals[i], "bar %d window contains NaN", i)
	}
}

func TestMACrossDefaults(t *testing.T) {
	s := NewMACross(0, 0, 0)
	assert.Equal(t, 5, s.ShortWindow)
	assert.Equal(t, 20, s.LongWindow)
	assert.Equal(t, int64(100), s.BuyShares)
	assert.Equal(t, "ma-cross(5,20)", s.Name())
}
