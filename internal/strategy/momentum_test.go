package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMomentumBuysAndExits(t *testing.T) {
	// 11/10-1 = +10% clears the threshold at bar 3; 9/11-1 = -18% reverses
	// at bar 6.
	series := seriesFromCloses(10, 10, 10, 11, 11, 11, 9, 9)
	s := NewMomentum(2, 0.05, 100)

	signals := s.GenerateSignals(series)
	require.Len(t, signals, len(series))

	assert.Equal(t, int64(100), signals[3])
	assert.Equal(t, int64(-100), signals[6])
	for i, sig := range signals {
		if i != 3 && i != 6 {
			assert.Zero(t, sig, "unexpected signal at bar %d", i)
		}
	}
}

func TestMomentumHoldsThroughNoise(t *testing.T) {
	// Moves inside +/- threshold never trigger.
	series := seriesFromCloses(10, 10.1, 10.2, 10.1, 10.0, 10.2, 10.1)
	s := NewMomentum(2, 0.05, 100)

	for i, sig := range s.GenerateSignals(series) {
		assert.Zero(t, sig, "bar %d", i)
	}
}

func TestMomentumNoRepeatedBuysWhileLong(t *testing.T) {
	// Momentum stays above the threshold for several bars; only the first
	// fires while flat.
	series := seriesFromCloses(10, 10, 11, 12.1, 13.3, 14.6)
	s := NewMomentum(2, 0.05, 100)

	signals := s.GenerateSignals(series)
	var buys int
	for _, sig := range signals {
		if sig > 0 {
			buys++
		}
	}
	assert.Equal(t, 1, buys)
}

func TestMomentumMissingCloseStaysFlat(t *testing.T) {
	series := seriesFromCloses(10, math.NaN(), 11, 12, math.NaN(), 13)
	s := NewMomentum(2, 0.05, 100)

	signals := s.GenerateSignals(series)
	assert.Zero(t, signals[3]) // 12/NaN is NaN, never a buy
}

func TestMomentumDefaults(t *testing.T) {
	s := NewMomentum(0, 0, 0)
	assert.Equal(t, 10, s.Window)
	assert.Equal(t, 0.05, s.Threshold)
	assert.Equal(t, int64(100), s.BuyShares)
	assert.Equal(t, "momentum(10,0.05)", s.Name())
}
