package strategy

import (
	"fmt"
	"math"

	"stock-backtest/internal/model"
)

// Momentum buys on a strong trailing return (momentum above Threshold) and
// exits the full position when momentum reverses below -Threshold.
type Momentum struct {
	Window    int
	Threshold float64
	BuyShares int64
}

func NewMomentum(window int, threshold float64, buyShares int64) *Momentum {
	if window <= 0 {
		window = 10
	}
	if threshold <= 0 {
		threshold = 0.05
	}
	if buyShares <= 0 {
		buyShares = 100
	}
	return &Momentum{Window: window, Threshold: threshold, BuyShares: buyShares}
}

func (s *Momentum) Name() string {
	return fmt.Sprintf("momentum(%d,%g)", s.Window, s.Threshold)
}

func (s *Momentum) GenerateSignals(series model.PriceSeries) []int64 {
	signals := make([]int64, len(series))
	closes := series.Closes()
	mom := trailingReturn(closes, s.Window)

	var position int64
	for i := s.Window + 1; i < len(series); i++ {
		switch {
		case mom[i] > s.Threshold && position == 0:
			signals[i] = s.BuyShares
			position += s.BuyShares
		case mom[i] < -s.Threshold && position > 0:
			signals[i] = -position
			position = 0
		}
	}
	return signals
}

// trailingReturn computes close[i]/close[i-window] - 1, NaN where either
// endpoint is missing or history is short.
func trailingReturn(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	for i := range out {
		if i < window || vals[i-window] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = vals[i]/vals[i-window] - 1
	}
	return out
}
