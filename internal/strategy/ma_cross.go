package strategy

import (
	"fmt"
	"math"

	"stock-backtest/internal/model"
)

// MACross emits a buy when the short moving average crosses above the long
// one (golden cross) and a full exit when it crosses back below (death
// cross). Bars before LongWindow have insufficient history and stay zero.
type MACross struct {
	ShortWindow int
	LongWindow  int
	BuyShares   int64
}

func NewMACross(short, long int, buyShares int64) *MACross {
	if short <= 0 {
		short = 5
	}
	if long <= 0 {
		long = 20
	}
	if buyShares <= 0 {
		buyShares = 100
	}
	return &MACross{ShortWindow: short, LongWindow: long, BuyShares: buyShares}
}

func (s *MACross) Name() string {
	return fmt.Sprintf("ma-cross(%d,%d)", s.ShortWindow, s.LongWindow)
}

func (s *MACross) GenerateSignals(series model.PriceSeries) []int64 {
	signals := make([]int64, len(series))
	closes := series.Closes()
	shortMA := rollingMean(closes, s.ShortWindow)
	longMA := rollingMean(closes, s.LongWindow)

	// position tracks emitted size only, to decide signal sign/magnitude.
	var position int64
	for i := s.LongWindow; i < len(series); i++ {
		// NaN comparisons are false, so bars with missing history stay zero.
		switch {
		case shortMA[i-1] <= longMA[i-1] && shortMA[i] > longMA[i] && position == 0:
			signals[i] = s.BuyShares
			position += s.BuyShares
		case shortMA[i-1] >= longMA[i-1] && shortMA[i] < longMA[i] && position > 0:
			signals[i] = -position
			position = 0
		}
	}
	return signals
}

// rollingMean is a simple trailing mean: NaN until a full window is
// available, and NaN wherever the window contains a missing value.
func rollingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	for i := range out {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += vals[j]
		}
		out[i] = sum / float64(window)
	}
	return out
}
