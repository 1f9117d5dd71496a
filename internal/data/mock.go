package data

import (
	"math"
	"math/rand"
	"time"

	"stock-backtest/internal/model"
)

// Generator produces synthetic random-walk daily bars for demos and tests.
// Runs with the same Seed are identical.
type Generator struct {
	Start      time.Time
	StartPrice float64
	Drift      float64 // expected per-bar return
	Volatility float64 // stddev of per-bar return
	Seed       int64
}

// NewGenerator returns a generator with conservative defaults: price 10.00,
// mild positive drift, 2% daily volatility.
func NewGenerator(seed int64) Generator {
	return Generator{
		Start:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		StartPrice: 10.0,
		Drift:      0.0005,
		Volatility: 0.02,
		Seed:       seed,
	}
}

// Series generates n bars. Weekends are skipped so dates resemble a real
// trading calendar.
func (g Generator) Series(n int) model.PriceSeries {
	rng := rand.New(rand.NewSource(g.Seed))
	series := make(model.PriceSeries, 0, n)

	date := g.Start
	prevClose := g.StartPrice
	for len(series) < n {
		for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			date = date.AddDate(0, 0, 1)
		}

		ret := g.Drift + g.Volatility*rng.NormFloat64()
		close := prevClose * (1 + ret)
		if close < 0.01 {
			close = 0.01
		}
		open := prevClose
		spread := math.Abs(close-open) + prevClose*g.Volatility*0.5*rng.Float64()
		series = append(series, model.PriceBar{
			Date:   date,
			Open:   round2(open),
			High:   round2(math.Max(open, close) + spread*rng.Float64()),
			Low:    round2(math.Max(0.01, math.Min(open, close)-spread*rng.Float64())),
			Close:  round2(close),
			Volume: 50000 + rng.Int63n(450000),
		})

		prevClose = close
		date = date.AddDate(0, 0, 1)
	}
	return series
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
