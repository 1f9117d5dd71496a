package model

import (
	"encoding/json"
	"math"
	"time"
)

// PriceSeriesResponse matches the JSON shape of exported daily-bar files.
//
// Example:
//
//	{
//	  "symbol": "600519",
//	  "data": [ ... ]
//	}
type PriceSeriesResponse struct {
	Symbol string     `json:"symbol"`
	Data   PriceSeries `json:"data"`
}

// PriceBar is one daily OHLCV row. The backtest core only reads Date and
// Close; the other columns exist for charting and indicator consumers.
// A NaN Close marks a missing price (null in JSON).
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// HasClose reports whether the bar carries a usable close price.
func (b PriceBar) HasClose() bool {
	return !math.IsNaN(b.Close)
}

// barJSON is the wire form; a null close decodes to NaN.
type barJSON struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  *float64  `json:"close"`
	Volume int64     `json:"volume"`
}

func (b *PriceBar) UnmarshalJSON(raw []byte) error {
	var w barJSON
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}
	b.Date = w.Date
	b.Open = w.Open
	b.High = w.High
	b.Low = w.Low
	b.Volume = w.Volume
	if w.Close == nil {
		b.Close = math.NaN()
	} else {
		b.Close = *w.Close
	}
	return nil
}

func (b PriceBar) MarshalJSON() ([]byte, error) {
	w := barJSON{
		Date:   b.Date,
		Open:   b.Open,
		High:   b.High,
		Low:    b.Low,
		Volume: b.Volume,
	}
	if b.HasClose() {
		c := b.Close
		w.Close = &c
	}
	return json.Marshal(w)
}

// PriceSeries is a sequence of bars, strictly ascending by date.
type PriceSeries []PriceBar

// FirstValid returns the index of the first bar with a non-missing close,
// or -1 if every close is missing.
func (s PriceSeries) FirstValid() int {
	for i, b := range s {
		if b.HasClose() {
			return i
		}
	}
	return -1
}

// Closes returns the close column, NaN where missing.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}
