package data

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"stock-backtest/internal/model"
)

// LoadPriceSeriesJSON reads an exported daily-bar file from disk.
func LoadPriceSeriesJSON(path string) (*model.PriceSeriesResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.PriceSeriesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &resp, nil
}

// SortByDate orders the series ascending by bar date, in place. Loaded
// files are normally already ordered; this guards against hand-edited ones.
func SortByDate(series model.PriceSeries) {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
}
