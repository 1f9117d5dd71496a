package data

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-backtest/internal/model"
)

func TestLoadPriceSeriesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.json")
	body := `{
  "symbol": "600519",
  "data": [
    {"date":"2024-03-01T00:00:00Z","open":10.0,"high":10.4,"low":9.9,"close":10.2,"volume":100000},
    {"date":"2024-03-04T00:00:00Z","open":10.2,"high":10.3,"low":9.8,"close":null,"volume":80000},
    {"date":"2024-03-05T00:00:00Z","open":10.1,"high":10.6,"low":10.0,"close":10.5,"volume":120000}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	resp, err := LoadPriceSeriesJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "600519", resp.Symbol)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, 10.2, resp.Data[0].Close)
	assert.True(t, math.IsNaN(resp.Data[1].Close))
	assert.Equal(t, 0, resp.Data.FirstValid())
}

func TestLoadPriceSeriesJSONMissingFile(t *testing.T) {
	_, err := LoadPriceSeriesJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadPriceSeriesJSONBadBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadPriceSeriesJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestSortByDate(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	series := model.PriceSeries{
		{Date: d(5), Close: 3},
		{Date: d(1), Close: 1},
		{Date: d(3), Close: 2},
	}

	SortByDate(series)

	assert.Equal(t, d(1), series[0].Date)
	assert.Equal(t, d(3), series[1].Date)
	assert.Equal(t, d(5), series[2].Date)
}
