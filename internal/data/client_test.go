package data

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsBody() string {
	return `{
  "symbol": "600519",
  "data": [
    {"date":"2024-03-04T00:00:00Z","open":10.2,"high":10.3,"low":9.8,"close":10.1,"volume":80000},
    {"date":"2024-03-01T00:00:00Z","open":10.0,"high":10.4,"low":9.9,"close":10.2,"volume":100000}
  ]
}`
}

func TestDailyBarsFetchAndSort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/daily/600519", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("start"))
		assert.Equal(t, "2024-03-31", r.URL.Query().Get("end"))
		w.Write([]byte(barsBody()))
	}))
	defer srv.Close()

	client := NewQuoteClient(srv.URL, nil)
	resp, err := client.DailyBars(DailyBarsQuery{
		Symbol: "600519",
		Start:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Data, 2)
	// Out-of-order bodies come back sorted ascending.
	assert.True(t, resp.Data[0].Date.Before(resp.Data[1].Date))
}

func TestDailyBarsUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(barsBody()))
	}))
	defer srv.Close()

	client := NewQuoteClient(srv.URL, NewResponseCache(time.Minute))
	q := DailyBarsQuery{
		Symbol: "600519",
		Start:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	_, err := client.DailyBars(q)
	require.NoError(t, err)
	_, err = client.DailyBars(q)
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
}

func TestDailyBarsErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"SYMBOL_NOT_FOUND","message":"unknown symbol"}}`))
	}))
	defer srv.Close()

	client := NewQuoteClient(srv.URL, nil)
	_, err := client.DailyBars(DailyBarsQuery{
		Symbol: "nope",
		Start:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	})

	var qe *QuoteError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, http.StatusNotFound, qe.StatusCode)
	assert.Equal(t, "SYMBOL_NOT_FOUND", qe.Code)
	assert.Equal(t, "unknown symbol", qe.Message)
}

func TestDailyBarsValidatesQuery(t *testing.T) {
	client := NewQuoteClient("http://localhost:0", nil)

	_, err := client.DailyBars(DailyBarsQuery{})
	assert.Error(t, err)

	_, err = client.DailyBars(DailyBarsQuery{
		Symbol: "600519",
		Start:  time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start must be before end")
}
