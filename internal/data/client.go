package data

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"stock-backtest/internal/model"
)

// QuoteClient fetches daily bars from a quote API serving
// GET /v1/daily/{symbol}?start=YYYY-MM-DD&end=YYYY-MM-DD as a
// PriceSeriesResponse JSON body.
type QuoteClient struct {
	BaseURL string
	Client  *http.Client
	cache   *ResponseCache
}

// NewQuoteClient creates a quote client. cache may be nil to disable
// response caching.
func NewQuoteClient(baseURL string, cache *ResponseCache) *QuoteClient {
	return &QuoteClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache,
	}
}

// DailyBarsQuery defines parameters for fetching a symbol's daily bars.
type DailyBarsQuery struct {
	Symbol string
	Start  time.Time
	End    time.Time
}

// QuoteError represents an error response from the quote API.
type QuoteError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *QuoteError) Error() string {
	return e.Message
}

// DailyBars fetches one symbol's bars for a date range, consulting the
// cache first when one is configured.
func (c *QuoteClient) DailyBars(q DailyBarsQuery) (*model.PriceSeriesResponse, error) {
	if q.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if q.Start.IsZero() || q.End.IsZero() {
		return nil, fmt.Errorf("start and end are required")
	}
	if q.Start.After(q.End) {
		return nil, fmt.Errorf("start must be before end")
	}

	key := CacheKey(q)
	if cached, found := c.cache.Get(key); found {
		log.Debug().
			Str("symbol", q.Symbol).
			Int("bars", len(cached.Data)).
			Msg("quote cache hit")
		return cached, nil
	}

	u, err := url.Parse(fmt.Sprintf("%s/v1/daily/%s", c.BaseURL, url.PathEscape(q.Symbol)))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	qs := u.Query()
	qs.Set("start", q.Start.Format("2006-01-02"))
	qs.Set("end", q.End.Format("2006-01-02"))
	u.RawQuery = qs.Encode()

	log.Debug().
		Str("symbol", q.Symbol).
		Str("start", q.Start.Format("2006-01-02")).
		Str("end", q.End.Format("2006-01-02")).
		Msg("quote request")

	httpResp, err := c.Client.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read quote response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		qe := &QuoteError{
			StatusCode: httpResp.StatusCode,
			Code:       "QUOTE_API_ERROR",
			Message:    fmt.Sprintf("quote API returned status %d", httpResp.StatusCode),
		}
		// Error bodies use the same {code,message} envelope as our own API.
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
			qe.Code = envelope.Error.Code
			qe.Message = envelope.Error.Message
		}
		return nil, qe
	}

	var resp model.PriceSeriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse quote response: %w", err)
	}
	SortByDate(resp.Data)

	c.cache.Set(key, &resp)
	return &resp, nil
}
