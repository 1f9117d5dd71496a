package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stock-backtest/internal/api/middleware"
	"stock-backtest/internal/api/models"
	"stock-backtest/internal/backtest"
	"stock-backtest/internal/config"
	"stock-backtest/internal/data"
	"stock-backtest/internal/model"
	"stock-backtest/internal/strategy"
)

// BacktestHandler handles backtest-related requests.
type BacktestHandler struct {
	cache *data.ResponseCache
}

// NewBacktestHandler creates a backtest handler. cache is shared by remote
// data-source fetches and may be nil.
func NewBacktestHandler(cache *data.ResponseCache) *BacktestHandler {
	return &BacktestHandler{cache: cache}
}

// RunBacktest handles POST /api/v1/backtest.
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	series, err := h.fetchSeries(req.DataSource)
	if err != nil {
		status := http.StatusBadRequest
		code := "DATA_FETCH_ERROR"
		if qe, ok := err.(*data.QuoteError); ok {
			code = qe.Code
			if qe.StatusCode == http.StatusTooManyRequests {
				status = http.StatusTooManyRequests
			}
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	if req.Options.LimitBars > 0 && req.Options.LimitBars < len(series) {
		series = series[:req.Options.LimitBars]
	}

	result, err := h.runOne(series, req.Config, req.Config.Strategy)
	if err != nil {
		middleware.BacktestsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "BACKTEST_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	middleware.BacktestsTotal.WithLabelValues("completed").Inc()

	resp := models.BacktestResponse{
		Status:   "completed",
		Strategy: result.Strategy,
		Summary:  toSummary(result.Summary),
		Messages: result.Messages,
	}
	if req.Options.IncludeLedger {
		resp.Ledger = toLedgerRows(result.Records)
	}
	c.JSON(http.StatusOK, resp)
}

// CompareBacktests handles POST /api/v1/backtest/compare. Every variation
// replays the same series against a fresh ledger.
func (h *BacktestHandler) CompareBacktests(c *gin.Context) {
	var req models.CompareBacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	series, err := h.fetchSeries(req.DataSource)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATA_FETCH_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		result, err := h.runOne(series, req.BaseConfig, variation.Strategy)
		if err != nil {
			// Skip invalid variations rather than failing the batch.
			continue
		}
		comparison = append(comparison, models.ComparisonResult{
			Name:    variation.Name,
			Summary: toSummary(result.Summary),
		})
	}

	c.JSON(http.StatusOK, models.CompareBacktestResponse{Comparison: comparison})
}

func (h *BacktestHandler) runOne(series model.PriceSeries, base models.BacktestConfig, stratCfg models.StrategyConfig) (*backtest.Result, error) {
	cfg := buildConfig(base)
	cfg.Strategy = config.StrategyConfig{Name: stratCfg.Name, Params: stratCfg.Params}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strat, err := strategy.Build(stratCfg.Name, stratCfg.Params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if len(series) > 0 {
		start = series[0].Date
	}
	ledger, err := backtest.NewLedger(cfg.InitialCashDecimal(), cfg.ToFeeSchedule(), start)
	if err != nil {
		return nil, err
	}
	return backtest.New().Run(series, ledger, strat)
}

func (h *BacktestHandler) fetchSeries(ds models.DataSourceConfig) (model.PriceSeries, error) {
	switch ds.Type {
	case "file":
		if ds.Path == "" {
			return nil, fmt.Errorf("path is required for file data source")
		}
		resp, err := data.LoadPriceSeriesJSON(ds.Path)
		if err != nil {
			return nil, err
		}
		return resp.Data, nil
	case "inline":
		if len(ds.Bars) == 0 {
			return nil, fmt.Errorf("bars are required for inline data source")
		}
		return ds.Bars, nil
	case "mock":
		if ds.Mock == nil || ds.Mock.Bars <= 0 {
			return nil, fmt.Errorf("mock.bars must be > 0 for mock data source")
		}
		gen := data.NewGenerator(ds.Mock.Seed)
		if ds.Mock.StartPrice > 0 {
			gen.StartPrice = ds.Mock.StartPrice
		}
		if ds.Mock.Drift != 0 {
			gen.Drift = ds.Mock.Drift
		}
		if ds.Mock.Volatility > 0 {
			gen.Volatility = ds.Mock.Volatility
		}
		return gen.Series(ds.Mock.Bars), nil
	case "remote":
		if ds.BaseURL == "" || ds.Symbol == "" {
			return nil, fmt.Errorf("base_url and symbol are required for remote data source")
		}
		start, err := time.Parse("2006-01-02", ds.StartDate)
		if err != nil {
			return nil, fmt.Errorf("start_date must be YYYY-MM-DD")
		}
		end, err := time.Parse("2006-01-02", ds.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end_date must be YYYY-MM-DD")
		}
		client := data.NewQuoteClient(ds.BaseURL, h.cache)
		resp, err := client.DailyBars(data.DailyBarsQuery{Symbol: ds.Symbol, Start: start, End: end})
		if err != nil {
			return nil, err
		}
		return resp.Data, nil
	default:
		return nil, fmt.Errorf("unsupported data source type: %s", ds.Type)
	}
}

// buildConfig merges request overrides onto the stock defaults.
func buildConfig(req models.BacktestConfig) *config.Config {
	cfg := config.Default()
	if req.InitialCash > 0 {
		cfg.InitialCash = req.InitialCash
	}
	if req.Fees != nil {
		cfg.Fees = config.FeeConfig{
			Buy: config.BuyFeeConfig{
				CommissionRate:  req.Fees.Buy.CommissionRate,
				TransferFeeRate: req.Fees.Buy.TransferFeeRate,
			},
			Sell: config.SellFeeConfig{
				CommissionRate:  req.Fees.Sell.CommissionRate,
				StampDutyRate:   req.Fees.Sell.StampDutyRate,
				TransferFeeRate: req.Fees.Sell.TransferFeeRate,
			},
			MinCommission: req.Fees.MinCommission,
		}
	}
	return cfg
}

func toSummary(s backtest.Summary) models.BacktestSummary {
	return models.BacktestSummary{
		InitialAssets:        money(s.InitialAssets),
		FinalAssets:          money(s.FinalAssets),
		ReturnPct:            money(s.ReturnPct),
		BuyCount:             s.BuyCount,
		SellCount:            s.SellCount,
		TotalTrades:          s.TotalTrades,
		TotalTax:             money(s.TotalTax),
		MaxTotalAssets:       money(s.MaxTotalAssets),
		MinTotalAssets:       money(s.MinTotalAssets),
		TotalBuyCost:         money(s.TotalBuyCost),
		TotalSellIncome:      money(s.TotalSellIncome),
		TotalBuyTax:          money(s.TotalBuyTax),
		TotalSellTax:         money(s.TotalSellTax),
		CumProfit:            money(s.CumProfit),
		ProfitRatio:          money(s.ProfitRatio),
		MaxSingleTradeProfit: money(s.MaxSingleTradeProfit),
		MaxSingleTradeLoss:   money(s.MaxSingleTradeLoss),
	}
}

func toLedgerRows(records []backtest.TransactionRecord) []models.LedgerRow {
	out := make([]models.LedgerRow, len(records))
	for i, r := range records {
		out[i] = models.LedgerRow{
			Index:         i,
			Date:          r.Date.Format("2006-01-02"),
			Action:        string(r.Action),
			Price:         money(r.Price),
			Shares:        r.Shares,
			CostOrIncome:  money(r.CostOrIncome),
			Tax:           money(r.Tax),
			NetAmount:     money(r.NetAmount),
			Cash:          money(r.Cash),
			Position:      r.Position,
			MarketValue:   money(r.MarketValue),
			TotalAssets:   money(r.TotalAssets),
			CumInvestment: money(r.CumInvestment),
			CumProfit:     money(r.CumProfit),
			ProfitRatio:   money(r.ProfitRatio),
		}
	}
	return out
}

func money(d decimal.Decimal) string {
	return d.StringFixed(4)
}
