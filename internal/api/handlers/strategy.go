package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-backtest/internal/api/models"
)

// StrategyHandler serves the strategy catalog.
type StrategyHandler struct{}

// NewStrategyHandler creates a strategy handler.
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": strategyCatalog()})
}

func strategyCatalog() []models.StrategyInfo {
	return []models.StrategyInfo{
		{
			Name:        "ma-cross",
			Description: "Moving-average crossover: buys on golden cross, sells on death cross.",
			Parameters: []models.ParameterInfo{
				{Name: "short_window", Type: "int", Default: 5, Description: "Short moving-average window in bars."},
				{Name: "long_window", Type: "int", Default: 20, Description: "Long moving-average window in bars; must exceed short_window."},
				{Name: "buy_shares", Type: "int", Default: 100, Description: "Shares requested per buy signal, in board-lot multiples."},
			},
		},
		{
			Name:        "momentum",
			Description: "Trailing-return momentum: buys above the threshold, sells below its negative.",
			Parameters: []models.ParameterInfo{
				{Name: "momentum_window", Type: "int", Default: 10, Description: "Lookback window in bars for the trailing return."},
				{Name: "threshold", Type: "float", Default: 0.05, Description: "Fractional return that triggers a signal."},
				{Name: "buy_shares", Type: "int", Default: 100, Description: "Shares requested per buy signal, in board-lot multiples."},
			},
		},
	}
}
