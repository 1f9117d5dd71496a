package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stock-backtest/internal/api/handlers"
	"stock-backtest/internal/api/middleware"
	"stock-backtest/internal/data"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	// Remote quote responses are cached for 15 minutes; daily bars do not
	// change intraday often enough to justify refetching per request.
	cache := data.NewResponseCache(15 * time.Minute)

	backtestHandler := handlers.NewBacktestHandler(cache)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.POST("/backtest/compare", backtestHandler.CompareBacktests)
		api.GET("/strategies", strategyHandler.ListStrategies)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
