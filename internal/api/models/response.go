package models

// BacktestResponse represents the response from a backtest run.
type BacktestResponse struct {
	Status   string          `json:"status"`
	Strategy string          `json:"strategy"`
	Summary  BacktestSummary `json:"summary"`
	Messages []string        `json:"messages,omitempty"`
	Ledger   []LedgerRow     `json:"ledger,omitempty"`
}

// BacktestSummary contains the aggregated report. Money values are decimal
// strings to survive JSON round-trips without float drift.
type BacktestSummary struct {
	InitialAssets string `json:"initial_assets"`
	FinalAssets   string `json:"final_assets"`
	ReturnPct     string `json:"return_pct"`

	BuyCount    int `json:"buy_count"`
	SellCount   int `json:"sell_count"`
	TotalTrades int `json:"total_trades"`

	TotalTax       string `json:"total_tax"`
	MaxTotalAssets string `json:"max_total_assets"`
	MinTotalAssets string `json:"min_total_assets"`

	TotalBuyCost    string `json:"total_buy_cost"`
	TotalSellIncome string `json:"total_sell_income"`
	TotalBuyTax     string `json:"total_buy_tax"`
	TotalSellTax    string `json:"total_sell_tax"`

	CumProfit   string `json:"cum_profit"`
	ProfitRatio string `json:"profit_ratio_pct"`

	MaxSingleTradeProfit string `json:"max_single_trade_profit"`
	MaxSingleTradeLoss   string `json:"max_single_trade_loss"`
}

// LedgerRow represents one transaction record in the response.
type LedgerRow struct {
	Index         int    `json:"index"`
	Date          string `json:"date"`
	Action        string `json:"action"` // "INIT", "BUY", "SELL", "HOLD"
	Price         string `json:"price"`
	Shares        int64  `json:"shares"`
	CostOrIncome  string `json:"cost_or_income"`
	Tax           string `json:"tax"`
	NetAmount     string `json:"net_amount"`
	Cash          string `json:"cash"`
	Position      int64  `json:"position"`
	MarketValue   string `json:"market_value"`
	TotalAssets   string `json:"total_assets"`
	CumInvestment string `json:"cum_investment"`
	CumProfit     string `json:"cum_profit"`
	ProfitRatio   string `json:"profit_ratio_pct"`
}

// CompareBacktestResponse represents the response from a comparison.
type CompareBacktestResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation.
type ComparisonResult struct {
	Name    string          `json:"name"`
	Summary BacktestSummary `json:"summary"`
}

// StrategyInfo describes a built-in strategy.
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter.
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "float", "int"
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
