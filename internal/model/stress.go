package model

// Scenario is a fixed macro shock profile.
type Scenario struct {
	Name               string  `json:"name"`
	MarketChange       float64 `json:"market_change"`
	VolatilityChange   float64 `json:"volatility_change"`
	InterestRateChange float64 `json:"interest_rate_change"`
}

// StockImpact is the projected effect of a scenario on one holding.
type StockImpact struct {
	Symbol           string  `json:"symbol"`
	PotentialValue   float64 `json:"potential_value"`
	PercentageChange float64 `json:"percentage_change"`
}

// StressResult is the outcome of one scenario over the whole portfolio.
type StressResult struct {
	Scenario       string        `json:"scenario"`
	PotentialLoss  float64       `json:"potential_loss"`
	RiskScore      float64       `json:"risk_score"`
	ImpactedStocks []StockImpact `json:"impacted_stocks"`
}

// Impact returns the impact recorded for symbol, if any.
func (r StressResult) Impact(symbol string) (StockImpact, bool) {
	for _, s := range r.ImpactedStocks {
		if s.Symbol == symbol {
			return s, true
		}
	}
	return StockImpact{}, false
}
