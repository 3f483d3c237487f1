package stress

import "PortfolioAnalyzer/internal/model"

// scenarios is the fixed shock table, in evaluation order.
var scenarios = [...]model.Scenario{
	{Name: "Market Crash", MarketChange: -0.30, VolatilityChange: 0.80, InterestRateChange: -0.01},
	{Name: "Economic Recession", MarketChange: -0.20, VolatilityChange: 0.50, InterestRateChange: -0.02},
	{Name: "High Inflation", MarketChange: -0.10, VolatilityChange: 0.30, InterestRateChange: 0.03},
}

// DefaultScenarios returns a copy of the fixed scenarios: Market Crash,
// Economic Recession, High Inflation.
func DefaultScenarios() []model.Scenario {
	out := make([]model.Scenario, len(scenarios))
	copy(out, scenarios[:])
	return out
}
