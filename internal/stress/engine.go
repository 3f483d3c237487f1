// Package stress projects holdings through fixed macro shock scenarios.
package stress

import (
	"math"

	"PortfolioAnalyzer/internal/calculator"
	"PortfolioAnalyzer/internal/model"
)

// MaxRiskScore caps the scenario risk score.
const MaxRiskScore = 100

// Sensitivity is the per-holding input derived from its price history.
type Sensitivity struct {
	Volatility float64
	Beta       float64
}

// Measure derives the sensitivity of one holding from its ascending closes.
// An empty or single-point history yields beta 1 and volatility 0.
func Measure(prices []float64) Sensitivity {
	return Sensitivity{
		Volatility: calculator.PopulationVolatility(prices),
		Beta:       calculator.HeuristicBeta(prices),
	}
}

// Run applies DefaultScenarios to the holdings. history maps a symbol to its
// ascending closes; a missing symbol is treated as an empty series.
func Run(holdings []model.Holding, history map[string][]float64) []model.StressResult {
	return RunScenarios(DefaultScenarios(), holdings, history)
}

// RunScenarios returns one result per scenario, in the given order.
func RunScenarios(scenarios []model.Scenario, holdings []model.Holding, history map[string][]float64) []model.StressResult {
	sens := make([]Sensitivity, len(holdings))
	for i, h := range holdings {
		sens[i] = Measure(history[h.Symbol])
	}

	results := make([]model.StressResult, 0, len(scenarios))
	for _, sc := range scenarios {
		impacts := make([]model.StockImpact, len(holdings))
		for i, h := range holdings {
			impacts[i] = project(sc, h.Symbol, h.CurrentPrice, sens[i].Beta)
		}
		loss := PotentialLoss(impacts)
		results = append(results, model.StressResult{
			Scenario:       sc.Name,
			PotentialLoss:  loss,
			RiskScore:      RiskScore(loss, sc.VolatilityChange),
			ImpactedStocks: impacts,
		})
	}
	return results
}

// project computes one holding's value under a scenario. A zero current price
// falls back to 1 as the percentage denominator.
func project(sc model.Scenario, symbol string, price, beta float64) model.StockImpact {
	multiplier := 1 + sc.MarketChange*beta
	potential := price * multiplier
	denom := price
	if denom == 0 {
		denom = 1
	}
	return model.StockImpact{
		Symbol:           symbol,
		PotentialValue:   potential,
		PercentageChange: (potential - price) / denom * 100,
	}
}

// PotentialLoss sums the absolute percentage changes of the holdings that
// lose value. Gains do not offset losses.
func PotentialLoss(impacts []model.StockImpact) float64 {
	total := 0.0
	for _, s := range impacts {
		if s.PercentageChange < 0 {
			total += math.Abs(s.PercentageChange)
		}
	}
	return total
}

// RiskScore blends the aggregate loss with the scenario volatility shift,
// rounded half up to two decimals and capped at MaxRiskScore.
func RiskScore(potentialLoss, volatilityChange float64) float64 {
	raw := potentialLoss * (1 + volatilityChange)
	rounded := math.Floor(raw*100+0.5) / 100
	return math.Min(MaxRiskScore, rounded)
}
