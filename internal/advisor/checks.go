package advisor

import (
	"fmt"
	"math"

	"PortfolioAnalyzer/internal/model"
)

// Thresholds for the individual checks.
const (
	ConcentrationThreshold = 0.25 // share of total portfolio value
	SensitivityThreshold   = 25.0 // absolute percentage change under the first scenario
	MinHoldings            = 5
)

// checkConcentration flags holdings above ConcentrationThreshold of total value.
func checkConcentration(holdings []model.Holding) (model.Suggestion, bool) {
	total := 0.0
	for _, h := range holdings {
		total += h.TotalValue
	}
	if total == 0 {
		return model.Suggestion{}, false
	}

	var actions []string
	for _, h := range holdings {
		if h.TotalValue/total > ConcentrationThreshold {
			actions = append(actions,
				fmt.Sprintf("Consider reducing position in %s to below 25%% of portfolio value", h.Symbol))
		}
	}
	if len(actions) == 0 {
		return model.Suggestion{}, false
	}
	return model.Suggestion{
		Type:        model.SuggestionDiversification,
		Title:       "Reduce Portfolio Concentration",
		Description: "Some positions represent a large portion of your portfolio, increasing risk.",
		Impact:      model.ImpactHigh,
		Actions:     actions,
	}, true
}

// checkStressSensitivity flags holdings whose change under the first scenario
// exceeds SensitivityThreshold. Later scenarios are not consulted.
func checkStressSensitivity(holdings []model.Holding, results []model.StressResult) (model.Suggestion, bool) {
	if len(results) == 0 {
		return model.Suggestion{}, false
	}
	first := results[0]

	var actions []string
	for _, h := range holdings {
		impact, ok := first.Impact(h.Symbol)
		if ok && math.Abs(impact.PercentageChange) > SensitivityThreshold {
			actions = append(actions, fmt.Sprintf("Consider hedging or reducing position in %s", h.Symbol))
		}
	}
	if len(actions) == 0 {
		return model.Suggestion{}, false
	}
	return model.Suggestion{
		Type:        model.SuggestionRiskReduction,
		Title:       "Reduce High-Risk Exposure",
		Description: "Some positions show high sensitivity to market stress scenarios.",
		Impact:      model.ImpactHigh,
		Actions:     actions,
	}, true
}

// checkHoldingCount recommends broader exposure for small portfolios. There is
// no sector data, so only the count is inspected.
func checkHoldingCount(holdings []model.Holding) (model.Suggestion, bool) {
	if len(holdings) >= MinHoldings {
		return model.Suggestion{}, false
	}
	return model.Suggestion{
		Type:        model.SuggestionDiversification,
		Title:       "Increase Sector Diversification",
		Description: "Portfolio may benefit from exposure to more sectors.",
		Impact:      model.ImpactMedium,
		Actions: []string{
			"Consider adding positions in different market sectors",
			"Look into ETFs for broader market exposure",
		},
	}, true
}
