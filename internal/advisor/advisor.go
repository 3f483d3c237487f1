// Package advisor turns holdings and stress results into optimization suggestions.
package advisor

import "PortfolioAnalyzer/internal/model"

// Suggest runs the concentration, stress sensitivity and holding count checks
// in that order. Checks are independent; each contributes at most one suggestion.
func Suggest(holdings []model.Holding, results []model.StressResult) []model.Suggestion {
	suggestions := make([]model.Suggestion, 0, 3)
	if s, ok := checkConcentration(holdings); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := checkStressSensitivity(holdings, results); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := checkHoldingCount(holdings); ok {
		suggestions = append(suggestions, s)
	}
	return suggestions
}
