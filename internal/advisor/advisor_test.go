package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioAnalyzer/internal/model"
	"PortfolioAnalyzer/internal/stress"
)

func valued(symbol string, value float64) model.Holding {
	return model.Holding{Symbol: symbol, Quantity: 1, PurchasePrice: value, CurrentPrice: value, TotalValue: value}
}

func findTitle(suggestions []model.Suggestion, title string) (model.Suggestion, bool) {
	for _, s := range suggestions {
		if s.Title == title {
			return s, true
		}
	}
	return model.Suggestion{}, false
}

func TestConcentration_ThresholdIsStrict(t *testing.T) {
	// 50% each exceeds 25%, so an equal two-holding portfolio triggers.
	holdings := []model.Holding{valued("AAA", 500), valued("BBB", 500)}
	s, ok := checkConcentration(holdings)
	assert.True(t, ok)
	assert.Len(t, s.Actions, 2)

	// Four equal quarters sit exactly at the threshold and do not trigger.
	quarters := []model.Holding{valued("A", 1), valued("B", 1), valued("C", 1), valued("D", 1)}
	_, ok = checkConcentration(quarters)
	assert.False(t, ok)
}

func TestConcentration_NamesOffendingSymbol(t *testing.T) {
	holdings := []model.Holding{
		valued("BIG", 30),
		valued("B", 14), valued("C", 14), valued("D", 14), valued("E", 14), valued("F", 14),
	}
	s, ok := checkConcentration(holdings)
	require.True(t, ok)
	assert.Equal(t, model.SuggestionDiversification, s.Type)
	assert.Equal(t, model.ImpactHigh, s.Impact)
	assert.Equal(t, []string{"Consider reducing position in BIG to below 25% of portfolio value"}, s.Actions)
}

func TestConcentration_ZeroTotalSkipped(t *testing.T) {
	holdings := []model.Holding{{Symbol: "A", Quantity: 1, PurchasePrice: 10}}
	_, ok := checkConcentration(holdings)
	assert.False(t, ok)
}

func TestStressSensitivity_FirstScenarioOnly(t *testing.T) {
	holdings := []model.Holding{valued("AAA", 100), valued("BBB", 100)}
	results := []model.StressResult{
		{Scenario: "first", ImpactedStocks: []model.StockImpact{
			{Symbol: "AAA", PercentageChange: -26},
			{Symbol: "BBB", PercentageChange: -25},
		}},
		{Scenario: "second", ImpactedStocks: []model.StockImpact{
			{Symbol: "BBB", PercentageChange: -90},
		}},
	}
	s, ok := checkStressSensitivity(holdings, results)
	require.True(t, ok)
	assert.Equal(t, model.SuggestionRiskReduction, s.Type)
	assert.Equal(t, []string{"Consider hedging or reducing position in AAA"}, s.Actions)

	_, ok = checkStressSensitivity(holdings, nil)
	assert.False(t, ok)
}

func TestHoldingCount(t *testing.T) {
	four := []model.Holding{valued("A", 1), valued("B", 1), valued("C", 1), valued("D", 1000)}
	s, ok := checkHoldingCount(four)
	require.True(t, ok)
	assert.Equal(t, model.ImpactMedium, s.Impact)
	assert.Len(t, s.Actions, 2)

	five := append(four, valued("E", 1))
	_, ok = checkHoldingCount(five)
	assert.False(t, ok)
}

func TestSuggest_EndToEnd(t *testing.T) {
	holdings := []model.Holding{
		{Symbol: "AAPL", Quantity: 10, PurchasePrice: 100},
		{Symbol: "MSFT", Quantity: 5, PurchasePrice: 200},
		{Symbol: "TSLA", Quantity: 2, PurchasePrice: 500},
	}
	holdings[0].Reprice(150)
	holdings[1].Reprice(180)
	holdings[2].Reprice(400)

	suggestions := Suggest(holdings, stress.Run(holdings, nil))
	require.Len(t, suggestions, 3)
	assert.Equal(t, "Reduce Portfolio Concentration", suggestions[0].Title)
	assert.Equal(t, "Reduce High-Risk Exposure", suggestions[1].Title)
	assert.Equal(t, "Increase Sector Diversification", suggestions[2].Title)

	// Values 1500/900/800 of 3200: TSLA sits at exactly 25% and is not flagged.
	require.Len(t, suggestions[0].Actions, 2)
	assert.Contains(t, suggestions[0].Actions[0], "AAPL")
	assert.Contains(t, suggestions[0].Actions[1], "MSFT")
	// Every holding drops 30% in the crash.
	assert.Len(t, suggestions[1].Actions, 3)

	_, ok := findTitle(suggestions, "Optimize Costs")
	assert.False(t, ok)
}

func TestSuggest_DiversifiedPortfolioIsQuiet(t *testing.T) {
	var holdings []model.Holding
	for _, sym := range []string{"A", "B", "C", "D", "E", "F"} {
		holdings = append(holdings, valued(sym, 100))
	}
	results := []model.StressResult{{ImpactedStocks: []model.StockImpact{{Symbol: "A", PercentageChange: -10}}}}
	assert.Empty(t, Suggest(holdings, results))
}
