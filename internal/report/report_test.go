package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioAnalyzer/internal/model"
	"PortfolioAnalyzer/internal/recorder"
	"PortfolioAnalyzer/internal/stress"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1,500.00", Money(1500))
	assert.Equal(t, "$0.13", Money(0.125))
	assert.Equal(t, "-$40.00", Money(-40))
}

func TestMarkdown(t *testing.T) {
	h := model.Holding{Symbol: "AAPL", Quantity: 10, PurchasePrice: 100}
	h.Reprice(150)
	a := &model.Analysis{
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Holdings:  []model.Holding{h},
		Stats:     model.ComputeStats([]model.Holding{h}),
		StressResults: []model.StressResult{{
			Scenario: "Market Crash", PotentialLoss: 30, RiskScore: 54,
			ImpactedStocks: []model.StockImpact{{Symbol: "AAPL", PotentialValue: 105, PercentageChange: -30}},
		}},
		Suggestions: []model.Suggestion{{
			Type: model.SuggestionDiversification, Title: "Increase Diversification",
			Impact: model.ImpactMedium, Actions: []string{"Consider adding more stocks"},
		}},
	}

	md := Markdown(a)
	assert.Contains(t, md, "_2024-05-01 09:30_")
	assert.Contains(t, md, "| AAPL | 10 | $100.00 | $150.00 | $1,500.00 | $500.00 | +50.00% |")
	assert.Contains(t, md, "| Market Crash | 30.00% | 54.00 |")
	assert.Contains(t, md, "| AAPL | $105.00 | -30.00% |")
	assert.Contains(t, md, "- Consider adding more stocks")
}

func TestScenariosAndHistory(t *testing.T) {
	md := Scenarios(stress.DefaultScenarios())
	assert.Contains(t, md, "| Market Crash | -30% | +80% | -1% |")
	assert.Contains(t, md, "| High Inflation | -10% | +30% | +3% |")

	assert.Contains(t, History(nil), "No recorded runs.")
	md = History([]recorder.RunSummary{{CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Holdings: 3, TotalValue: 10, WorstScenario: "Market Crash", MaxRiskScore: 100}})
	assert.Contains(t, md, "| 2024-05-01 00:00 | 3 | $10.00 | $0.00 | Market Crash | 100.00 | 0 |")
}

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nbody\n", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
