package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioAnalyzer/internal/model"
)

func sampleAnalysis(created time.Time, loss float64) *model.Analysis {
	return &model.Analysis{
		CreatedAt: created,
		Holdings:  []model.Holding{{Symbol: "AAPL"}, {Symbol: "MSFT"}},
		Stats:     model.PortfolioStats{TotalValue: 2000, TotalCost: 1500, TotalProfitLoss: 500},
		StressResults: []model.StressResult{
			{Scenario: "Market Crash", PotentialLoss: loss, RiskScore: 80,
				ImpactedStocks: []model.StockImpact{{Symbol: "AAPL", PotentialValue: 900, PercentageChange: -30}}},
			{Scenario: "High Inflation", PotentialLoss: loss / 3, RiskScore: 20},
		},
		Suggestions: []model.Suggestion{{Type: model.SuggestionDiversification, Title: "Increase Diversification", Impact: model.ImpactMedium}},
	}
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"), zerolog.Nop())
	require.NoError(t, err)
	defer r.Close()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := sampleAnalysis(base, 600)
	second := sampleAnalysis(base.Add(time.Hour), 900)
	require.NoError(t, r.RecordAnalysis(first))
	require.NoError(t, r.RecordAnalysis(second))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	runs, err := r.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, 2, runs[0].Holdings)
	assert.Equal(t, 2000.0, runs[0].TotalValue)
	assert.Equal(t, 80.0, runs[0].MaxRiskScore)
	assert.Equal(t, "Market Crash", runs[0].WorstScenario)
	assert.Equal(t, 1, runs[0].Suggestions)
	assert.True(t, runs[0].CreatedAt.Equal(base.Add(time.Hour)))

	limited, err := r.RecentRuns(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteRecorder_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	r, err := NewSQLiteRecorder(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, r.RecordAnalysis(sampleAnalysis(time.Now(), 10)))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path, zerolog.Nop())
	require.NoError(t, err)
	defer r.Close()
	runs, err := r.RecentRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
