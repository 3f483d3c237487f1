package recorder

import (
	"time"

	"PortfolioAnalyzer/internal/model"
)

// RunSummary is one row of the analysis history.
type RunSummary struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Holdings        int       `json:"holdings"`
	TotalValue      float64   `json:"total_value"`
	TotalProfitLoss float64   `json:"total_profit_loss"`
	MaxRiskScore    float64   `json:"max_risk_score"`
	WorstScenario   string    `json:"worst_scenario"`
	Suggestions     int       `json:"suggestions"`
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	// RecentRuns returns the newest runs first.
	RecentRuns(limit int) ([]RunSummary, error)
	Close() error
}
