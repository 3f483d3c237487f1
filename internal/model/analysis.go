package model

import "time"

// RiskLevel buckets an annualized volatility.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskProfile is the detail view of one selected symbol.
type RiskProfile struct {
	Symbol     string    `json:"symbol"`
	Volatility float64   `json:"volatility"`
	Level      RiskLevel `json:"level"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	Last       float64   `json:"last"`
	Position   float64   `json:"position"` // last price within [low, high], 0.0~1.0
	Points     int       `json:"points"`
}

// Analysis is the full output of one upload run.
type Analysis struct {
	ID            string         `json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	Holdings      []Holding      `json:"holdings"`
	Stats         PortfolioStats `json:"stats"`
	StressResults []StressResult `json:"stress_results"`
	Suggestions   []Suggestion   `json:"suggestions"`
}
