package model

// SuggestionType categorizes an optimization suggestion.
type SuggestionType string

const (
	SuggestionDiversification SuggestionType = "DIVERSIFICATION"
	SuggestionRebalancing     SuggestionType = "REBALANCING"
	SuggestionRiskReduction   SuggestionType = "RISK_REDUCTION"
	SuggestionCostEfficiency  SuggestionType = "COST_EFFICIENCY"
)

// ImpactLevel ranks how much a suggestion matters.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "HIGH"
	ImpactMedium ImpactLevel = "MEDIUM"
	ImpactLow    ImpactLevel = "LOW"
)

// Suggestion is a qualitative recommendation derived from holdings and stress results.
type Suggestion struct {
	Type        SuggestionType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Impact      ImpactLevel    `json:"impact"`
	Actions     []string       `json:"actions"`
}
