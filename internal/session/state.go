// Package session holds the single piece of analysis state shared by the
// API, the CLI and the scheduler.
package session

import "PortfolioAnalyzer/internal/model"

// State is everything the presentation layer reads.
type State struct {
	Holdings      []model.Holding      `json:"holdings"`
	Stats         model.PortfolioStats `json:"stats"`
	Selected      string               `json:"selected,omitempty"`
	Series        *model.PriceSeries   `json:"series,omitempty"`
	Profile       *model.RiskProfile   `json:"profile,omitempty"`
	StressResults []model.StressResult `json:"stress_results"`
	Suggestions   []model.Suggestion   `json:"suggestions"`
	Loading       bool                 `json:"loading"`
	Error         string               `json:"error,omitempty"`
}

// Clone returns a deep enough copy that callers may not alias Manager state.
func (s State) Clone() State {
	out := s
	out.Holdings = append([]model.Holding(nil), s.Holdings...)
	out.StressResults = append([]model.StressResult(nil), s.StressResults...)
	out.Suggestions = append([]model.Suggestion(nil), s.Suggestions...)
	if s.Series != nil {
		series := *s.Series
		series.Points = append([]model.PricePoint(nil), s.Series.Points...)
		out.Series = &series
	}
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	return out
}
