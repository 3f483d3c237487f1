package session

import "PortfolioAnalyzer/internal/model"

// Action is a state transition. Reduce applies it.
type Action interface {
	apply(State) State
}

// UploadStarted marks an upload in flight and clears the previous error.
type UploadStarted struct{}

// HoldingsPriced replaces the holdings with their repriced versions.
type HoldingsPriced struct {
	Holdings []model.Holding
}

// AnalysisCompleted stores the stress results and suggestions of an upload.
type AnalysisCompleted struct {
	StressResults []model.StressResult
	Suggestions   []model.Suggestion
}

// UploadFailed ends an upload with a user-facing message. Data already
// applied by HoldingsPriced is kept.
type UploadFailed struct {
	Message string
}

// SymbolSelected starts loading the history of one symbol.
type SymbolSelected struct {
	Symbol string
}

// HistoryLoaded stores the selected symbol's series and profile.
type HistoryLoaded struct {
	Series  model.PriceSeries
	Profile model.RiskProfile
}

// SelectFailed ends a selection with a user-facing message.
type SelectFailed struct {
	Message string
}

// Reduce returns the state after action. s is not modified.
func Reduce(s State, action Action) State {
	return action.apply(s.Clone())
}

func (UploadStarted) apply(s State) State {
	s.Loading = true
	s.Error = ""
	return s
}

func (a HoldingsPriced) apply(s State) State {
	s.Holdings = append([]model.Holding(nil), a.Holdings...)
	s.Stats = model.ComputeStats(s.Holdings)
	return s
}

func (a AnalysisCompleted) apply(s State) State {
	s.StressResults = a.StressResults
	s.Suggestions = a.Suggestions
	s.Loading = false
	return s
}

func (a UploadFailed) apply(s State) State {
	s.Loading = false
	s.Error = a.Message
	return s
}

func (a SymbolSelected) apply(s State) State {
	s.Selected = a.Symbol
	s.Series = nil
	s.Profile = nil
	s.Loading = true
	s.Error = ""
	return s
}

func (a HistoryLoaded) apply(s State) State {
	series := a.Series
	profile := a.Profile
	s.Series = &series
	s.Profile = &profile
	s.Loading = false
	return s
}

func (a SelectFailed) apply(s State) State {
	s.Loading = false
	s.Error = a.Message
	return s
}
