package session

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioAnalyzer/internal/model"
)

func repriced(symbol string, qty, purchase, price float64) model.Holding {
	h := model.Holding{Symbol: symbol, Quantity: qty, PurchasePrice: purchase}
	h.Reprice(price)
	return h
}

func TestReduce_UploadLifecycle(t *testing.T) {
	var s State
	s = Reduce(s, UploadFailed{Message: "old"})
	s = Reduce(s, UploadStarted{})
	assert.True(t, s.Loading)
	assert.Empty(t, s.Error)

	s = Reduce(s, HoldingsPriced{Holdings: []model.Holding{repriced("AAPL", 10, 100, 150)}})
	assert.True(t, s.Loading)
	assert.Equal(t, 1500.0, s.Stats.TotalValue)
	assert.Equal(t, 500.0, s.Stats.TotalProfitLoss)

	s = Reduce(s, AnalysisCompleted{
		StressResults: []model.StressResult{{Scenario: "Market Crash"}},
		Suggestions:   []model.Suggestion{{Title: "x"}},
	})
	assert.False(t, s.Loading)
	assert.Len(t, s.StressResults, 1)
	assert.Len(t, s.Suggestions, 1)
}

func TestReduce_FailureKeepsPartialUpdate(t *testing.T) {
	var s State
	s = Reduce(s, AnalysisCompleted{StressResults: []model.StressResult{{Scenario: "previous"}}})
	s = Reduce(s, UploadStarted{})
	s = Reduce(s, HoldingsPriced{Holdings: []model.Holding{repriced("AAPL", 1, 100, 120)}})
	s = Reduce(s, UploadFailed{Message: "Failed to fetch stock data. Please check your API key and try again."})

	assert.False(t, s.Loading)
	assert.NotEmpty(t, s.Error)
	assert.Equal(t, 120.0, s.Holdings[0].CurrentPrice)
	assert.Equal(t, "previous", s.StressResults[0].Scenario)
}

func TestReduce_Selection(t *testing.T) {
	var s State
	s = Reduce(s, SymbolSelected{Symbol: "MSFT"})
	assert.Equal(t, "MSFT", s.Selected)
	assert.True(t, s.Loading)
	assert.Nil(t, s.Series)

	s = Reduce(s, HistoryLoaded{
		Series:  model.PriceSeries{Symbol: "MSFT", Points: []model.PricePoint{{Price: 1}}},
		Profile: model.RiskProfile{Symbol: "MSFT", Level: model.RiskLow},
	})
	assert.False(t, s.Loading)
	require.NotNil(t, s.Profile)
	assert.Equal(t, model.RiskLow, s.Profile.Level)

	s = Reduce(s, SymbolSelected{Symbol: "TSLA"})
	s = Reduce(s, SelectFailed{Message: "Failed to fetch historical data."})
	assert.False(t, s.Loading)
	assert.Nil(t, s.Profile)
	assert.Equal(t, "Failed to fetch historical data.", s.Error)
}

func TestReduce_DoesNotAliasInput(t *testing.T) {
	in := []model.Holding{repriced("AAPL", 1, 1, 2)}
	s := Reduce(State{}, HoldingsPriced{Holdings: in})
	in[0].Symbol = "CHANGED"
	assert.Equal(t, "AAPL", s.Holdings[0].Symbol)
}

func TestManager_BeginIsExclusive(t *testing.T) {
	m, err := NewManager("", zerolog.Nop())
	require.NoError(t, err)

	release, err := m.Begin()
	require.NoError(t, err)

	_, err = m.Begin()
	assert.ErrorIs(t, err, ErrBusy)

	release()
	release()
	again, err := m.Begin()
	require.NoError(t, err)
	again()
}

func TestManager_PersistsHoldings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "session.json")
	m, err := NewManager(path, zerolog.Nop())
	require.NoError(t, err)
	m.Dispatch(HoldingsPriced{Holdings: []model.Holding{repriced("AAPL", 10, 100, 150)}})

	restored, err := NewManager(path, zerolog.Nop())
	require.NoError(t, err)
	st := restored.State()
	require.Len(t, st.Holdings, 1)
	assert.Equal(t, "AAPL", st.Holdings[0].Symbol)
	assert.Equal(t, 1500.0, st.Stats.TotalValue)
}
