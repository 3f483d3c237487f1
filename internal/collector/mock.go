package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"PortfolioAnalyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols without a configured price fail with ErrNoData.
type MockFetcher struct {
	Prices  map[string]float64
	History map[string][]float64
	Err     error // returned by every call when set

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) count(op, symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[op+":"+symbol]++
}

// Calls reports how many times op ("quote" or "history") ran for symbol.
func (m *MockFetcher) Calls(op, symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op+":"+symbol]
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (float64, error) {
	m.count("quote", symbol)
	if m.Err != nil {
		return 0, m.Err
	}
	p, ok := m.Prices[symbol]
	if !ok {
		return 0, fmt.Errorf("fetch quote %s: %w", symbol, ErrNoData)
	}
	return p, nil
}

func (m *MockFetcher) FetchDailySeries(_ context.Context, symbol string) (model.PriceSeries, error) {
	m.count("history", symbol)
	series := model.PriceSeries{Symbol: symbol, FetchedAt: time.Now()}
	if m.Err != nil {
		return series, m.Err
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range m.History[symbol] {
		series.Points = append(series.Points, model.PricePoint{Date: start.AddDate(0, 0, i), Price: p})
	}
	return series, nil
}
