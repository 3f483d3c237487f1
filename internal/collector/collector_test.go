package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioAnalyzer/internal/cache"
	"PortfolioAnalyzer/internal/metrics"
	"PortfolioAnalyzer/internal/model"
)

func TestPriceHoldings_RepricesCopy(t *testing.T) {
	m := &MockFetcher{Prices: map[string]float64{"AAPL": 150, "MSFT": 280}}
	c := NewCollector(m, nil, zerolog.Nop())

	in := []model.Holding{
		{Symbol: "AAPL", Quantity: 10, PurchasePrice: 100},
		{Symbol: "MSFT", Quantity: 2, PurchasePrice: 300},
	}
	out, err := c.PriceHoldings(context.Background(), in)
	require.NoError(t, err)

	assert.Zero(t, in[0].CurrentPrice, "input must not be modified")
	assert.Equal(t, 1500.0, out[0].TotalValue)
	assert.Equal(t, 500.0, out[0].ProfitLoss)
	assert.InDelta(t, 50.0, out[0].ProfitLossPercentage, 1e-9)
	assert.Equal(t, -40.0, out[1].ProfitLoss)
}

func TestPriceHoldings_AbortsOnFirstError(t *testing.T) {
	m := &MockFetcher{Prices: map[string]float64{"AAPL": 150, "TSLA": 200}}
	c := NewCollector(m, nil, zerolog.Nop())

	_, err := c.PriceHoldings(context.Background(), []model.Holding{
		{Symbol: "AAPL", Quantity: 1, PurchasePrice: 1},
		{Symbol: "NOPE", Quantity: 1, PurchasePrice: 1},
		{Symbol: "TSLA", Quantity: 1, PurchasePrice: 1},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Equal(t, 0, m.Calls("quote", "TSLA"))
}

func TestFetchHistories_DeduplicatesSymbols(t *testing.T) {
	m := &MockFetcher{History: map[string][]float64{"AAPL": {1, 2, 3}}}
	c := NewCollector(m, nil, zerolog.Nop())

	got, err := c.FetchHistories(context.Background(), []string{"AAPL", "AAPL"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, m.Calls("history", "AAPL"))
	assert.Equal(t, map[string][]float64{"AAPL": {1, 2, 3}}, Closes(got))
}

func TestCollector_RecordsFetchErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	m := &MockFetcher{Err: errors.New("down")}
	c := NewCollector(m, rec, zerolog.Nop())

	_, err := c.FetchSeries(context.Background(), "AAPL")
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "portfolio_fetch_errors_total" {
			found = true
			assert.Equal(t, 1.0, f.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}

func TestCachedFetcher_ServesFromCache(t *testing.T) {
	store := cache.NewMemoryCache()
	defer store.Close()
	m := &MockFetcher{
		Prices:  map[string]float64{"AAPL": 150},
		History: map[string][]float64{"AAPL": {10, 11}},
	}
	f := NewCachedFetcher(m, store, time.Minute, time.Hour, nil, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := f.FetchQuote(ctx, "AAPL")
		require.NoError(t, err)
		assert.Equal(t, 150.0, p)

		s, err := f.FetchDailySeries(ctx, "AAPL")
		require.NoError(t, err)
		assert.Equal(t, []float64{10, 11}, s.Closes())
	}
	assert.Equal(t, 1, m.Calls("quote", "AAPL"))
	assert.Equal(t, 1, m.Calls("history", "AAPL"))
	assert.Equal(t, "mock", f.Name())
}

func TestCachedFetcher_DoesNotCacheErrors(t *testing.T) {
	store := cache.NewMemoryCache()
	defer store.Close()
	m := &MockFetcher{}
	f := NewCachedFetcher(m, store, time.Minute, time.Hour, nil, zerolog.Nop())

	_, err := f.FetchQuote(context.Background(), "AAPL")
	require.Error(t, err)
	_, err = f.FetchQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, 2, m.Calls("quote", "AAPL"))
}

func TestCollector_CacheHitsAreNotFetchLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	store := cache.NewMemoryCache()
	defer store.Close()
	m := &MockFetcher{Prices: map[string]float64{"AAPL": 150}}
	c := NewCollector(NewCachedFetcher(m, store, time.Minute, time.Hour, rec, zerolog.Nop()), rec, zerolog.Nop())

	holdings := []model.Holding{{Symbol: "AAPL", Quantity: 1, PurchasePrice: 100}}
	for i := 0; i < 3; i++ {
		_, err := c.PriceHoldings(context.Background(), holdings)
		require.NoError(t, err)
	}

	families, err := reg.Gather()
	require.NoError(t, err)
	var samples uint64
	for _, f := range families {
		if f.GetName() == "portfolio_fetch_duration_seconds" {
			for _, metric := range f.GetMetric() {
				samples += metric.GetHistogram().GetSampleCount()
			}
		}
	}
	assert.Equal(t, uint64(1), samples)
	assert.Equal(t, 1, m.Calls("quote", "AAPL"))
}
