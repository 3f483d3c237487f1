package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"PortfolioAnalyzer/internal/metrics"
	"PortfolioAnalyzer/internal/model"
)

// Collector orchestrates per-holding fetches. Fetches run one symbol at a
// time and stop at the first failure.
type Collector struct {
	Fetcher Fetcher
	Metrics *metrics.Recorder
	Log     zerolog.Logger
}

// observe records provider latency unless the fetcher is cached, in which
// case the cache observes its own misses.
func (c *Collector) observe(op string, start time.Time, err error) {
	if _, cached := c.Fetcher.(*CachedFetcher); cached {
		return
	}
	c.Metrics.ObserveFetch(c.Fetcher.Name(), op, start, err)
}

// NewCollector creates a new Collector. m may be nil.
func NewCollector(fetcher Fetcher, m *metrics.Recorder, log zerolog.Logger) *Collector {
	return &Collector{
		Fetcher: fetcher,
		Metrics: m,
		Log:     log.With().Str("component", "collector").Str("provider", fetcher.Name()).Logger(),
	}
}

// PriceHoldings returns a copy of holdings repriced with live quotes.
// The input slice is never modified.
func (c *Collector) PriceHoldings(ctx context.Context, holdings []model.Holding) ([]model.Holding, error) {
	priced := make([]model.Holding, len(holdings))
	copy(priced, holdings)
	for i := range priced {
		price, err := c.quote(ctx, priced[i].Symbol)
		if err != nil {
			return nil, err
		}
		priced[i].Reprice(price)
	}
	return priced, nil
}

// FetchHistories loads the daily series of every symbol, keyed by symbol.
func (c *Collector) FetchHistories(ctx context.Context, symbols []string) (map[string]model.PriceSeries, error) {
	out := make(map[string]model.PriceSeries, len(symbols))
	for _, sym := range symbols {
		if _, done := out[sym]; done {
			continue
		}
		series, err := c.FetchSeries(ctx, sym)
		if err != nil {
			return nil, err
		}
		out[sym] = series
	}
	return out, nil
}

// FetchSeries loads one symbol's daily series, oldest first.
func (c *Collector) FetchSeries(ctx context.Context, symbol string) (model.PriceSeries, error) {
	start := time.Now()
	series, err := c.Fetcher.FetchDailySeries(ctx, symbol)
	c.observe("history", start, err)
	if err != nil {
		c.Log.Error().Err(err).Str("symbol", symbol).Msg("history fetch failed")
		return model.PriceSeries{}, fmt.Errorf("%s: %w", c.Fetcher.Name(), err)
	}
	series.SortAscending()
	c.Log.Debug().Str("symbol", symbol).Int("points", series.Len()).Dur("took", time.Since(start)).Msg("history fetched")
	return series, nil
}

func (c *Collector) quote(ctx context.Context, symbol string) (float64, error) {
	start := time.Now()
	price, err := c.Fetcher.FetchQuote(ctx, symbol)
	c.observe("quote", start, err)
	if err != nil {
		c.Log.Error().Err(err).Str("symbol", symbol).Msg("quote fetch failed")
		return 0, fmt.Errorf("%s: %w", c.Fetcher.Name(), err)
	}
	c.Log.Debug().Str("symbol", symbol).Float64("price", price).Msg("quote fetched")
	return price, nil
}

// Closes projects each series to its closing prices.
func Closes(histories map[string]model.PriceSeries) map[string][]float64 {
	out := make(map[string][]float64, len(histories))
	for sym, s := range histories {
		out[sym] = s.Closes()
	}
	return out
}
