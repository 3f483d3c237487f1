package collector

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"PortfolioAnalyzer/internal/cache"
	"PortfolioAnalyzer/internal/metrics"
	"PortfolioAnalyzer/internal/model"
)

// CachedFetcher serves quotes and series from a cache before asking the
// wrapped provider. Cache failures are logged and fall through. Provider
// latency is observed on misses only.
type CachedFetcher struct {
	next       Fetcher
	store      cache.Service
	quoteTTL   time.Duration
	historyTTL time.Duration
	metrics    *metrics.Recorder
	log        zerolog.Logger
}

// NewCachedFetcher wraps next with store.
func NewCachedFetcher(next Fetcher, store cache.Service, quoteTTL, historyTTL time.Duration, m *metrics.Recorder, log zerolog.Logger) *CachedFetcher {
	return &CachedFetcher{
		next:       next,
		store:      store,
		quoteTTL:   quoteTTL,
		historyTTL: historyTTL,
		metrics:    m,
		log:        log.With().Str("component", "price_cache").Logger(),
	}
}

func (f *CachedFetcher) Name() string { return f.next.Name() }

func (f *CachedFetcher) FetchQuote(ctx context.Context, symbol string) (float64, error) {
	key := cache.Key("quote", f.next.Name(), symbol)
	var price float64
	if f.lookup(ctx, "quote", key, &price) {
		return price, nil
	}
	start := time.Now()
	price, err := f.next.FetchQuote(ctx, symbol)
	f.metrics.ObserveFetch(f.next.Name(), "quote", start, err)
	if err != nil {
		return 0, err
	}
	f.save(ctx, key, price, f.quoteTTL)
	return price, nil
}

func (f *CachedFetcher) FetchDailySeries(ctx context.Context, symbol string) (model.PriceSeries, error) {
	key := cache.Key("history", f.next.Name(), symbol)
	var series model.PriceSeries
	if f.lookup(ctx, "history", key, &series) {
		return series, nil
	}
	start := time.Now()
	series, err := f.next.FetchDailySeries(ctx, symbol)
	f.metrics.ObserveFetch(f.next.Name(), "history", start, err)
	if err != nil {
		return series, err
	}
	f.save(ctx, key, series, f.historyTTL)
	return series, nil
}

func (f *CachedFetcher) lookup(ctx context.Context, op, key string, dest interface{}) bool {
	err := f.store.Get(ctx, key, dest)
	hit := err == nil
	f.metrics.RecordCacheLookup(op, hit)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		f.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	return hit
}

func (f *CachedFetcher) save(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := f.store.Set(ctx, key, value, ttl); err != nil {
		f.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
