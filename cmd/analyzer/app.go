package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"PortfolioAnalyzer/internal/analyzer"
	"PortfolioAnalyzer/internal/cache"
	"PortfolioAnalyzer/internal/collector"
	"PortfolioAnalyzer/internal/config"
	"PortfolioAnalyzer/internal/logging"
	"PortfolioAnalyzer/internal/metrics"
	"PortfolioAnalyzer/internal/notifier"
	"PortfolioAnalyzer/internal/recorder"
	"PortfolioAnalyzer/internal/session"
)

// app holds the wiring shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Recorder
	closers  []io.Closer
}

func newApp() (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &app{
		cfg:      cfg,
		log:      log,
		registry: reg,
		metrics:  metrics.New(reg),
		closers:  []io.Closer{logCloser},
	}, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.log.Warn().Err(err).Msg("close resource")
		}
	}
}

func (a *app) fetcher(ctx context.Context) (collector.Fetcher, error) {
	ds := a.cfg.DataSource
	var f collector.Fetcher
	switch ds.Provider {
	case "alphavantage":
		f = collector.NewAlphaVantageFetcher(ds.BaseURL, ds.APIKey, a.cfg.Proxy, ds.Timeout)
	case "yahoo":
		f = collector.NewYahooFetcher(ds.BaseURL, a.cfg.Proxy, ds.Timeout)
	case "mock":
		f = demoFetcher()
	default:
		return nil, fmt.Errorf("unknown data provider %q", ds.Provider)
	}
	a.log.Info().Str("provider", f.Name()).Msg("data source")

	store, err := a.cache(ctx)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return f, nil
	}
	return collector.NewCachedFetcher(f, store, a.cfg.Cache.QuoteTTL, a.cfg.Cache.HistoryTTL, a.metrics, a.log), nil
}

func (a *app) cache(ctx context.Context) (cache.Service, error) {
	c := a.cfg.Cache
	switch c.Backend {
	case "memory":
		store := cache.NewMemoryCache(cache.WithMaxSize(c.MaxEntries))
		a.closers = append(a.closers, store)
		return store, nil
	case "redis":
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("init redis cache: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	default:
		return nil, nil
	}
}

// recorder falls back to a no-op when SQLite is not configured or fails to open.
func (a *app) recorder() recorder.Recorder {
	if a.cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(a.cfg.Database.SQLitePath, a.log)
	if err != nil {
		a.log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	a.closers = append(a.closers, sr)
	return sr
}

func (a *app) telegram() *notifier.TelegramNotifier {
	if !a.cfg.TelegramEnabled() {
		return nil
	}
	return notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.log)
}

// analyzer wires the full pipeline. stateFile may be empty for a throwaway session.
func (a *app) analyzer(ctx context.Context, stateFile string, rec recorder.Recorder, n notifier.Notifier) (*analyzer.Analyzer, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := a.fetcher(ctx)
	if err != nil {
		return nil, err
	}
	sess, err := session.NewManager(stateFile, a.log)
	if err != nil {
		return nil, fmt.Errorf("init session: %w", err)
	}
	col := collector.NewCollector(f, a.metrics, a.log)
	return analyzer.New(col, sess, a.log,
		analyzer.WithRecorder(rec),
		analyzer.WithNotifier(n),
		analyzer.WithMetrics(a.metrics),
	), nil
}

// demoFetcher serves fixed data for the "mock" provider.
func demoFetcher() *collector.MockFetcher {
	return &collector.MockFetcher{
		Prices: map[string]float64{
			"AAPL": 189.50, "MSFT": 415.20, "GOOGL": 141.80, "AMZN": 178.25, "TSLA": 175.10, "NVDA": 880.00,
		},
		History: map[string][]float64{
			"AAPL": {182.0, 184.5, 183.2, 186.9, 188.1, 187.4, 189.5},
			"MSFT": {405.0, 409.8, 411.2, 408.6, 412.9, 414.0, 415.2},
			"TSLA": {190.3, 184.0, 179.6, 181.2, 172.4, 176.8, 175.1},
		},
	}
}
