// Package metrics exposes Prometheus instruments for fetches and analyses.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the application's Prometheus instruments.
type Recorder struct {
	fetchLatency   *prometheus.HistogramVec
	fetchErrors    *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	analysisRuns   *prometheus.CounterVec
	portfolioValue prometheus.Gauge
	riskScore      *prometheus.GaugeVec
}

// New registers the instruments on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_fetch_duration_seconds",
				Help:    "Duration of market data fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		),
		fetchErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_fetch_errors_total",
				Help: "Total number of failed market data fetches",
			},
			[]string{"provider", "operation"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_cache_lookups_total",
				Help: "Price cache lookups by result",
			},
			[]string{"operation", "result"},
		),
		analysisRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_analysis_runs_total",
				Help: "Analysis actions by kind and outcome",
			},
			[]string{"action", "outcome"},
		),
		portfolioValue: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "portfolio_total_value",
				Help: "Total value of the last analyzed portfolio",
			},
		),
		riskScore: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "portfolio_stress_risk_score",
				Help: "Risk score of the last stress test per scenario",
			},
			[]string{"scenario"},
		),
	}
}

// ObserveFetch records one fetch's latency, and an error if it failed.
func (r *Recorder) ObserveFetch(provider, op string, start time.Time, err error) {
	if r == nil {
		return
	}
	r.fetchLatency.WithLabelValues(provider, op).Observe(time.Since(start).Seconds())
	if err != nil {
		r.fetchErrors.WithLabelValues(provider, op).Inc()
	}
}

// RecordCacheLookup counts a cache hit or miss.
func (r *Recorder) RecordCacheLookup(op string, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(op, result).Inc()
}

// RecordRun counts an analysis action outcome ("ok", "failed", "busy").
func (r *Recorder) RecordRun(action, outcome string) {
	if r == nil {
		return
	}
	r.analysisRuns.WithLabelValues(action, outcome).Inc()
}

// RecordPortfolio sets the value gauge.
func (r *Recorder) RecordPortfolio(totalValue float64) {
	if r == nil {
		return
	}
	r.portfolioValue.Set(totalValue)
}

// RecordRiskScore sets the gauge of one scenario.
func (r *Recorder) RecordRiskScore(scenario string, score float64) {
	if r == nil {
		return
	}
	r.riskScore.WithLabelValues(scenario).Set(score)
}
