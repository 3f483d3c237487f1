// Package analyzer runs the upload and selection use cases against the
// session state.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"PortfolioAnalyzer/internal/advisor"
	"PortfolioAnalyzer/internal/calculator"
	"PortfolioAnalyzer/internal/collector"
	"PortfolioAnalyzer/internal/metrics"
	"PortfolioAnalyzer/internal/model"
	"PortfolioAnalyzer/internal/notifier"
	"PortfolioAnalyzer/internal/recorder"
	"PortfolioAnalyzer/internal/session"
	"PortfolioAnalyzer/internal/stress"
)

// User-facing failure messages stored in the session.
const (
	MsgStockDataFailed = "Failed to fetch stock data. Please check your API key and try again."
	MsgHistoryFailed   = "Failed to fetch historical data."
)

var (
	// ErrFetch wraps every market data failure surfaced by the analyzer.
	ErrFetch = errors.New("market data fetch failed")
	// ErrNoHoldings is returned by Refresh before anything was uploaded.
	ErrNoHoldings = errors.New("no holdings uploaded")
)

// reportTimeout bounds one background report send.
const reportTimeout = 30 * time.Second

// MarketData is the slice of the collector the analyzer needs.
type MarketData interface {
	PriceHoldings(ctx context.Context, holdings []model.Holding) ([]model.Holding, error)
	FetchHistories(ctx context.Context, symbols []string) (map[string]model.PriceSeries, error)
	FetchSeries(ctx context.Context, symbol string) (model.PriceSeries, error)
}

// Analyzer wires market data, the pure analytics and the session together.
type Analyzer struct {
	data     MarketData
	session  *session.Manager
	recorder recorder.Recorder
	notifier notifier.Notifier
	metrics  *metrics.Recorder
	log      zerolog.Logger
	now      func() time.Time
	sends    sync.WaitGroup
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRecorder persists every completed upload.
func WithRecorder(r recorder.Recorder) Option { return func(a *Analyzer) { a.recorder = r } }

// WithNotifier reports every completed upload.
func WithNotifier(n notifier.Notifier) Option { return func(a *Analyzer) { a.notifier = n } }

// WithMetrics records run outcomes and the latest portfolio gauges.
func WithMetrics(m *metrics.Recorder) Option { return func(a *Analyzer) { a.metrics = m } }

// New creates an Analyzer. Recorder and notifier default to no-ops.
func New(data MarketData, sess *session.Manager, log zerolog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		data:     data,
		session:  sess,
		recorder: recorder.NewNoopRecorder(),
		notifier: notifier.NoopNotifier{},
		log:      log.With().Str("component", "analyzer").Logger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session exposes the state the analyzer writes to.
func (a *Analyzer) Session() *session.Manager { return a.session }

// Evaluate computes stats, stress results and suggestions for priced holdings.
func Evaluate(holdings []model.Holding, histories map[string]model.PriceSeries) model.Analysis {
	results := stress.Run(holdings, collector.Closes(histories))
	return model.Analysis{
		Holdings:      holdings,
		Stats:         model.ComputeStats(holdings),
		StressResults: results,
		Suggestions:   advisor.Suggest(holdings, results),
	}
}

// Upload prices the holdings, loads their histories and runs the analysis.
// Holdings repriced before a later failure stay in the session.
func (a *Analyzer) Upload(ctx context.Context, holdings []model.Holding) (*model.Analysis, error) {
	release, err := a.session.Begin()
	if err != nil {
		a.metrics.RecordRun("upload", "busy")
		return nil, err
	}
	defer release()

	start := a.now()
	a.session.Dispatch(session.UploadStarted{})

	priced, err := a.data.PriceHoldings(ctx, holdings)
	if err != nil {
		return nil, a.failUpload(err)
	}
	a.session.Dispatch(session.HoldingsPriced{Holdings: priced})

	histories, err := a.data.FetchHistories(ctx, model.Symbols(priced))
	if err != nil {
		return nil, a.failUpload(err)
	}

	analysis := Evaluate(priced, histories)
	analysis.ID = uuid.NewString()
	analysis.CreatedAt = a.now()
	a.session.Dispatch(session.AnalysisCompleted{
		StressResults: analysis.StressResults,
		Suggestions:   analysis.Suggestions,
	})

	a.metrics.RecordRun("upload", "ok")
	a.metrics.RecordPortfolio(analysis.Stats.TotalValue)
	for _, r := range analysis.StressResults {
		a.metrics.RecordRiskScore(r.Scenario, r.RiskScore)
	}
	a.log.Info().
		Str("run_id", analysis.ID).
		Int("holdings", len(priced)).
		Float64("total_value", analysis.Stats.TotalValue).
		Int("suggestions", len(analysis.Suggestions)).
		Dur("took", a.now().Sub(start)).
		Msg("analysis completed")

	if err := a.recorder.RecordAnalysis(&analysis); err != nil {
		a.log.Error().Err(err).Str("run_id", analysis.ID).Msg("failed to record analysis")
	}
	a.report(ctx, &analysis)
	return &analysis, nil
}

// report sends the analysis in the background. The send outlives ctx so a
// client hanging up does not drop the report.
func (a *Analyzer) report(ctx context.Context, analysis *model.Analysis) {
	text, runID := notifier.FormatAnalysisReport(analysis), analysis.ID
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportTimeout)
	a.sends.Add(1)
	go func() {
		defer a.sends.Done()
		defer cancel()
		if err := a.notifier.Send(sendCtx, text); err != nil {
			a.log.Error().Err(err).Str("run_id", runID).Msg("failed to send analysis report")
		}
	}()
}

// Wait blocks until every pending report send has finished.
func (a *Analyzer) Wait() { a.sends.Wait() }

func (a *Analyzer) failUpload(err error) error {
	a.session.Dispatch(session.UploadFailed{Message: MsgStockDataFailed})
	a.metrics.RecordRun("upload", "failed")
	a.log.Error().Err(err).Msg("upload failed")
	return fmt.Errorf("%w: %w", ErrFetch, err)
}

// Select loads one symbol's history and derives its risk profile.
func (a *Analyzer) Select(ctx context.Context, symbol string) (model.RiskProfile, model.PriceSeries, error) {
	release, err := a.session.Begin()
	if err != nil {
		a.metrics.RecordRun("select", "busy")
		return model.RiskProfile{}, model.PriceSeries{}, err
	}
	defer release()

	a.session.Dispatch(session.SymbolSelected{Symbol: symbol})
	series, err := a.data.FetchSeries(ctx, symbol)
	if err != nil {
		a.session.Dispatch(session.SelectFailed{Message: MsgHistoryFailed})
		a.metrics.RecordRun("select", "failed")
		a.log.Error().Err(err).Str("symbol", symbol).Msg("select failed")
		return model.RiskProfile{}, model.PriceSeries{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	profile := calculator.Profile(series)
	a.session.Dispatch(session.HistoryLoaded{Series: series, Profile: profile})
	a.metrics.RecordRun("select", "ok")
	return profile, series, nil
}

// Refresh re-runs Upload over the holdings already in the session.
func (a *Analyzer) Refresh(ctx context.Context) (*model.Analysis, error) {
	holdings := a.session.State().Holdings
	if len(holdings) == 0 {
		return nil, ErrNoHoldings
	}
	return a.Upload(ctx, holdings)
}
