package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"PortfolioAnalyzer/internal/analyzer"
	"PortfolioAnalyzer/internal/model"
	"PortfolioAnalyzer/internal/notifier"
	"PortfolioAnalyzer/internal/session"
)

// Runner is the part of the analyzer the scheduler drives.
type Runner interface {
	Refresh(ctx context.Context) (*model.Analysis, error)
	Session() *session.Manager
}

type retrySender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron refresh and chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   Runner
	Notifier notifier.Notifier
	Ctx      context.Context
	Log      zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner Runner, n notifier.Notifier, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Notifier: n,
		Ctx:      ctx,
		Log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info().Msg("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.Log.Info().Msg("running refresh task")
	_, err := s.Runner.Refresh(s.Ctx)
	switch {
	case err == nil:
	case errors.Is(err, analyzer.ErrNoHoldings):
		s.Log.Info().Msg("refresh skipped, no holdings uploaded")
	case errors.Is(err, session.ErrBusy):
		s.Log.Warn().Msg("refresh skipped, another action is running")
	default:
		s.Log.Error().Err(err).Msg("refresh failed")
		s.trySend(notifier.FormatFailure(analyzer.MsgStockDataFailed, time.Now()))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	state := s.Runner.Session().State()
	switch command {
	case "/analyze":
		_, err := s.Runner.Refresh(ctx)
		switch {
		case err == nil:
			return "" // the analyzer already sent the report
		case errors.Is(err, analyzer.ErrNoHoldings):
			return "No holdings uploaded yet."
		case errors.Is(err, session.ErrBusy):
			return "An analysis is already running, try again shortly."
		default:
			return analyzer.MsgStockDataFailed
		}
	case "/stress":
		return notifier.FormatStressResults(state.StressResults)
	case "/suggestions":
		return notifier.FormatSuggestions(state.Suggestions)
	case "/portfolio":
		return notifier.FormatPortfolio(state.Holdings, state.Stats)
	default:
		return "Available commands:\n• /analyze\n• /stress\n• /suggestions\n• /portfolio"
	}
}

func (s *Scheduler) trySend(text string) {
	var err error
	if rs, ok := s.Notifier.(retrySender); ok {
		err = rs.SendWithRetry(s.Ctx, text, 3)
	} else {
		err = s.Notifier.Send(s.Ctx, text)
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("send notification")
	}
}
