package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"PortfolioAnalyzer/internal/notifier"
	"PortfolioAnalyzer/internal/scheduler"
	"PortfolioAnalyzer/internal/server"
)

type serveCmd struct {
	runOnStart bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API, the refresh schedule and the Telegram bot" }
func (*serveCmd) Usage() string {
	return `serve [-run-on-start]

  Serves the portfolio API until SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.runOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "refresh the stored portfolio immediately")
}

func (c *serveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	if err := c.run(a); err != nil {
		a.log.Error().Err(err).Msg("serve failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) run(a *app) error {
	log := a.log
	log.Info().Msg("PortfolioAnalyzer starting...")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var n notifier.Notifier = notifier.NoopNotifier{}
	tn := a.telegram()
	if tn != nil {
		n = tn
	}

	rec := a.recorder()
	an, err := a.analyzer(ctx, a.cfg.Session.StateFile, rec, n)
	if err != nil {
		return err
	}

	sched := scheduler.NewScheduler(ctx, an, n, log)
	if err := sched.RegisterAll(a.cfg.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	if c.runOnStart {
		log.Info().Msg("run-on-start enabled, refreshing now")
		go sched.RunRefreshNow()
	}

	srv := server.NewServer(
		server.NewPortfolioHandler(an, rec, log),
		a.registry,
		log,
		server.WithPort(a.cfg.HTTP.Port),
		server.WithShutdownTimeout(a.cfg.HTTP.ShutdownTimeout),
	)
	srvErr := srv.Start()

	log.Info().Msg("PortfolioAnalyzer is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal or a dead listener
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping...")
	case runErr = <-srvErr:
		log.Error().Err(runErr).Msg("http server failed, stopping...")
	}

	cancel()
	if err := srv.Stop(context.Background()); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	an.Wait()
	log.Info().Msg("PortfolioAnalyzer stopped")
	return runErr
}
