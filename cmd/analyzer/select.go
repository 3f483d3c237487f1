package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"PortfolioAnalyzer/internal/notifier"
	"PortfolioAnalyzer/internal/recorder"
	"PortfolioAnalyzer/internal/report"
)

type selectCmd struct {
	file string
}

func (*selectCmd) Name() string     { return "select" }
func (*selectCmd) Synopsis() string { return "show the volatility and risk profile of one holding" }
func (*selectCmd) Usage() string {
	return `select [-f <holdings.yaml>] SYMBOL

  Loads the daily history of SYMBOL and prints its annualized volatility,
  risk level and price range. With -f, SYMBOL must be one of the holdings.
`
}

func (c *selectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "holdings file the symbol must belong to")
}

func (c *selectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one SYMBOL is required")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(strings.TrimSpace(f.Arg(0)))

	if c.file != "" {
		holdings, err := loadHoldings(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		found := false
		for _, h := range holdings {
			found = found || h.Symbol == symbol
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: %s is not in %s\n", symbol, c.file)
			return subcommands.ExitUsageError
		}
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	an, err := a.analyzer(ctx, "", recorder.NewNoopRecorder(), notifier.NoopNotifier{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	profile, _, err := an.Select(ctx, symbol)
	if err != nil {
		a.log.Debug().Err(err).Msg("select failed")
		fmt.Fprintf(os.Stderr, "Error: %s\n", an.Session().State().Error)
		return subcommands.ExitFailure
	}
	printMarkdown(report.Profile(profile))
	return subcommands.ExitSuccess
}
