package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"PortfolioAnalyzer/internal/notifier"
	"PortfolioAnalyzer/internal/report"
)

type analyzeCmd struct {
	file   string
	asJSON bool
	notify bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "price a holdings file and run the stress test and advisor" }
func (*analyzeCmd) Usage() string {
	return `analyze -f <holdings.yaml> [-json] [-notify]

  Fetches live quotes and daily history for every holding, then prints the
  portfolio, stress test results and optimization suggestions.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "holdings.yaml", "holdings file (YAML or JSON)")
	f.BoolVar(&c.asJSON, "json", false, "print the analysis as JSON")
	f.BoolVar(&c.notify, "notify", false, "also send the report to Telegram")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := loadHoldings(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	var n notifier.Notifier = notifier.NoopNotifier{}
	if tn := a.telegram(); c.notify && tn != nil {
		n = tn
	}
	an, err := a.analyzer(ctx, "", a.recorder(), n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	res, err := an.Upload(ctx, holdings)
	defer an.Wait()
	if err != nil {
		a.log.Debug().Err(err).Msg("analyze failed")
		fmt.Fprintf(os.Stderr, "Error: %s\n", an.Session().State().Error)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(report.Markdown(res))
	return subcommands.ExitSuccess
}

func printMarkdown(md string) {
	out, err := report.Render(md, 100)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render markdown: %v\n", err)
	}
	fmt.Print(out)
}
