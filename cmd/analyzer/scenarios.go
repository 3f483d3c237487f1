package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"PortfolioAnalyzer/internal/report"
	"PortfolioAnalyzer/internal/stress"
)

type scenariosCmd struct{}

func (*scenariosCmd) Name() string             { return "scenarios" }
func (*scenariosCmd) Synopsis() string         { return "list the stress test scenarios" }
func (*scenariosCmd) Usage() string            { return "scenarios\n" }
func (*scenariosCmd) SetFlags(_ *flag.FlagSet) {}

func (*scenariosCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printMarkdown(report.Scenarios(stress.DefaultScenarios()))
	return subcommands.ExitSuccess
}
