package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", defaultConfigPath(), "path to the YAML config file")

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&analyzeCmd{}, "analysis")
	commander.Register(&selectCmd{}, "analysis")
	commander.Register(&scenariosCmd{}, "analysis")
	commander.Register(&historyCmd{}, "analysis")
	commander.Register(&serveCmd{}, "service")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
