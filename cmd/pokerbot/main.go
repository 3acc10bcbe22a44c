package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Decide  DecideCmd        `cmd:"" default:"withargs" help:"Estimate win probability and decide whether to stay or fold"`
	Eval    EvalCmd          `cmd:"" help:"Evaluate the best five-card hand from 5 to 7 cards"`
	Batch   BatchCmd         `cmd:"" help:"Run every scenario from the config file concurrently"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerbot"),
		kong.Description("Heads-up poker decisions from a time-bounded UCB1 Monte Carlo estimate"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
