package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Run the table server"`
	Play     PlayCmd          `cmd:"" help:"Play a local table against house bots"`
	Simulate SimulateCmd      `cmd:"" help:"Measure a strategy over a scripted session"`
	Odds     OddsCmd          `cmd:"" help:"Estimate hand equity by Monte Carlo"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdemcore"),
		kong.Description("Texas hold'em rules engine, table server and tooling"),
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
