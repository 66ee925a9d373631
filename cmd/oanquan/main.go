package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play interactively against a built-in bot"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-vs-bot simulations"`
	Server   ServerCmd        `cmd:"" help:"Run the WebSocket match server"`
	Bot      BotCmd           `cmd:"" help:"Connect a built-in bot to a match server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("oanquan"),
		kong.Description("Ô Ăn Quan engine, match server and bots"),
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
