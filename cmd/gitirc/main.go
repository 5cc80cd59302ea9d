package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"gitirc/cmd/gitirc/commands"
)

func main() {
	app := &cli.App{
		Name:  "gitirc",
		Usage: "Relay GitHub webhook events to IRC channels",
		Commands: []*cli.Command{
			commands.InitCommand(),
			commands.ServeCommand(),
			commands.RenderCommand(),
			commands.RecentCommand(),
			commands.FlushCommand(),
			commands.VersionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
