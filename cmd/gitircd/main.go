package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gitirc/cmd/gitirc/commands"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	noStore := flag.Bool("no-store", false, "do not log notifications to the database")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	if err := commands.Serve(level, !*noStore); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
