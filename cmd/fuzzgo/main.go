// Package main is the entry point for the fuzzgo terminal finder.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/hupe1980/fuzzgo"
	"github.com/hupe1980/fuzzgo/internal/tui"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		prompt      = flag.String("prompt", ">", "prompt shown before the query line")
		query       = flag.String("query", "", "initial query")
		workers     = flag.Int("workers", 0, "scoring workers (0 = auto)")
		debugLog    = flag.String("debug-log", "", "write debug logs to this file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("fuzzgo", version)
		return 0
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "fuzzgo: expects the item stream on stdin, e.g.: find . | fuzzgo")
		return 1
	}

	opts := []fuzzgo.Option{fuzzgo.WithWorkers(*workers)}
	if *debugLog != "" {
		f, err := os.OpenFile(*debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fuzzgo: open debug log: %v\n", err)
			return 1
		}
		defer f.Close()
		handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, fuzzgo.WithLogger(fuzzgo.NewLogger(handler)))
	}

	fz, err := fuzzgo.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuzzgo: %v\n", err)
		return 1
	}
	if err := fz.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "fuzzgo: %v\n", err)
		return 1
	}
	defer fz.Stop()

	app, err := tui.New(tui.Config{
		Finder: fz,
		In:     os.Stdin,
		Prompt: *prompt,
		Query:  *query,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuzzgo: %v\n", err)
		return 1
	}

	selected, accepted, err := app.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuzzgo: %v\n", err)
		return 1
	}
	if !accepted {
		return 1
	}
	for _, line := range selected {
		fmt.Println(line)
	}
	return 0
}
