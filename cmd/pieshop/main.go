package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ovenbird/keyed/internal/cli"
)

func main() {
	// Minimal logger until the configured one is installed by serve.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
