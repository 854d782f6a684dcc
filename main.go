package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/pilar/cmd"
	"github.com/thenoetrevino/pilar/internal/cli"
)

func main() {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	err := cmd.Execute(ctx)
	cancel()
	os.Exit(cli.ExitCode(err))
}
