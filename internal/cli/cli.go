// Package cli holds what the pilar commands share: the command context,
// exit codes and the output formatter.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/pilar/internal/config"
	"github.com/thenoetrevino/pilar/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	Config  *config.Config
	Logger  *slog.Logger
	logFile io.Closer
	ctx     context.Context
}

// NewCLI initializes file logging and loads the configuration
func NewCLI(ctx context.Context) (*CLI, error) {
	logFile, err := logging.Init(slog.LevelDebug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &CLI{
		Config:  cfg,
		Logger:  logging.Logger,
		logFile: logFile,
		ctx:     ctx,
	}, nil
}

// Context returns the context the command runs under.
func (c *CLI) Context() context.Context {
	return c.ctx
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.logFile.Close()
}
