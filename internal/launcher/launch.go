// Package launcher starts the interactive editor.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/thenoetrevino/pilar/internal/app"
	"github.com/thenoetrevino/pilar/internal/cli"
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/events"
	"github.com/thenoetrevino/pilar/internal/tui"
	"github.com/thenoetrevino/pilar/internal/user"
)

// DefaultDemoInterval is how often the demo peer edits the document.
const DefaultDemoInterval = 4 * time.Second

// shutdownGrace is how long a cancelled program gets to restore the
// terminal before Launch returns.
const shutdownGrace = 2 * time.Second

// Options tunes one editing session.
type Options struct {
	// Locked starts the session with structural column commands disabled.
	Locked bool
	// RemoteDemo attaches a scripted second peer editing the same document.
	RemoteDemo   bool
	DemoInterval time.Duration
}

// Launch starts the TUI application
func Launch(c *cli.CLI, opts Options) error {
	ctx := c.Context()
	logger := c.Logger

	cfg := *c.Config
	if opts.Locked {
		cfg.Features.ColumnsLocked = true
	}

	doc, err := document.New(WelcomeDoc())
	if err != nil {
		return fmt.Errorf("failed to build document: %w", err)
	}
	docID := uuid.NewString()
	peerID := user.PeerID()

	appOpts := []app.Option{
		app.WithConfig(&cfg),
		app.WithLogger(logger),
		app.WithDocID(docID),
		app.WithPeerID(peerID),
		app.WithSelection(document.Cursor(1)),
	}

	if opts.RemoteDemo {
		bus := events.NewBus(events.WithBusLogger(logger))
		client := bus.Join(peerID)
		appOpts = append(appOpts, app.WithEventPublisher(client))

		interval := opts.DemoInterval
		if interval <= 0 {
			interval = DefaultDemoInterval
		}
		peer, err := NewDemoPeer(bus, doc, docID, interval, logger)
		if err != nil {
			return fmt.Errorf("failed to start demo peer: %w", err)
		}
		defer func() {
			if err := peer.Close(); err != nil {
				logger.Error("error closing demo peer", "error", err)
			}
		}()

		peerCtx, cancelPeer := context.WithCancel(ctx)
		defer cancelPeer()
		go peer.Run(peerCtx)
	}

	application := app.New(doc, appOpts...)
	// Cleanup event connection on exit
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("error closing app", "error", err)
		}
	}()

	logger.Info("editing session started",
		"doc_id", docID,
		"peer_id", peerID,
		"locked", cfg.Features.ColumnsLocked,
		"remote_demo", opts.RemoteDemo)

	model := tui.InitialModel(ctx, application)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		select {
		case <-errChan:
		case <-time.After(shutdownGrace):
		}
	}
	return nil
}
