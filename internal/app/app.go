package app

import (
	"log/slog"
	"sync/atomic"

	"github.com/thenoetrevino/pilar/internal/config"
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/editor"
	"github.com/thenoetrevino/pilar/internal/events"
	"github.com/thenoetrevino/pilar/internal/gesture"
	"github.com/thenoetrevino/pilar/internal/keyboard"
	"github.com/thenoetrevino/pilar/internal/services/column"
	"github.com/thenoetrevino/pilar/internal/services/dnd"
)

// App holds one peer's editor and every structural service built on it.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config
	Editor *editor.Editor

	// Event system for remote peers, nil when editing alone
	eventClient events.EventPublisher

	// Service layer (structural editing)
	ColumnService column.Service
	DropService   dnd.Service
	Keyboard      *keyboard.Handler

	locked atomic.Bool
	logger *slog.Logger
}

// New creates a new App with all services initialized around doc.
// This is the single entry point for creating the application container.
func New(doc *document.Doc, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		cfg.config = config.Default()
	}

	editorOpts := []editor.Option{editor.WithLogger(cfg.logger)}
	if cfg.eventClient != nil {
		editorOpts = append(editorOpts, editor.WithPublisher(cfg.eventClient))
	}
	if cfg.docID != "" {
		editorOpts = append(editorOpts, editor.WithDocID(cfg.docID))
	}
	if cfg.peerID != "" {
		editorOpts = append(editorOpts, editor.WithPeerID(cfg.peerID))
	}
	if cfg.selection != nil {
		editorOpts = append(editorOpts, editor.WithSelection(*cfg.selection))
	}

	a := &App{
		Config:      cfg.config,
		Editor:      editor.New(doc, editorOpts...),
		eventClient: cfg.eventClient,
		logger:      cfg.logger,
	}
	a.locked.Store(cfg.config.Features.ColumnsLocked)

	gate := column.GateFunc(a.locked.Load)
	a.ColumnService = column.NewService(a.Editor,
		column.WithGate(gate),
		column.WithLogger(cfg.logger))
	a.DropService = dnd.NewService(a.Editor,
		dnd.WithGate(gate),
		dnd.WithLogger(cfg.logger))
	a.Keyboard = keyboard.NewHandler(a.Editor,
		keyboard.WithGate(gate),
		keyboard.WithLogger(cfg.logger))
	return a
}

// Gestures builds a pointer gesture controller measuring the rendered
// columns through layout. The controller shares the app's gate.
func (a *App) Gestures(layout gesture.Layout) *gesture.Controller {
	g := a.Config.Gestures
	return gesture.NewController(a.Editor, a.ColumnService, layout,
		gesture.WithDragThreshold(g.DragThreshold),
		gesture.WithHitSlop(g.ResizeHitSlop),
		gesture.WithMinWidth(g.MinColumnWidth),
		gesture.WithLogger(a.logger))
}

// Locked reports whether structural column edits are switched off.
func (a *App) Locked() bool {
	return a.locked.Load()
}

// SetLocked switches structural column edits off or back on.
func (a *App) SetLocked(locked bool) {
	a.locked.Store(locked)
	a.logger.Info("column commands toggled", "locked", locked)
}

// EventClient returns the sync transport, nil when editing alone.
func (a *App) EventClient() events.EventPublisher {
	return a.eventClient
}

// Close releases the sync transport.
func (a *App) Close() error {
	if a.eventClient == nil {
		return nil
	}
	return a.eventClient.Close()
}
