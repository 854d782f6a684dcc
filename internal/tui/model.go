// Package tui hosts the column layout engine in a terminal. One terminal
// cell stands for one pixel of the gesture geometry.
package tui

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/pilar/internal/app"
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/events"
	"github.com/thenoetrevino/pilar/internal/gesture"
	"github.com/thenoetrevino/pilar/internal/tui/render"
	"github.com/thenoetrevino/pilar/internal/tui/state"
	"github.com/thenoetrevino/pilar/internal/tui/theme"
)

// widthStep is how much the keyboard widen and narrow commands change a
// column's weight.
const widthStep = 0.1

// RemoteMsg carries a transaction committed by another peer.
type RemoteMsg struct {
	Event events.Event
}

// blockDrag is an alt+drag of a textblock toward a drop target.
type blockDrag struct {
	block document.NodeID
	x, y  int
}

// Model is the bubbletea model of the editor.
type Model struct {
	Ctx context.Context

	App      *app.App
	Gestures *gesture.Controller

	UiState           *state.UIState
	NotificationState *state.NotificationState

	keys   keyMap
	help   help.Model
	frame  *render.Frame
	drag   *blockDrag
	remote <-chan events.Event
	logger *slog.Logger
}

// InitialModel creates the TUI model around an application container. When
// the app has an event client, remote transactions are delivered as
// RemoteMsg.
func InitialModel(ctx context.Context, a *app.App) *Model {
	theme.Init(a.Config.ColorScheme)

	m := &Model{
		Ctx:               ctx,
		App:               a,
		UiState:           state.NewUIState(),
		NotificationState: state.NewNotificationState(),
		keys:              newKeyMap(a.Config.KeyMappings),
		help:              help.New(),
		logger:            slog.Default(),
	}
	// The controller measures whatever was rendered last.
	m.Gestures = a.Gestures(gesture.LayoutFunc(func(group document.NodeID) (gesture.Snapshot, bool) {
		if m.frame == nil {
			return gesture.Snapshot{}, false
		}
		return m.frame.Snapshot(group)
	}))

	if client := a.EventClient(); client != nil {
		if err := client.Subscribe(a.Editor.DocID()); err != nil {
			m.logger.Warn("failed to subscribe to document", "doc_id", a.Editor.DocID(), "error", err)
		}
		ch, err := client.Listen(ctx)
		if err != nil {
			m.logger.Warn("remote edits disabled", "error", err)
		} else {
			m.remote = ch
		}
	}
	m.relayout()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.listenRemote()
}

// listenRemote waits for the next remote transaction.
func (m *Model) listenRemote() tea.Cmd {
	if m.remote == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case event, ok := <-m.remote:
			if !ok {
				return nil
			}
			return RemoteMsg{Event: event}
		case <-m.Ctx.Done():
			return nil
		}
	}
}

// relayout rebuilds the frame from the live state. Live resize weights
// from the gesture overlay replace the document's weights.
func (m *Model) relayout() {
	m.frame = render.Build(m.App.Editor.State().Doc(), render.Options{
		Width:     m.UiState.Width(),
		Selection: m.App.Editor.State().Selection(),
		Widths:    m.Gestures.Overlay().Widths,
	})
	if m.UiState.Mode() == state.ColumnMenuMode && m.Gestures.Menu() == nil {
		m.UiState.SetMode(state.NormalMode)
	}
}

// Frame returns the last layout.
func (m *Model) Frame() *render.Frame {
	return m.frame
}
