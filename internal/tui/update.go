package tui

import (
	"errors"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/pilar/internal/editor"
	"github.com/thenoetrevino/pilar/internal/gesture"
	"github.com/thenoetrevino/pilar/internal/services/column"
	"github.com/thenoetrevino/pilar/internal/tui/render"
	"github.com/thenoetrevino/pilar/internal/tui/state"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Check if context is cancelled (graceful shutdown)
	select {
	case <-m.Ctx.Done():
		return m, tea.Quit
	default:
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UiState.SetWidth(msg.Width)
		m.UiState.SetHeight(msg.Height)
		m.NotificationState.SetWindowSize(msg.Width, msg.Height)

	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)

	case tea.MouseClickMsg:
		m.handleMouseDown(msg.Mouse())

	case tea.MouseMotionMsg:
		m.handleMouseMove(msg.Mouse())

	case tea.MouseReleaseMsg:
		m.handleMouseUp(msg.Mouse())

	case RemoteMsg:
		m.handleRemote(msg)
		// Continue listening for more events
		cmd = m.listenRemote()
	}

	m.relayout()
	return m, cmd
}

// handleKey dispatches key presses to the handler of the current mode.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.UiState.Mode() {
	case state.HelpMode:
		return m.handleHelpMode(msg)
	case state.ColumnMenuMode:
		return m.handleMenuMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

func (m *Model) handleHelpMode(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Enter):
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}

func (m *Model) handleMenuMode(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up, m.keys.Left):
		m.Gestures.MenuMove(-1)
	case key.Matches(msg, m.keys.Down, m.keys.Right):
		m.Gestures.MenuMove(1)
	case key.Matches(msg, m.keys.Enter):
		if !m.Gestures.MenuChoose() {
			m.reject("the column command was rejected")
		}
		m.UiState.SetMode(state.NormalMode)
	case key.Matches(msg, m.keys.Cancel):
		m.Gestures.Escape()
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}

func (m *Model) handleNormalMode(msg tea.KeyPressMsg) tea.Cmd {
	m.NotificationState.Clear()
	e := m.App.Editor
	cols := m.App.ColumnService

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.UiState.SetMode(state.HelpMode)
	case key.Matches(msg, m.keys.Cancel):
		m.drag = nil
		m.Gestures.Escape()

	case key.Matches(msg, m.keys.Undo):
		if !e.Undo() {
			m.NotificationState.Add(state.LevelInfo, "nothing to undo")
		}
	case key.Matches(msg, m.keys.Redo):
		if !e.Redo() {
			m.NotificationState.Add(state.LevelInfo, "nothing to redo")
		}

	case key.Matches(msg, m.keys.InsertGroup):
		if !cols.InsertColumnGroup(2) {
			m.reject("columns cannot be inserted here")
		}
	case key.Matches(msg, m.keys.ColumnMenu):
		m.openMenuAtCursor()
	case key.Matches(msg, m.keys.DeleteColumn):
		m.withCursorColumn(func(loc column.Location) bool {
			return cols.DeleteColumn(loc.ColumnPos)
		})
	case key.Matches(msg, m.keys.MoveColumnLeft):
		m.withCursorColumn(func(loc column.Location) bool {
			return cols.MoveColumn(loc.GroupPos, loc.Index, loc.Index-1)
		})
	case key.Matches(msg, m.keys.MoveColumnRight):
		m.withCursorColumn(func(loc column.Location) bool {
			return cols.MoveColumn(loc.GroupPos, loc.Index, loc.Index+1)
		})
	case key.Matches(msg, m.keys.WidenColumn):
		m.withCursorColumn(func(loc column.Location) bool {
			return cols.SetColumnWidth(loc.ColumnPos, loc.Column.Attrs.Width+widthStep)
		})
	case key.Matches(msg, m.keys.NarrowColumn):
		m.withCursorColumn(func(loc column.Location) bool {
			return cols.SetColumnWidth(loc.ColumnPos, loc.Column.Attrs.Width-widthStep)
		})

	case key.Matches(msg, m.keys.Up):
		e.MoveCursor(editor.Up)
	case key.Matches(msg, m.keys.Down):
		e.MoveCursor(editor.Down)
	case key.Matches(msg, m.keys.Left):
		e.MoveCursor(editor.Left)
	case key.Matches(msg, m.keys.Right):
		e.MoveCursor(editor.Right)
	case key.Matches(msg, m.keys.Enter):
		e.SplitBlock()
	case key.Matches(msg, m.keys.Backspace):
		// Structural handling first, plain text deletion otherwise
		if !m.App.Keyboard.Backspace() {
			e.DeleteBackward()
		}

	default:
		if msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
			e.InsertText(msg.Text)
		}
	}
	return nil
}

// withCursorColumn runs a column command on the column holding the cursor.
func (m *Model) withCursorColumn(run func(loc column.Location) bool) {
	st := m.App.Editor.State()
	loc, err := column.ColumnAt(st.Doc(), st.Selection().Head)
	if err != nil {
		m.NotificationState.Add(state.LevelInfo, "the cursor is not in a column")
		return
	}
	if !run(loc) {
		m.reject("the column command was rejected")
	}
}

func (m *Model) openMenuAtCursor() {
	m.withCursorColumn(func(loc column.Location) bool {
		x, y := 0, 0
		if g, i, ok := m.frame.ColumnBox(loc.Column.ID); ok {
			x, y = g.Columns[i].Left, g.Top
		}
		if !m.Gestures.OpenMenu(loc.Column.ID, x, y) {
			return false
		}
		m.UiState.SetMode(state.ColumnMenuMode)
		return true
	})
}

// reject reports a command that did nothing. A locked gate explains every
// rejection.
func (m *Model) reject(message string) {
	if m.App.Locked() {
		message = column.ErrLocked.Error()
	}
	m.NotificationState.Add(state.LevelError, message)
}

// gestureFailed reports why a pointer gesture did not start or finish.
func (m *Model) gestureFailed(err error) {
	switch {
	case errors.Is(err, column.ErrLocked):
		m.NotificationState.Add(state.LevelError, column.ErrLocked.Error())
	case errors.Is(err, gesture.ErrStaleGesture):
		m.NotificationState.Add(state.LevelWarning, "gesture cancelled: the columns changed")
	case errors.Is(err, gesture.ErrGesturePanic):
		m.NotificationState.Add(state.LevelError, "gesture failed and was cancelled")
	default:
		m.logger.Debug("gesture failed", "error", err)
	}
}

func (m *Model) handleRemote(msg RemoteMsg) {
	if err := m.App.Editor.ApplyRemote(msg.Event); err != nil {
		m.NotificationState.Add(state.LevelWarning, "a remote edit could not be applied")
		return
	}
	if m.Gestures.Refresh() {
		m.NotificationState.Add(state.LevelWarning, "gesture cancelled: the columns changed remotely")
	}
	if m.drag != nil {
		if _, ok := m.App.Editor.State().Doc().Node(m.drag.block); !ok {
			m.drag = nil
			m.NotificationState.Add(state.LevelWarning, "drag cancelled: the block was removed remotely")
		}
	}
}

// menuBox recomputes where the open menu is drawn.
func (m *Model) menuBox() render.MenuBox {
	menu := m.Gestures.Menu()
	if menu == nil {
		return render.MenuBox{}
	}
	_, box := render.MenuLayer(menu, m.UiState.Width(), m.UiState.ContentHeight())
	return box
}
