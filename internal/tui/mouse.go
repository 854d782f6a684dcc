package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/pilar/internal/gesture"
	"github.com/thenoetrevino/pilar/internal/services/dnd"
	"github.com/thenoetrevino/pilar/internal/tui/state"
)

// handleMouseDown routes a press to the menu, a column gesture, a block
// drag (alt held) or cursor placement, in that order.
func (m *Model) handleMouseDown(mouse tea.Mouse) {
	if mouse.Button != tea.MouseLeft {
		return
	}
	x, y := mouse.X, mouse.Y

	if m.Gestures.Menu() != nil {
		if i, ok := m.menuBox().EntryAt(x, y); ok {
			if !m.Gestures.RunMenuAction(gesture.MenuActions[i]) {
				m.reject("the column command was rejected")
			}
			m.UiState.SetMode(state.NormalMode)
			return
		}
	}
	m.UiState.SetMode(state.NormalMode)

	if hit := m.frame.HitTest(x, y, m.Gestures.HitSlop()); hit.Kind != gesture.HitNone {
		if err := m.Gestures.PointerDown(hit, x, y); err != nil {
			m.gestureFailed(err)
		}
		return
	}
	m.Gestures.CloseMenu()

	b, ok := m.frame.BlockAt(x, y)
	if !ok {
		return
	}
	if mouse.Mod&tea.ModAlt != 0 {
		m.drag = &blockDrag{block: b.ID, x: x, y: y}
		return
	}
	m.App.Editor.CursorTo(b.ID, x-b.Left)
}

func (m *Model) handleMouseMove(mouse tea.Mouse) {
	switch {
	case m.drag != nil:
		m.drag.x, m.drag.y = mouse.X, mouse.Y
	case m.gestureActive():
		if err := m.Gestures.PointerMove(mouse.X, mouse.Y); err != nil {
			m.gestureFailed(err)
		}
	default:
		m.Gestures.Hover(m.frame.HitTest(mouse.X, mouse.Y, m.Gestures.HitSlop()))
	}
}

func (m *Model) handleMouseUp(mouse tea.Mouse) {
	if m.drag != nil {
		m.dropBlock(mouse.X, mouse.Y)
		m.drag = nil
		return
	}

	result, err := m.Gestures.PointerUp(mouse.X, mouse.Y)
	if err != nil {
		m.gestureFailed(err)
		return
	}
	switch result {
	case gesture.ResultMenu:
		m.UiState.SetMode(state.ColumnMenuMode)
	case gesture.ResultRejected:
		m.reject("the column move was rejected")
	}
}

// dropBlock drops the dragged block beside the block under the pointer.
// The half of the target the pointer is on picks the side.
func (m *Model) dropBlock(x, y int) {
	target, ok := m.frame.BlockAt(x, y)
	if !ok || target.ID == m.drag.block {
		return
	}
	drop := dnd.Drop{
		Dragged: m.drag.block,
		Target:  target.ID,
		Side:    dnd.SideFor(x, target.Left, target.Width),
		IsMove:  true,
	}
	if !m.App.DropService.Drop(drop) {
		m.reject("invalid drop target")
	}
}

func (m *Model) gestureActive() bool {
	p := m.Gestures.Phase()
	return p == gesture.Dragging || p == gesture.Resizing
}
