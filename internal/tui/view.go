package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/thenoetrevino/pilar/internal/tui/layers"
	"github.com/thenoetrevino/pilar/internal/tui/notifications"
	"github.com/thenoetrevino/pilar/internal/tui/render"
	"github.com/thenoetrevino/pilar/internal/tui/state"
	"github.com/thenoetrevino/pilar/internal/tui/theme"
)

// View implements tea.Model. The document is the base layer; gesture
// overlays, the menu, help and notifications are composed on top of it.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}
	view.Content = m.Render()
	return view
}

// Render composes every layer into the final screen content.
func (m *Model) Render() string {
	layerStack := []*lipgloss.Layer{
		lipgloss.NewLayer(m.baseView()).Z(layers.ZDocument),
	}
	layerStack = append(layerStack, render.OverlayLayers(m.frame, m.Gestures.Overlay())...)

	if m.drag != nil {
		if layer := m.dragLayer(); layer != nil {
			layerStack = append(layerStack, layer)
		}
	}
	if menu := m.Gestures.Menu(); menu != nil {
		layer, _ := render.MenuLayer(menu, m.UiState.Width(), m.UiState.ContentHeight())
		layerStack = append(layerStack, layer)
	}
	if m.UiState.Mode() == state.HelpMode {
		if layer := layers.CreateCenteredLayer(m.helpView(), m.UiState.Width(), m.UiState.Height()); layer != nil {
			layerStack = append(layerStack, layer)
		}
	}
	layerStack = append(layerStack, m.NotificationState.Layers(notifications.Render)...)

	return lipgloss.NewCanvas(layerStack...).Render()
}

// baseView is the document clipped to the content area plus the status bar.
func (m *Model) baseView() string {
	height := m.UiState.ContentHeight()
	lines := make([]string, 0, height+1)
	for i := range height {
		if i < len(m.frame.Lines) {
			lines = append(lines, m.frame.Lines[i])
		} else {
			lines = append(lines, "")
		}
	}
	lines = append(lines, m.statusBar())
	return strings.Join(lines, "\n")
}

func (m *Model) statusBar() string {
	width := m.UiState.Width()
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarText)).
		Background(lipgloss.Color(theme.StatusBarBg))

	left := fmt.Sprintf(" pilar · %s", m.UiState.Mode())
	if m.App.Locked() {
		left += " · columns locked"
	}
	if m.gestureActive() {
		left += " · " + m.Gestures.Phase().String()
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp()) + " "

	gap := max(width-ansi.StringWidth(left)-ansi.StringWidth(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return style.Render(ansi.Truncate(bar, width, ""))
}

// dragLayer shows the dragged block's text next to the pointer.
func (m *Model) dragLayer() *lipgloss.Layer {
	n, ok := m.App.Editor.State().Doc().Node(m.drag.block)
	if !ok {
		return nil
	}
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Preview)).
		Render(render.HandleGlyph + " " + ansi.Truncate(n.Text, 24, "…"))
	return layers.CreateAnchoredLayer(label, m.drag.x+1, m.drag.y, layers.ZPreview,
		m.UiState.Width(), m.UiState.ContentHeight())
}

func (m *Model) helpView() string {
	h := m.help
	h.ShowAll = true

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight)).Render("Keys")
	mouse := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render(strings.Join([]string{
		"drag " + render.HandleGlyph + " to reorder columns, click it for the column menu",
		"drag the gap between columns to resize",
		"alt+drag a block onto another block to place them side by side",
	}, "\n"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Highlight)).
		Padding(1, 2).
		MaxWidth(m.UiState.Width() * layers.HelpMaxWidthNumerator / layers.HelpMaxWidthDivisor).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", h.View(m.keys), "", mouse))
}
