package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/pilar/internal/gesture"
	"github.com/thenoetrevino/pilar/internal/tui/layers"
	"github.com/thenoetrevino/pilar/internal/tui/theme"
)

// OverlayLayers draws the gesture overlay on top of the frame. Overlay
// parts whose group is no longer rendered are skipped.
func OverlayLayers(f *Frame, ov gesture.Overlay) []*lipgloss.Layer {
	var out []*lipgloss.Layer

	if h := ov.Hover; h != nil {
		if g, ok := f.Group(h.Group); ok && h.Index < len(g.Columns) {
			out = append(out, hoverLayer(g, h))
		}
	}

	if p := ov.Preview; p != nil {
		if g, _, ok := f.ColumnBox(p.Column); ok {
			out = append(out, lipgloss.NewLayer(ghostBox(p.Width, g.Height)).
				X(p.X).Y(g.Top).Z(layers.ZPreview))
		}
	}

	if ind := ov.Indicator; ind != nil {
		if g, ok := f.Group(ind.Group); ok {
			out = append(out, lipgloss.NewLayer(vertical("┃", g.Height, theme.Indicator)).
				X(ind.X).Y(g.Top).Z(layers.ZIndicator))
		}
	}

	if guide := ov.Guide; guide != nil {
		if g, ok := f.Group(guide.Group); ok {
			out = append(out, lipgloss.NewLayer(vertical("│", g.Height, theme.Guide)).
				X(guide.X).Y(g.Top).Z(layers.ZGuide))
			if w := ov.Widths; w != nil {
				out = append(out, widthsLayer(g, guide.X, w, f.Width))
			}
		}
	}
	return out
}

func hoverLayer(g GroupBox, h *gesture.Hover) *lipgloss.Layer {
	c := g.Columns[h.Index]
	if h.Kind == gesture.HitGap {
		return lipgloss.NewLayer(vertical("┊", g.Height, theme.Handle)).
			X(c.Right()).Y(g.Top).Z(layers.ZHover)
	}
	glyph := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight)).Render(HandleGlyph)
	return lipgloss.NewLayer(glyph).X(c.Left + 1).Y(g.Top).Z(layers.ZHover)
}

// ghostBox is the dashed outline of a dragged column.
func ghostBox(width, height int) string {
	width = max(width, minColumnBox)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Preview))
	inner := width - 2

	lines := make([]string, 0, height)
	lines = append(lines, style.Render("┌"+HandleGlyph+strings.Repeat("┄", inner-1)+"┐"))
	for range max(height-2, 0) {
		lines = append(lines, style.Render("┆"+strings.Repeat(" ", inner)+"┆"))
	}
	lines = append(lines, style.Render("└"+strings.Repeat("┄", inner)+"┘"))
	return strings.Join(lines, "\n")
}

func vertical(glyph string, height int, color string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = style.Render(glyph)
	}
	return strings.Join(lines, "\n")
}

// widthsLayer labels the live weights above the group, or below it when
// the group starts on the first row.
func widthsLayer(g GroupBox, x int, w *gesture.WidthPreview, screenWidth int) *lipgloss.Layer {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Guide)).
		Render(fmt.Sprintf(" %.2f │ %.2f ", w.Left, w.Right))
	y := g.Top - 1
	if y < 0 {
		y = g.Bottom()
	}
	x -= lipgloss.Width(label) / 2
	x, _ = layers.Anchor(x, y, lipgloss.Width(label), 1, screenWidth, y+1)
	return lipgloss.NewLayer(label).X(x).Y(y).Z(layers.ZGuide)
}

// MenuBox is where the column menu was drawn.
type MenuBox struct {
	X, Y          int
	Width, Height int
}

// EntryAt returns the menu entry under x, y.
func (b MenuBox) EntryAt(x, y int) (int, bool) {
	if x < b.X || x >= b.X+b.Width {
		return 0, false
	}
	i := y - b.Y - 1
	if i < 0 || i >= len(gesture.MenuActions) {
		return 0, false
	}
	return i, true
}

// MenuLayer draws the structural-edit menu one row below its anchor.
func MenuLayer(m *gesture.Menu, screenWidth, screenHeight int) (*lipgloss.Layer, MenuBox) {
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal))
	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight))
	danger := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ErrorBg))

	entries := make([]string, len(gesture.MenuActions))
	for i, action := range gesture.MenuActions {
		style := normal
		if action == gesture.Delete {
			style = danger
		}
		prefix := "  "
		if i == m.Cursor {
			style, prefix = selected, "› "
		}
		entries[i] = style.Render(prefix + action.String())
	}

	content := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Highlight)).
		Padding(0, 1).
		Render(strings.Join(entries, "\n"))

	box := MenuBox{Width: lipgloss.Width(content), Height: lipgloss.Height(content)}
	box.X, box.Y = layers.Anchor(m.X, m.Y+1, box.Width, box.Height, screenWidth, screenHeight)
	return lipgloss.NewLayer(content).X(box.X).Y(box.Y).Z(layers.ZMenu), box
}
