// Package notifications draws the banners of the notification stack.
package notifications

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/pilar/internal/tui/state"
	"github.com/thenoetrevino/pilar/internal/tui/theme"
)

// chrome is the border plus padding around the banner text.
const chrome = 4

type look struct {
	icon   string
	title  string
	fg     string
	accent string
}

// lookOf reads the theme at call time so a reloaded theme applies at once.
func lookOf(level state.NotificationLevel) look {
	switch level {
	case state.LevelWarning:
		return look{icon: "⚠", title: "Warning", fg: theme.WarningFg, accent: theme.WarningBg}
	case state.LevelError:
		return look{icon: "✕", title: "Rejected", fg: theme.ErrorFg, accent: theme.ErrorBg}
	default:
		return look{icon: "●", title: "Info", fg: theme.InfoFg, accent: theme.InfoBg}
	}
}

// Render draws n as a bordered banner no wider than maxWidth. Long messages
// wrap.
func Render(n state.Notification, maxWidth int) string {
	l := lookOf(n.Level)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(l.accent)).
		Render(l.icon + " " + l.title)

	inner := max(maxWidth-chrome, 1)
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(l.fg)).
		Width(min(lipgloss.Width(n.Message), inner)).
		Render(n.Message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(l.accent)).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}
