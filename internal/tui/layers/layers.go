// Package layers provides utility functions for creating and positioning UI
// layers on the canvas
package layers

import "charm.land/lipgloss/v2"

// CreateCenteredLayer creates a layer positioned at the center of the screen.
// Returns nil if content is empty.
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	contentWidth := lipgloss.Width(content)
	contentHeight := lipgloss.Height(content)

	x := (screenWidth - contentWidth) / 2
	y := (screenHeight - contentHeight) / 2

	x = max(x, 0)
	y = max(y, 0)

	return lipgloss.NewLayer(content).X(x).Y(y).Z(ZHelp)
}

// Anchor returns the top-left corner for a box of the given size anchored
// at x, y, shifted back inside the screen when it would overflow.
func Anchor(x, y, width, height, screenWidth, screenHeight int) (int, int) {
	if x+width > screenWidth {
		x = screenWidth - width
	}
	if y+height > screenHeight {
		y = screenHeight - height
	}
	return max(x, 0), max(y, 0)
}

// CreateAnchoredLayer creates a layer whose top-left corner is anchored at
// x, y and kept on screen. Returns nil if content is empty.
func CreateAnchoredLayer(content string, x, y, z, screenWidth, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}
	x, y = Anchor(x, y, lipgloss.Width(content), lipgloss.Height(content), screenWidth, screenHeight)
	return lipgloss.NewLayer(content).X(x).Y(y).Z(z)
}
