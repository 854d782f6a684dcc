package state

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationState_Add(t *testing.T) {
	s := NewNotificationState()
	s.Add(LevelError, "column commands are locked")
	s.Add(LevelError, "column commands are locked")
	assert.Len(t, s.All(), 1, "a repeated message does not stack")

	s.Add(LevelInfo, "one")
	s.Add(LevelInfo, "two")
	s.Add(LevelWarning, "three")
	assert.Len(t, s.All(), maxNotifications)
	assert.Equal(t, "one", s.All()[0].Message, "oldest dropped first")

	s.Dismiss()
	assert.Equal(t, "two", s.All()[0].Message)

	s.Clear()
	assert.True(t, s.Empty())
}

func TestNotificationState_Layers(t *testing.T) {
	plain := func(n Notification, _ int) string { return n.Message }

	s := NewNotificationState()
	s.Add(LevelInfo, "older")
	assert.Empty(t, s.Layers(plain), "no layers before the window size is known")

	s.SetWindowSize(40, 10)
	s.Add(LevelInfo, "newer")
	layers := s.Layers(plain)
	assert.Len(t, layers, 2)

	blank := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", 40)+"\n", 10), "\n")
	base := lipgloss.NewLayer(blank)
	lines := strings.Split(lipgloss.NewCanvas(append([]*lipgloss.Layer{base}, layers...)...).Render(), "\n")
	require.Len(t, lines, 10)
	assert.Empty(t, strings.TrimSpace(lines[9]), "the status bar row stays free")
	assert.Equal(t, "newer", strings.TrimSpace(lines[8]))
	assert.Equal(t, "older", strings.TrimSpace(lines[7]))

	s.SetWindowSize(40, 2)
	assert.Len(t, s.Layers(plain), 1, "what does not fit is left out")
}

func TestUIState(t *testing.T) {
	s := NewUIState()
	assert.Equal(t, NormalMode, s.Mode())
	s.SetHeight(1)
	assert.Equal(t, 1, s.ContentHeight())
	s.SetHeight(24)
	assert.Equal(t, 23, s.ContentHeight())
	s.SetMode(ColumnMenuMode)
	assert.Equal(t, "column menu", s.Mode().String())
}
