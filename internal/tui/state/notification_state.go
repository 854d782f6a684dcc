package state

import "charm.land/lipgloss/v2"

// zNotification keeps notifications above gesture overlays and menus
const zNotification = 10

// maxNotifications caps the stack; the oldest notification is dropped first.
const maxNotifications = 3

// NotificationLevel is how serious a notification is.
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelWarning
	LevelError
)

// Notification is one message shown over the document.
type Notification struct {
	Level   NotificationLevel
	Message string
}

// NotificationState is the stack of messages about rejected commands,
// aborted gestures and failed remote edits. The newest is last.
type NotificationState struct {
	items  []Notification
	width  int
	height int
}

// NewNotificationState creates an empty stack.
func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Add pushes a notification. Repeating the newest message does not stack.
func (s *NotificationState) Add(level NotificationLevel, message string) {
	if n := len(s.items); n > 0 && s.items[n-1].Message == message {
		return
	}
	s.items = append(s.items, Notification{Level: level, Message: message})
	if len(s.items) > maxNotifications {
		s.items = s.items[len(s.items)-maxNotifications:]
	}
}

// Dismiss removes the oldest notification.
func (s *NotificationState) Dismiss() {
	if len(s.items) > 0 {
		s.items = s.items[1:]
	}
}

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.items = nil
}

// All returns the notifications, oldest first.
func (s *NotificationState) All() []Notification {
	return s.items
}

// Empty reports whether nothing is shown.
func (s *NotificationState) Empty() bool {
	return len(s.items) == 0
}

// SetWindowSize records the screen size the layers are placed in.
func (s *NotificationState) SetWindowSize(width, height int) {
	s.width = width
	s.height = height
}

// Layers stacks the rendered notifications upward from the bottom-right
// corner, just above the status bar, newest lowest. Notifications that no
// longer fit are left out.
func (s *NotificationState) Layers(render func(n Notification, maxWidth int) string) []*lipgloss.Layer {
	if s.width == 0 {
		return nil
	}

	var out []*lipgloss.Layer
	bottom := s.height - 1 // status bar row
	for i := len(s.items) - 1; i >= 0; i-- {
		view := render(s.items[i], s.width)
		top := bottom - lipgloss.Height(view)
		if top < 0 {
			break
		}
		x := max(s.width-lipgloss.Width(view)-1, 0)
		out = append(out, lipgloss.NewLayer(view).X(x).Y(top).Z(zNotification))
		bottom = top
	}
	return out
}
