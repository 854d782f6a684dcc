package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode     Mode = iota // Typing and pointer gestures
	ColumnMenuMode             // Structural-edit menu of a column is open
	HelpMode                   // Displaying help screen
)

func (m Mode) String() string {
	switch m {
	case NormalMode:
		return "normal"
	case ColumnMenuMode:
		return "column menu"
	case HelpMode:
		return "help"
	}
	return "unknown"
}

// UIState manages the user interface state: terminal dimensions and the
// current interaction mode.
type UIState struct {
	width  int
	height int
	mode   Mode
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{mode: NormalMode}
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width.
func (s *UIState) SetWidth(width int) {
	s.width = width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the rows left for the document once the status bar
// is drawn, ensuring a minimum of 1.
func (s *UIState) ContentHeight() int {
	const statusBarHeight = 1
	return max(s.height-statusBarHeight, 1)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}
