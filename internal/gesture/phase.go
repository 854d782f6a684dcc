package gesture

import (
	"fmt"
	"slices"
)

// Phase is the lifecycle stage of a pointer gesture.
type Phase int

const (
	Idle Phase = iota
	Hovering
	Dragging
	Resizing
	Committing
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case Committing:
		return "committing"
	case Cancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

var transitions = map[Phase][]Phase{
	Idle:       {Hovering},
	Hovering:   {Idle, Hovering, Dragging, Resizing},
	Dragging:   {Committing, Cancelled},
	Resizing:   {Committing, Cancelled},
	Committing: {Idle},
	Cancelled:  {Idle},
}

// Machine enforces the gesture lifecycle and owns the overlay. The overlay is
// replaced on entering Hovering, Dragging or Resizing and cleared on
// returning to Idle, so no visual state outlives its gesture.
type Machine struct {
	phase   Phase
	overlay Overlay
}

// NewMachine creates a machine in the Idle phase.
func NewMachine() *Machine {
	return &Machine{phase: Idle}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Overlay returns a copy of the current overlay.
func (m *Machine) Overlay() Overlay {
	return m.overlay
}

// Active reports whether a drag or resize is running.
func (m *Machine) Active() bool {
	return m.phase == Dragging || m.phase == Resizing
}

// Transition moves to the next phase.
func (m *Machine) Transition(to Phase) error {
	if !slices.Contains(transitions[m.phase], to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.phase, to)
	}
	m.phase = to
	switch to {
	case Idle, Hovering, Dragging, Resizing:
		m.overlay = Overlay{}
	}
	return nil
}

// Finish walks an active gesture through Committing or Cancelled back to
// Idle.
func (m *Machine) Finish(commit bool) {
	if !m.Active() {
		return
	}
	end := Cancelled
	if commit {
		end = Committing
	}
	_ = m.Transition(end)
	_ = m.Transition(Idle)
}

// overlayRef gives controllers write access to the overlay of the running
// gesture.
func (m *Machine) overlayRef() *Overlay {
	return &m.overlay
}
