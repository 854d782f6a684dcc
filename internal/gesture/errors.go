package gesture

import "errors"

// Gesture errors
var (
	// Lifecycle errors
	ErrIllegalTransition = errors.New("illegal gesture transition")
	ErrGestureActive     = errors.New("a gesture is already in progress")
	ErrNoGesture         = errors.New("no gesture in progress")

	// Resolution errors
	ErrStaleGesture = errors.New("gesture target no longer exists")
	ErrNoLayout     = errors.New("no layout for column group")
	ErrInvalidHit   = errors.New("pointer is not on a column handle or gap")

	// Handler errors
	ErrGesturePanic = errors.New("gesture handler panicked")
)
