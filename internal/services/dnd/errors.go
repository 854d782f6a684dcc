package dnd

import "errors"

// Drop planning errors
var (
	// Resolution errors
	ErrDraggedNotFound = errors.New("dragged node not found")
	ErrTargetNotFound  = errors.New("drop target not found")

	// Validation errors
	ErrSameNode      = errors.New("cannot drop a node onto itself")
	ErrCycle         = errors.New("drop target is inside the dragged node")
	ErrNotDraggable  = errors.New("node cannot be dragged")
	ErrInvalidTarget = errors.New("invalid drop target")
	ErrNothingToDrop = errors.New("dragged node has no content")

	// Planning errors
	ErrPlanningPanic = errors.New("drop planning panicked")
)
