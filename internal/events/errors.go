package events

import "errors"

var (
	// ErrQueueFull indicates that the outgoing queue could not take another
	// event without blocking.
	ErrQueueFull = errors.New("event queue full")

	// ErrClosed indicates that the client was already closed.
	ErrClosed = errors.New("event client closed")
)
