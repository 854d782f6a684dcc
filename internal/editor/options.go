package editor

import (
	"log/slog"

	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/events"
)

// Option is a functional option for configuring an Editor
type Option func(*Editor)

// WithPublisher connects the editor to the synchronization transport
func WithPublisher(p events.EventPublisher) Option {
	return func(e *Editor) {
		e.publisher = p
	}
}

// WithLogger sets the logger for the editor
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithDocID names the shared document this editor works on
func WithDocID(id string) Option {
	return func(e *Editor) {
		e.docID = id
	}
}

// WithPeerID sets the id this editor publishes under
func WithPeerID(id string) Option {
	return func(e *Editor) {
		e.peerID = id
	}
}

// WithHistoryLimit caps the number of undoable transactions
func WithHistoryLimit(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.historyLimit = n
		}
	}
}

// WithSelection sets the initial selection
func WithSelection(sel document.Selection) Option {
	return func(e *Editor) {
		e.state = document.NewState(e.state.Doc(), sel)
	}
}
