// Package editor hosts one peer's view of a shared document: the current
// state, the dispatch point every structural command goes through, undo
// history, and the boundary to the event bus that carries transactions to
// other peers.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thenoetrevino/pilar/internal/codec"
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/events"
)

// ErrRemoteRejected indicates that a remote transaction could not be
// applied on top of the local document.
var ErrRemoteRejected = errors.New("remote transaction rejected")

const publishRetries = 3

// Listener is notified after every committed transaction, local or remote.
type Listener func(tr *document.Transaction, state *document.State)

// Editor owns the current state of one document for one peer. It is safe for
// concurrent use: remote events usually arrive on the bus goroutine while the
// UI dispatches local edits.
type Editor struct {
	mu        sync.RWMutex
	state     *document.State
	undo      []historyEntry
	redo      []historyEntry
	listeners []Listener
	outbox    []events.Event

	// pubMu serializes flushes so queued events leave in commit order.
	pubMu sync.Mutex

	docID        string
	peerID       string
	historyLimit int
	publisher    events.EventPublisher
	logger       *slog.Logger
}

// New creates an editor on top of doc with the cursor at the first textblock.
func New(doc *document.Doc, opts ...Option) *Editor {
	e := &Editor{
		state:        document.NewState(doc, document.Cursor(0)),
		docID:        "default",
		peerID:       "local",
		historyLimit: defaultHistoryLimit,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Editor) State() *document.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// DocID returns the id of the document being edited.
func (e *Editor) DocID() string { return e.docID }

// PeerID returns this editor's peer id.
func (e *Editor) PeerID() string { return e.peerID }

// Subscribe registers a listener for committed transactions.
func (e *Editor) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// Dispatch commits tr as the next state. The transaction must have been
// built on the current document. Local document changes are recorded for
// undo (unless the transaction opts out) and published to other peers.
func (e *Editor) Dispatch(tr *document.Transaction) error {
	e.mu.Lock()
	next, listeners, err := e.commit(tr)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.flush()
	for _, l := range listeners {
		l(tr, next)
	}
	return nil
}

// commit swaps in the state after tr. Must be called with the lock held.
func (e *Editor) commit(tr *document.Transaction) (*document.State, []Listener, error) {
	next, err := e.state.Apply(tr)
	if err != nil {
		e.logger.Debug("transaction rejected", "label", tr.Label(), "error", err)
		return nil, nil, fmt.Errorf("dispatch %q: %w", tr.Label(), err)
	}
	prev := e.state
	e.state = next

	if tr.DocChanged() {
		switch {
		case tr.Origin() == document.OriginLocal && tr.AddToHistory():
			e.pushUndo(historyEntry{label: tr.Label(), steps: tr.Inverted(), selection: prev.Selection()})
			e.redo = nil
		case tr.Origin() != document.OriginHistory:
			e.mapHistory(tr.Mapping())
		}
		if tr.Origin() != document.OriginRemote {
			e.enqueue(tr)
		}
	}
	return next, append([]Listener(nil), e.listeners...), nil
}

// enqueue encodes a committed transaction for the transport. Must be called
// with the lock held so the outbox follows commit order.
func (e *Editor) enqueue(tr *document.Transaction) {
	if e.publisher == nil {
		return
	}
	payload, err := codec.EncodeSteps(tr.Records())
	if err != nil {
		e.logger.Error("failed to encode transaction", "label", tr.Label(), "error", err)
		return
	}
	e.outbox = append(e.outbox, events.Event{
		Type:  events.EventTransactionCommitted,
		DocID: e.docID,
		Label: tr.Label(),
		Steps: payload,
	})
}

// flush sends every queued transaction. It must not be called with mu held:
// a full queue backs off for tens of milliseconds and readers of State keep
// going meanwhile. Flushes are serialized and each drains the whole outbox,
// so peers still see local transactions in commit order.
func (e *Editor) flush() {
	e.pubMu.Lock()
	defer e.pubMu.Unlock()

	e.mu.Lock()
	queued := e.outbox
	e.outbox = nil
	e.mu.Unlock()

	for _, event := range queued {
		if err := events.PublishWithRetry(e.publisher, event, publishRetries); err != nil {
			e.logger.Warn("transaction not published", "label", event.Label, "error", err)
		}
	}
}

// ApplyRemote applies a transaction committed by another peer. The local
// selection is mapped through it.
func (e *Editor) ApplyRemote(event events.Event) error {
	if event.Type != events.EventTransactionCommitted || event.PeerID == e.peerID {
		return nil
	}
	if event.DocID != "" && event.DocID != e.docID {
		return nil
	}
	steps, err := codec.DecodeSteps(event.Steps)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRemoteRejected, err)
	}

	e.mu.Lock()
	tr := e.state.Tr().
		SetOrigin(document.OriginRemote).
		SetAddToHistory(false).
		SetLabel(event.Label)
	for _, s := range steps {
		tr.Step(s)
	}
	next, listeners, err := e.commit(tr)
	e.mu.Unlock()
	if err != nil {
		e.logger.Warn("remote transaction rejected",
			"peer_id", event.PeerID,
			"sequence", event.Sequence,
			"label", event.Label,
			"error", err)
		return fmt.Errorf("%w: %w", ErrRemoteRejected, err)
	}
	e.logger.Debug("remote transaction applied",
		"peer_id", event.PeerID,
		"sequence", event.Sequence,
		"label", event.Label)
	for _, l := range listeners {
		l(tr, next)
	}
	return nil
}

// Run applies remote events from the publisher until ctx is done or the
// publisher stops delivering. Used by peers that have no UI loop of their own.
func (e *Editor) Run(ctx context.Context) error {
	if e.publisher == nil {
		return nil
	}
	in, err := e.publisher.Listen(ctx)
	if err != nil {
		return err
	}
	for event := range in {
		_ = e.ApplyRemote(event)
	}
	return ctx.Err()
}

// SetSelection moves the selection without touching the document or
// history.
func (e *Editor) SetSelection(sel document.Selection) error {
	tr := e.State().Tr().
		SetSelection(sel).
		SetAddToHistory(false).
		SetLabel("select")
	return e.Dispatch(tr)
}
