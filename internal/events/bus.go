package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultQueueSize = 100

// Bus is an in-process transport that fans every event out to all other
// joined peers. It assigns the global sequence numbers, so every peer sees
// events in the same order.
type Bus struct {
	mu        sync.Mutex
	clients   map[string]*Client
	sequence  int64
	queueSize int
	logger    *slog.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithBusLogger sets the logger used for dropped deliveries.
func WithBusLogger(logger *slog.Logger) BusOption {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithQueueSize sets the per-client queue length for both directions.
func WithQueueSize(n int) BusOption {
	return func(b *Bus) {
		if n > 0 {
			b.queueSize = n
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		clients:   make(map[string]*Client),
		queueSize: defaultQueueSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Join attaches a peer and returns its client. Joining twice with the same
// peer id replaces the earlier client.
func (b *Bus) Join(peerID string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		bus:        b,
		peerID:     peerID,
		eventQueue: make(chan Event, b.queueSize),
		inbox:      make(chan Event, b.queueSize),
		ctx:        ctx,
		cancel:     cancel,
		senderDone: make(chan struct{}),
	}

	b.mu.Lock()
	b.clients[peerID] = c
	b.mu.Unlock()

	go c.startSender()
	return c
}

// Peers returns the number of joined peers.
func (b *Bus) Peers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// deliver stamps the next sequence number on e and hands it to every peer
// except the sender. A peer whose inbox is full misses the event.
func (b *Bus) deliver(from string, e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sequence++
	e.Sequence = b.sequence
	for id, c := range b.clients {
		if id == from {
			continue
		}
		select {
		case c.inbox <- e:
		default:
			b.logger.Warn("event dropped, peer inbox full",
				"peer_id", id,
				"doc_id", e.DocID,
				"sequence", e.Sequence)
		}
	}
}

func (b *Bus) leave(c *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clients[c.peerID] == c {
		delete(b.clients, c.peerID)
	}
}

// Client is one peer's connection to a Bus.
type Client struct {
	bus    *Bus
	peerID string

	mu           sync.Mutex
	docID        string
	closed       bool
	lastSequence int64

	eventQueue chan Event // outgoing
	inbox      chan Event // incoming, filled by the bus

	ctx        context.Context
	cancel     context.CancelFunc
	senderDone chan struct{}
}

// PeerID returns the id the client joined with.
func (c *Client) PeerID() string {
	return c.peerID
}

// SendEvent queues an event for delivery. It never blocks.
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// startSender forwards queued events to the bus until the queue is closed.
func (c *Client) startSender() {
	defer close(c.senderDone)

	for event := range c.eventQueue {
		event.PeerID = c.peerID
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now()
		}
		c.bus.deliver(c.peerID, event)
	}
}

// Listen returns a channel of events committed by other peers. The channel
// is closed when ctx is done or the client is closed. Events already seen
// (by sequence) and events for other documents are skipped.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.ctx.Done():
			return
		case event := <-c.inbox:
			if !c.accept(event) {
				continue
			}
			select {
			case eventChan <- event:
			case <-ctx.Done():
				return
			case <-c.ctx.Done():
				return
			}
		}
	}
}

func (c *Client) accept(event Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if event.Sequence <= c.lastSequence {
		return false
	}
	if c.docID != "" && event.DocID != c.docID {
		return false
	}
	c.lastSequence = event.Sequence
	return true
}

// Subscribe restricts delivery to one document. "" means all documents.
func (c *Client) Subscribe(docID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.docID = docID
	return nil
}

// Close flushes queued events, stops listeners and leaves the bus. It is
// safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.eventQueue)
	c.mu.Unlock()

	// Wait for the sender to flush pending events
	<-c.senderDone

	c.cancel()
	c.bus.leave(c)
	return nil
}
