package events

import "context"

// EventPublisher is the boundary to the synchronization transport. Editors
// send their committed transactions through it and listen for everyone
// else's.
type EventPublisher interface {
	// SendEvent queues an event for delivery to the other peers
	SendEvent(event Event) error

	// Listen starts delivering events committed by other peers
	Listen(ctx context.Context) (<-chan Event, error)

	// Subscribe restricts delivery to one document ("" means every document)
	Subscribe(docID string) error

	// Close stops delivery and releases the peer's slot on the transport
	Close() error
}

// Compile-time verification that *Client implements EventPublisher
var _ EventPublisher = (*Client)(nil)
