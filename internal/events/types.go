package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	// EventTransactionCommitted carries the steps of one committed local
	// transaction to the other peers editing the same document.
	EventTransactionCommitted EventType = "tx_committed"
)

// Event is one committed transaction as it travels between peers.
type Event struct {
	Type      EventType `cbor:"type"`
	DocID     string    `cbor:"doc_id"`
	PeerID    string    `cbor:"peer_id"`  // who committed it
	Sequence  int64     `cbor:"sequence"` // assigned by the bus, monotonically increasing
	Timestamp time.Time `cbor:"timestamp"`
	Label     string    `cbor:"label,omitempty"`
	Steps     []byte    `cbor:"steps"` // codec.EncodeSteps payload
}
