// Package document is the block-tree model the column layout engine edits:
// an arena of nodes addressed by stable ids, token positions recomputed from
// the tree, and transactions that either commit a schema-valid document or
// nothing at all.
package document

import "errors"

// Position errors
var (
	// ErrInvalidPosition indicates that a position is outside the document.
	ErrInvalidPosition = errors.New("position out of bounds")

	// ErrNotBoundary indicates that a block-level edit did not start and end
	// on child boundaries of the same parent.
	ErrNotBoundary = errors.New("positions are not sibling boundaries")

	// ErrNotTextblock indicates that a text edit was addressed outside a textblock.
	ErrNotTextblock = errors.New("position is not inside a textblock")
)

// Node errors
var (
	// ErrNodeNotFound indicates that a stable id no longer resolves to a node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrUnknownAttr indicates that an attribute step named an attribute the
	// node type does not carry.
	ErrUnknownAttr = errors.New("unknown attribute")
)

// Transaction errors
var (
	// ErrSchemaViolation indicates that a transaction would commit a document
	// that breaks a structural invariant.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrTransactionFailed indicates that a step inside the transaction failed
	// and the whole transaction was discarded.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrUnknownStep indicates that a step record could not be decoded.
	ErrUnknownStep = errors.New("unknown step kind")

	// ErrStaleTransaction indicates that a transaction was built against a
	// document that is no longer current.
	ErrStaleTransaction = errors.New("transaction built on a stale document")
)
