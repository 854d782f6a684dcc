package document

import "fmt"

// Origin tells where a transaction came from.
type Origin int

const (
	OriginLocal Origin = iota
	OriginRemote
	OriginHistory
)

func (o Origin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginHistory:
		return "history"
	default:
		return "local"
	}
}

// Transaction batches steps against a private copy of a document. Steps are
// applied as they are added; the first failing step poisons the transaction
// and every later call becomes a no-op. Nothing is visible outside the
// transaction until a State applies it.
type Transaction struct {
	before  *Doc
	doc     *Doc
	steps   []Step
	inverse []Step
	mapping Mapping
	err     error

	selection    *Selection
	addToHistory bool
	origin       Origin
	label        string
}

// NewTransaction starts a transaction on top of d.
func NewTransaction(d *Doc) *Transaction {
	return &Transaction{
		before:       d,
		doc:          d.Clone(),
		addToHistory: true,
	}
}

// Before returns the document the transaction was started from.
func (tr *Transaction) Before() *Doc { return tr.before }

// Doc returns the document with every step applied so far.
func (tr *Transaction) Doc() *Doc { return tr.doc }

// Steps returns the applied steps.
func (tr *Transaction) Steps() []Step { return tr.steps }

// Mapping maps positions from the starting document into Doc.
func (tr *Transaction) Mapping() Mapping { return tr.mapping }

// DocChanged reports whether any step was applied.
func (tr *Transaction) DocChanged() bool { return len(tr.steps) > 0 }

// Err returns the error of the first failed step.
func (tr *Transaction) Err() error { return tr.err }

// Step applies s to the transaction's document.
func (tr *Transaction) Step(s Step) *Transaction {
	if tr.err != nil {
		return tr
	}
	inv := s.Invert(tr.doc)
	m, err := s.Apply(tr.doc)
	if err != nil {
		tr.err = fmt.Errorf("%w: step %d: %w", ErrTransactionFailed, len(tr.steps), err)
		return tr
	}
	tr.steps = append(tr.steps, s)
	tr.inverse = append(tr.inverse, inv)
	tr.mapping = append(tr.mapping, m)
	return tr
}

// Replace replaces the blocks between two sibling boundaries.
func (tr *Transaction) Replace(from, to int, nodes ...*Spec) *Transaction {
	return tr.Step(&ReplaceStep{From: from, To: to, Nodes: nodes})
}

// Insert inserts blocks at a boundary.
func (tr *Transaction) Insert(pos int, nodes ...*Spec) *Transaction {
	return tr.Replace(pos, pos, nodes...)
}

// Delete removes the blocks between two sibling boundaries.
func (tr *Transaction) Delete(from, to int) *Transaction {
	return tr.Replace(from, to)
}

// InsertText inserts text at a position inside a textblock.
func (tr *Transaction) InsertText(pos int, text string) *Transaction {
	return tr.Step(&TextStep{Pos: pos, Insert: text})
}

// DeleteText deletes the text between two positions of one textblock.
func (tr *Transaction) DeleteText(from, to int) *Transaction {
	return tr.Step(&TextStep{Pos: from, Delete: to - from})
}

// SetAttr sets an attribute on the node starting at pos.
func (tr *Transaction) SetAttr(pos int, key string, value float64) *Transaction {
	return tr.Step(&AttrStep{Pos: pos, Key: key, Value: value})
}

// SetSelection pins the selection the state takes after the transaction,
// in positions of the transaction's document.
func (tr *Transaction) SetSelection(sel Selection) *Transaction {
	tr.selection = &sel
	return tr
}

// Selection returns the pinned selection, if any.
func (tr *Transaction) Selection() (Selection, bool) {
	if tr.selection == nil {
		return Selection{}, false
	}
	return *tr.selection, true
}

// SetAddToHistory controls whether the transaction can be undone.
func (tr *Transaction) SetAddToHistory(add bool) *Transaction {
	tr.addToHistory = add
	return tr
}

// AddToHistory reports whether the transaction is recorded for undo.
func (tr *Transaction) AddToHistory() bool { return tr.addToHistory }

// SetOrigin marks where the transaction came from.
func (tr *Transaction) SetOrigin(o Origin) *Transaction {
	tr.origin = o
	return tr
}

// Origin returns where the transaction came from.
func (tr *Transaction) Origin() Origin { return tr.origin }

// SetLabel names the transaction for logs and events.
func (tr *Transaction) SetLabel(label string) *Transaction {
	tr.label = label
	return tr
}

// Label returns the transaction's label.
func (tr *Transaction) Label() string { return tr.label }

// Commit validates the resulting document. A transaction that fails here
// must be discarded.
func (tr *Transaction) Commit() error {
	if tr.err != nil {
		return tr.err
	}
	if err := Check(tr.doc); err != nil {
		return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}
	return nil
}

// Inverted returns the steps that undo the transaction, in the order they
// must be applied.
func (tr *Transaction) Inverted() []Step {
	out := make([]Step, 0, len(tr.inverse))
	for i := len(tr.inverse) - 1; i >= 0; i-- {
		out = append(out, tr.inverse[i])
	}
	return out
}

// Records returns the encodable form of every applied step.
func (tr *Transaction) Records() []StepRecord {
	out := make([]StepRecord, 0, len(tr.steps))
	for _, s := range tr.steps {
		out = append(out, s.Record())
	}
	return out
}
