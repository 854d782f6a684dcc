package document

// Selection is a text selection between two positions. A collapsed selection
// is a cursor.
type Selection struct {
	Anchor int `cbor:"anchor"`
	Head   int `cbor:"head"`
}

// Cursor returns a collapsed selection at pos.
func Cursor(pos int) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// Empty reports whether the selection is a cursor.
func (s Selection) Empty() bool { return s.Anchor == s.Head }

// From returns the lower end of the selection.
func (s Selection) From() int { return min(s.Anchor, s.Head) }

// To returns the upper end of the selection.
func (s Selection) To() int { return max(s.Anchor, s.Head) }

// State is an immutable document plus selection.
type State struct {
	doc *Doc
	sel Selection
}

// NewState pairs a document with a selection, snapping the selection into
// a textblock.
func NewState(d *Doc, sel Selection) *State {
	return &State{
		doc: d,
		sel: Selection{Anchor: d.TextPosNear(sel.Anchor), Head: d.TextPosNear(sel.Head)},
	}
}

// Doc returns the state's document.
func (s *State) Doc() *Doc { return s.doc }

// Selection returns the state's selection.
func (s *State) Selection() Selection { return s.sel }

// Tr starts a transaction on the state's document.
func (s *State) Tr() *Transaction {
	return NewTransaction(s.doc)
}

// Apply commits tr and returns the next state. The selection is the one the
// transaction pinned, or the old one mapped through the transaction's steps.
func (s *State) Apply(tr *Transaction) (*State, error) {
	if tr.Before() != s.doc {
		return nil, ErrStaleTransaction
	}
	if err := tr.Commit(); err != nil {
		return nil, err
	}
	sel, ok := tr.Selection()
	if !ok {
		m := tr.Mapping()
		sel = Selection{Anchor: m.Map(s.sel.Anchor, 1), Head: m.Map(s.sel.Head, 1)}
	}
	return NewState(tr.Doc(), sel), nil
}
