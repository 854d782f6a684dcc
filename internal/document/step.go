package document

import (
	"fmt"
	"unicode/utf8"
)

// Step is one primitive edit. Apply mutates the document it is given, which
// is always a transaction's private copy.
type Step interface {
	Apply(d *Doc) (StepMap, error)

	// Invert returns the step that undoes this one, computed against the
	// document the step is about to be applied to. Nil when the step cannot
	// apply there.
	Invert(before *Doc) Step

	// Map moves the step through later changes. Nil when the content it
	// addressed was deleted.
	Map(m Mapping) Step

	Record() StepRecord
}

// StepMap describes how one step moved positions: the range
// [Start, Start+OldSize) was replaced by NewSize tokens.
type StepMap struct {
	Start   int
	OldSize int
	NewSize int
}

// Map moves pos through the step. assoc decides which side of an insertion
// exactly at pos the result lands on: negative stays before, otherwise after.
func (m StepMap) Map(pos, assoc int) int {
	end := m.Start + m.OldSize
	if pos < m.Start {
		return pos
	}
	if pos > end {
		return pos + m.NewSize - m.OldSize
	}
	side := assoc
	if m.OldSize > 0 {
		switch pos {
		case m.Start:
			side = -1
		case end:
			side = 1
		}
	}
	if side < 0 {
		return m.Start
	}
	return m.Start + m.NewSize
}

// Deleted reports whether pos sat strictly inside the replaced range.
func (m StepMap) Deleted(pos int) bool {
	return m.OldSize > 0 && pos > m.Start && pos < m.Start+m.OldSize
}

// Mapping is the ordered list of step maps of a transaction.
type Mapping []StepMap

// Map moves pos through every step in order.
func (mp Mapping) Map(pos, assoc int) int {
	pos, _ = mp.MapResult(pos, assoc)
	return pos
}

// MapResult is Map that also reports whether any step deleted the content
// around pos.
func (mp Mapping) MapResult(pos, assoc int) (int, bool) {
	deleted := false
	for _, m := range mp {
		if m.Deleted(pos) {
			deleted = true
		}
		pos = m.Map(pos, assoc)
	}
	return pos, deleted
}

// ReplaceStep replaces the children between two boundaries of the same
// container with new nodes.
type ReplaceStep struct {
	From  int
	To    int
	Nodes []*Spec
}

// Apply implements Step. Node ids are settled while applying, so after a
// successful Apply the step's Nodes carry the exact ids that were inserted.
func (s *ReplaceStep) Apply(d *Doc) (StepMap, error) {
	if s.From > s.To {
		return StepMap{}, fmt.Errorf("%w: replace from %d after to %d", ErrInvalidPosition, s.From, s.To)
	}
	from, err := d.Resolve(s.From)
	if err != nil {
		return StepMap{}, err
	}
	to, err := d.Resolve(s.To)
	if err != nil {
		return StepMap{}, err
	}
	parent := from.Parent()
	if parent.Type.IsTextblock() || to.Parent().ID != parent.ID {
		return StepMap{}, fmt.Errorf("%w: replace %d..%d", ErrNotBoundary, s.From, s.To)
	}

	start, end := from.Index(from.Depth()), to.Index(to.Depth())
	removed := parent.Children[start:end]
	for _, id := range removed {
		d.remove(id)
	}

	s.Nodes = d.settleIDs(s.Nodes)
	inserted := make([]NodeID, 0, len(s.Nodes))
	for _, spec := range s.Nodes {
		inserted = append(inserted, d.materialize(spec, parent.ID))
	}

	children := make([]NodeID, 0, len(parent.Children)-len(removed)+len(inserted))
	children = append(children, parent.Children[:start]...)
	children = append(children, inserted...)
	children = append(children, parent.Children[end:]...)
	parent.Children = children

	return StepMap{Start: s.From, OldSize: s.To - s.From, NewSize: SpecsSize(s.Nodes)}, nil
}

// Invert implements Step.
func (s *ReplaceStep) Invert(before *Doc) Step {
	from, err := before.Resolve(s.From)
	if err != nil {
		return nil
	}
	to, err := before.Resolve(s.To)
	if err != nil || from.Parent().ID != to.Parent().ID || from.Parent().Type.IsTextblock() {
		return nil
	}
	parent := from.Parent()
	var removed []*Spec
	for _, id := range parent.Children[from.Index(from.Depth()):to.Index(to.Depth())] {
		spec, _ := before.Extract(id)
		removed = append(removed, spec)
	}
	return &ReplaceStep{From: s.From, To: s.From + SpecsSize(s.Nodes), Nodes: removed}
}

// Map implements Step.
func (s *ReplaceStep) Map(m Mapping) Step {
	from, fromDeleted := m.MapResult(s.From, 1)
	to, toDeleted := m.MapResult(s.To, -1)
	if fromDeleted || toDeleted || to < from {
		return nil
	}
	return &ReplaceStep{From: from, To: to, Nodes: s.Nodes}
}

// Record implements Step.
func (s *ReplaceStep) Record() StepRecord {
	return StepRecord{Kind: StepKindReplace, From: s.From, To: s.To, Nodes: s.Nodes}
}

// settleIDs returns copies of specs where every id is one the document does
// not hold yet.
func (d *Doc) settleIDs(specs []*Spec) []*Spec {
	seen := make(map[NodeID]bool)
	var settle func(s *Spec)
	settle = func(s *Spec) {
		if _, taken := d.nodes[s.ID]; s.ID == "" || taken || seen[s.ID] {
			s.ID = d.newID()
		}
		seen[s.ID] = true
		for _, c := range s.Content {
			settle(c)
		}
	}
	out := make([]*Spec, 0, len(specs))
	for _, s := range specs {
		cp := s.Clone()
		settle(cp)
		out = append(out, cp)
	}
	return out
}

// TextStep deletes Delete runes at Pos and inserts Insert in their place, all
// inside one textblock.
type TextStep struct {
	Pos    int
	Delete int
	Insert string
}

// Apply implements Step.
func (s *TextStep) Apply(d *Doc) (StepMap, error) {
	rp, err := d.Resolve(s.Pos)
	if err != nil {
		return StepMap{}, err
	}
	block := rp.Parent()
	if !block.Type.IsTextblock() {
		return StepMap{}, fmt.Errorf("%w: text edit at %d", ErrNotTextblock, s.Pos)
	}
	runes := []rune(block.Text)
	offset := rp.ParentOffset()
	if s.Delete < 0 || offset+s.Delete > len(runes) {
		return StepMap{}, fmt.Errorf("%w: delete %d runes at %d", ErrInvalidPosition, s.Delete, s.Pos)
	}
	text := string(runes[:offset]) + s.Insert + string(runes[offset+s.Delete:])
	block.Text = text
	return StepMap{Start: s.Pos, OldSize: s.Delete, NewSize: utf8.RuneCountInString(s.Insert)}, nil
}

// Invert implements Step.
func (s *TextStep) Invert(before *Doc) Step {
	rp, err := before.Resolve(s.Pos)
	if err != nil || !rp.Parent().Type.IsTextblock() {
		return nil
	}
	runes := []rune(rp.Parent().Text)
	offset := rp.ParentOffset()
	if s.Delete < 0 || offset+s.Delete > len(runes) {
		return nil
	}
	return &TextStep{
		Pos:    s.Pos,
		Delete: utf8.RuneCountInString(s.Insert),
		Insert: string(runes[offset : offset+s.Delete]),
	}
}

// Map implements Step.
func (s *TextStep) Map(m Mapping) Step {
	from, fromDeleted := m.MapResult(s.Pos, 1)
	to, toDeleted := m.MapResult(s.Pos+s.Delete, -1)
	if fromDeleted || toDeleted || to < from {
		return nil
	}
	return &TextStep{Pos: from, Delete: to - from, Insert: s.Insert}
}

// Record implements Step.
func (s *TextStep) Record() StepRecord {
	return StepRecord{Kind: StepKindText, From: s.Pos, To: s.Pos + s.Delete, Text: s.Insert}
}

// Attribute keys understood by AttrStep.
const (
	AttrWidth = "width"
	AttrLevel = "level"
)

// AttrStep sets one attribute on the node that starts at Pos.
type AttrStep struct {
	Pos   int
	Key   string
	Value float64
}

// Apply implements Step.
func (s *AttrStep) Apply(d *Doc) (StepMap, error) {
	n, ok := d.NodeAt(s.Pos)
	if !ok {
		return StepMap{}, fmt.Errorf("%w: no node at %d", ErrNodeNotFound, s.Pos)
	}
	switch {
	case s.Key == AttrWidth && n.Type == TypeColumn:
		n.Attrs.Width = s.Value
	case s.Key == AttrLevel && n.Type == TypeHeading:
		n.Attrs.Level = int(s.Value)
	default:
		return StepMap{}, fmt.Errorf("%w: %q on %s", ErrUnknownAttr, s.Key, n.Type)
	}
	return StepMap{Start: s.Pos}, nil
}

// Invert implements Step.
func (s *AttrStep) Invert(before *Doc) Step {
	n, ok := before.NodeAt(s.Pos)
	if !ok {
		return nil
	}
	switch {
	case s.Key == AttrWidth && n.Type == TypeColumn:
		return &AttrStep{Pos: s.Pos, Key: s.Key, Value: n.Attrs.Width}
	case s.Key == AttrLevel && n.Type == TypeHeading:
		return &AttrStep{Pos: s.Pos, Key: s.Key, Value: float64(n.Attrs.Level)}
	}
	return nil
}

// Map implements Step.
func (s *AttrStep) Map(m Mapping) Step {
	pos, deleted := m.MapResult(s.Pos, 1)
	if deleted || m.Map(s.Pos+1, -1) <= pos {
		return nil
	}
	return &AttrStep{Pos: pos, Key: s.Key, Value: s.Value}
}

// Record implements Step.
func (s *AttrStep) Record() StepRecord {
	return StepRecord{Kind: StepKindAttr, From: s.Pos, Key: s.Key, Value: s.Value}
}

// Step kinds as they appear in a StepRecord.
const (
	StepKindReplace = "replace"
	StepKindText    = "text"
	StepKindAttr    = "attr"
)

// StepRecord is the flat, encodable form of a step.
type StepRecord struct {
	Kind  string  `cbor:"kind"`
	From  int     `cbor:"from"`
	To    int     `cbor:"to,omitempty"`
	Nodes []*Spec `cbor:"nodes,omitempty"`
	Text  string  `cbor:"text,omitempty"`
	Key   string  `cbor:"key,omitempty"`
	Value float64 `cbor:"value,omitempty"`
}

// StepFromRecord rebuilds a step from its record.
func StepFromRecord(r StepRecord) (Step, error) {
	switch r.Kind {
	case StepKindReplace:
		return &ReplaceStep{From: r.From, To: r.To, Nodes: r.Nodes}, nil
	case StepKindText:
		return &TextStep{Pos: r.From, Delete: r.To - r.From, Insert: r.Text}, nil
	case StepKindAttr:
		return &AttrStep{Pos: r.From, Key: r.Key, Value: r.Value}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, r.Kind)
	}
}
