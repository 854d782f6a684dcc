package document

import "unicode/utf8"

// Spec is a detached subtree: content that is about to be inserted into a
// document, or that was extracted from one. An empty ID means "assign a fresh
// id on insert".
type Spec struct {
	ID      NodeID   `cbor:"id,omitempty" json:"id,omitempty"`
	Type    NodeType `cbor:"type" json:"type"`
	Attrs   Attrs    `cbor:"attrs" json:"attrs"`
	Text    string   `cbor:"text,omitempty" json:"text,omitempty"`
	Content []*Spec  `cbor:"content,omitempty" json:"content,omitempty"`
}

// DocSpec builds a doc root holding the given blocks.
func DocSpec(blocks ...*Spec) *Spec {
	return &Spec{Type: TypeDoc, Content: blocks}
}

// Paragraph builds a paragraph holding text.
func Paragraph(text string) *Spec {
	return &Spec{Type: TypeParagraph, Text: text}
}

// Heading builds a heading of the given level.
func Heading(level int, text string) *Spec {
	return &Spec{Type: TypeHeading, Attrs: Attrs{Level: level}, Text: text}
}

// Column builds a column with the given width weight and blocks.
func Column(width float64, blocks ...*Spec) *Spec {
	return &Spec{Type: TypeColumn, Attrs: Attrs{Width: width}, Content: blocks}
}

// EmptyColumn builds a default-width column holding one empty paragraph.
func EmptyColumn() *Spec {
	return Column(DefaultColumnWidth, Paragraph(""))
}

// ColumnGroup builds a group from columns.
func ColumnGroup(columns ...*Spec) *Spec {
	return &Spec{Type: TypeColumnGroup, Content: columns}
}

// WithID pins the id the spec will be inserted under when it is free.
func (s *Spec) WithID(id NodeID) *Spec {
	s.ID = id
	return s
}

// Size returns the number of position tokens the spec occupies once inserted.
func (s *Spec) Size() int {
	if s.Type.IsTextblock() {
		return 2 + utf8.RuneCountInString(s.Text)
	}
	size := 2
	for _, c := range s.Content {
		size += c.Size()
	}
	return size
}

// Clone deep-copies the spec, keeping ids.
func (s *Spec) Clone() *Spec {
	cp := *s
	cp.Content = nil
	for _, c := range s.Content {
		cp.Content = append(cp.Content, c.Clone())
	}
	return &cp
}

// Fresh deep-copies the spec and clears every id so the copy is inserted as
// new nodes.
func (s *Spec) Fresh() *Spec {
	cp := s.Clone()
	cp.clearIDs()
	return cp
}

func (s *Spec) clearIDs() {
	s.ID = ""
	for _, c := range s.Content {
		c.clearIDs()
	}
}

// SpecsSize sums the sizes of a run of specs.
func SpecsSize(specs []*Spec) int {
	size := 0
	for _, s := range specs {
		size += s.Size()
	}
	return size
}

// Extract detaches a copy of the subtree rooted at id, keeping ids.
func (d *Doc) Extract(id NodeID) (*Spec, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, false
	}
	s := &Spec{ID: n.ID, Type: n.Type, Attrs: n.Attrs, Text: n.Text}
	for _, cid := range n.Children {
		child, _ := d.Extract(cid)
		s.Content = append(s.Content, child)
	}
	return s, true
}

// ExtractChildren detaches copies of every child of the node, keeping ids.
func (d *Doc) ExtractChildren(id NodeID) []*Spec {
	n, ok := d.nodes[id]
	if !ok {
		return nil
	}
	out := make([]*Spec, 0, len(n.Children))
	for _, cid := range n.Children {
		child, _ := d.Extract(cid)
		out = append(out, child)
	}
	return out
}

// Spec returns the whole document as a detached spec.
func (d *Doc) Spec() *Spec {
	s, _ := d.Extract(d.root)
	return s
}

// Equal reports whether two specs have the same shape, attributes and text,
// ignoring ids.
func (s *Spec) Equal(o *Spec) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Type != o.Type || s.Attrs != o.Attrs || s.Text != o.Text || len(s.Content) != len(o.Content) {
		return false
	}
	for i := range s.Content {
		if !s.Content[i].Equal(o.Content[i]) {
			return false
		}
	}
	return true
}
