package document

import (
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	"github.com/google/uuid"
)

// NodeID is the stable identifier of a node. Ids survive edits elsewhere in
// the tree and moves inside one transaction; newly created nodes always get a
// fresh id.
type NodeID string

// NodeType names the kind of a node in the schema.
type NodeType string

const (
	TypeDoc         NodeType = "doc"
	TypeParagraph   NodeType = "paragraph"
	TypeHeading     NodeType = "heading"
	TypeColumnGroup NodeType = "column_group"
	TypeColumn      NodeType = "column"
)

// IsTextblock reports whether nodes of this type hold text instead of children.
func (t NodeType) IsTextblock() bool {
	return t == TypeParagraph || t == TypeHeading
}

// Column width weights
const (
	// DefaultColumnWidth is the weight given to every newly created column.
	DefaultColumnWidth = 1.0

	// MinColumnWidth is the smallest weight a column may carry.
	MinColumnWidth = 0.5
)

// Attrs holds the typed attributes of a node. Only the fields meaningful for
// the node's type are used.
type Attrs struct {
	Width float64 `cbor:"width,omitempty" json:"width,omitempty"` // column
	Level int     `cbor:"level,omitempty" json:"level,omitempty"` // heading
}

// Node is one entry of the document arena.
type Node struct {
	ID       NodeID
	Type     NodeType
	Attrs    Attrs
	Text     string   // textblocks only
	Children []NodeID // containers only
	Parent   NodeID   // empty for the root
}

// TextLen returns the number of runes in a textblock.
func (n *Node) TextLen() int {
	return utf8.RuneCountInString(n.Text)
}

// IDGenerator produces fresh node ids.
type IDGenerator func() NodeID

// UUIDGenerator is the default IDGenerator.
func UUIDGenerator() NodeID {
	return NodeID(uuid.NewString())
}

// SequentialIDs returns a generator producing prefix-1, prefix-2, and so on.
// Useful wherever ids must be reproducible.
func SequentialIDs(prefix string) IDGenerator {
	var n atomic.Int64
	return func() NodeID {
		return NodeID(fmt.Sprintf("%s-%d", prefix, n.Add(1)))
	}
}

// Option configures a Doc.
type Option func(*Doc)

// WithIDGenerator overrides how fresh node ids are produced.
func WithIDGenerator(gen IDGenerator) Option {
	return func(d *Doc) {
		d.newID = gen
	}
}

// Doc is an arena of nodes rooted at a single doc node. Positions are never
// stored; every lookup walks the tree from the root.
type Doc struct {
	root  NodeID
	nodes map[NodeID]*Node
	newID IDGenerator
}

// New builds a document from a root spec and validates it against the schema.
func New(root *Spec, opts ...Option) (*Doc, error) {
	d := &Doc{
		nodes: make(map[NodeID]*Node),
		newID: UUIDGenerator,
	}
	for _, opt := range opts {
		opt(d)
	}
	if root == nil || root.Type != TypeDoc {
		return nil, ErrSchemaViolation
	}
	d.root = d.materialize(root, "")
	if err := Check(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Root returns the doc node.
func (d *Doc) Root() *Node {
	return d.nodes[d.root]
}

// Node looks up a node by stable id.
func (d *Doc) Node(id NodeID) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Child returns the i-th child of a container, or nil.
func (d *Doc) Child(n *Node, i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return d.nodes[n.Children[i]]
}

// Children returns the children of a container in order.
func (d *Doc) Children(n *Node) []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, id := range n.Children {
		out = append(out, d.nodes[id])
	}
	return out
}

// IndexOf returns the index of a node within its parent, or -1.
func (d *Doc) IndexOf(n *Node) int {
	parent, ok := d.nodes[n.Parent]
	if !ok {
		return -1
	}
	for i, id := range parent.Children {
		if id == n.ID {
			return i
		}
	}
	return -1
}

// Size returns the number of position tokens the node occupies, including its
// own opening and closing tokens.
func (d *Doc) Size(n *Node) int {
	return 2 + d.contentSize(n)
}

func (d *Doc) contentSize(n *Node) int {
	if n.Type.IsTextblock() {
		return n.TextLen()
	}
	size := 0
	for _, id := range n.Children {
		size += d.Size(d.nodes[id])
	}
	return size
}

// ContentSize returns the size of the document's content. Valid positions
// run from 0 to ContentSize inclusive.
func (d *Doc) ContentSize() int {
	return d.contentSize(d.Root())
}

// PosOf returns the position directly before the node with the given id.
func (d *Doc) PosOf(id NodeID) (int, bool) {
	n, ok := d.nodes[id]
	if !ok || id == d.root {
		return 0, false
	}
	var chain []*Node
	for cur := n; cur.ID != d.root; cur = d.nodes[cur.Parent] {
		chain = append(chain, cur)
	}
	pos := 0
	parent := d.Root()
	for i := len(chain) - 1; i >= 0; i-- {
		target := chain[i]
		for _, cid := range parent.Children {
			if cid == target.ID {
				break
			}
			pos += d.Size(d.nodes[cid])
		}
		if i > 0 {
			pos++ // opening token of target
		}
		parent = target
	}
	return pos, true
}

// IsAncestor reports whether ancestor contains node (a node is not its own
// ancestor).
func (d *Doc) IsAncestor(ancestor, node NodeID) bool {
	n, ok := d.nodes[node]
	if !ok {
		return false
	}
	for n.Parent != "" {
		if n.Parent == ancestor {
			return true
		}
		n = d.nodes[n.Parent]
	}
	return false
}

// IsEmptyColumn reports whether a column holds exactly one empty paragraph.
func (d *Doc) IsEmptyColumn(n *Node) bool {
	if n == nil || n.Type != TypeColumn || len(n.Children) != 1 {
		return false
	}
	only := d.nodes[n.Children[0]]
	return only.Type == TypeParagraph && only.Text == ""
}

// TextblockSpan locates a textblock's editable content in position space.
type TextblockSpan struct {
	ID    NodeID
	Start int // first content position
	End   int // last content position (Start + rune count)
}

// Textblocks lists every textblock in document order.
func (d *Doc) Textblocks() []TextblockSpan {
	var out []TextblockSpan
	var walk func(n *Node, start int)
	walk = func(n *Node, start int) {
		offset := start
		for _, id := range n.Children {
			child := d.nodes[id]
			if child.Type.IsTextblock() {
				out = append(out, TextblockSpan{ID: child.ID, Start: offset + 1, End: offset + 1 + child.TextLen()})
			} else {
				walk(child, offset+1)
			}
			offset += d.Size(child)
		}
	}
	walk(d.Root(), 0)
	return out
}

// TextPosNear returns the closest valid cursor position to pos, preferring
// positions at or after it.
func (d *Doc) TextPosNear(pos int) int {
	blocks := d.Textblocks()
	if len(blocks) == 0 {
		return 0
	}
	for _, b := range blocks {
		if pos <= b.End {
			if pos < b.Start {
				return b.Start
			}
			return pos
		}
	}
	return blocks[len(blocks)-1].End
}

// Clone returns a deep copy of the arena sharing the id generator.
func (d *Doc) Clone() *Doc {
	c := &Doc{
		root:  d.root,
		nodes: make(map[NodeID]*Node, len(d.nodes)),
		newID: d.newID,
	}
	for id, n := range d.nodes {
		cp := *n
		cp.Children = append([]NodeID(nil), n.Children...)
		c.nodes[id] = &cp
	}
	return c
}

// materialize inserts a detached spec into the arena under parent. A spec id
// is kept when it is free, otherwise a fresh one is generated.
func (d *Doc) materialize(s *Spec, parent NodeID) NodeID {
	id := s.ID
	if _, taken := d.nodes[id]; id == "" || taken {
		id = d.newID()
	}
	n := &Node{
		ID:     id,
		Type:   s.Type,
		Attrs:  s.Attrs,
		Text:   s.Text,
		Parent: parent,
	}
	d.nodes[id] = n
	for _, child := range s.Content {
		n.Children = append(n.Children, d.materialize(child, id))
	}
	return id
}

// remove drops a node and its subtree from the arena. The parent's child
// list is not touched.
func (d *Doc) remove(id NodeID) {
	n, ok := d.nodes[id]
	if !ok {
		return
	}
	for _, child := range n.Children {
		d.remove(child)
	}
	delete(d.nodes, id)
}
