package document

// ResolvedPos is a position together with the path of nodes that contain it.
// It is only valid against the Doc it was resolved in.
type ResolvedPos struct {
	Pos  int
	path []pathEntry
}

type pathEntry struct {
	node  *Node
	index int // child index the position points at (0 inside textblocks)
	start int // first content position of node
}

// Resolve walks the tree to find the nodes enclosing pos. A position exactly
// on a child boundary resolves in the parent, not in the child.
func (d *Doc) Resolve(pos int) (*ResolvedPos, error) {
	if pos < 0 || pos > d.ContentSize() {
		return nil, ErrInvalidPosition
	}
	rp := &ResolvedPos{Pos: pos}
	cur := d.Root()
	start := 0
	for {
		if cur.Type.IsTextblock() {
			rp.path = append(rp.path, pathEntry{node: cur, start: start})
			return rp, nil
		}
		offset := start
		index := len(cur.Children)
		var next *Node
		for i, cid := range cur.Children {
			child := d.nodes[cid]
			end := offset + d.Size(child)
			if end > pos {
				index = i
				if offset < pos {
					next = child
				}
				break
			}
			offset = end
		}
		rp.path = append(rp.path, pathEntry{node: cur, index: index, start: start})
		if next == nil {
			return rp, nil
		}
		cur = next
		start = offset + 1
	}
}

// Depth is the depth of the innermost enclosing node (the doc is depth 0).
func (rp *ResolvedPos) Depth() int {
	return len(rp.path) - 1
}

// Node returns the enclosing node at depth.
func (rp *ResolvedPos) Node(depth int) *Node {
	return rp.path[depth].node
}

// Parent returns the innermost enclosing node.
func (rp *ResolvedPos) Parent() *Node {
	return rp.path[len(rp.path)-1].node
}

// Index returns the child index the position points at within the node at depth.
func (rp *ResolvedPos) Index(depth int) int {
	return rp.path[depth].index
}

// Start returns the first content position of the node at depth.
func (rp *ResolvedPos) Start(depth int) int {
	return rp.path[depth].start
}

// Before returns the position directly before the node at depth (depth ≥ 1).
func (rp *ResolvedPos) Before(depth int) int {
	return rp.path[depth].start - 1
}

// ParentOffset returns the offset of the position inside its parent's content.
func (rp *ResolvedPos) ParentOffset() int {
	return rp.Pos - rp.path[len(rp.path)-1].start
}

// FindAncestor returns the depth of the innermost enclosing node of type t,
// or -1.
func (rp *ResolvedPos) FindAncestor(t NodeType) int {
	for depth := rp.Depth(); depth >= 0; depth-- {
		if rp.path[depth].node.Type == t {
			return depth
		}
	}
	return -1
}

// NodeAt returns the node that starts exactly at pos, if any.
func (d *Doc) NodeAt(pos int) (*Node, bool) {
	rp, err := d.Resolve(pos)
	if err != nil {
		return nil, false
	}
	parent := rp.Parent()
	if parent.Type.IsTextblock() {
		return nil, false
	}
	child := d.Child(parent, rp.Index(rp.Depth()))
	return child, child != nil
}

// Ancestor returns the node of type t that starts at pos or encloses it,
// along with the position directly before it.
func (d *Doc) Ancestor(pos int, t NodeType) (*Node, int, bool) {
	if n, ok := d.NodeAt(pos); ok && n.Type == t {
		return n, pos, true
	}
	rp, err := d.Resolve(pos)
	if err != nil {
		return nil, 0, false
	}
	depth := rp.FindAncestor(t)
	if depth < 1 {
		return nil, 0, false
	}
	return rp.Node(depth), rp.Before(depth), true
}
