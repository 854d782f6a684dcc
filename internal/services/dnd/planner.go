// Package dnd plans block drops that create or extend column layouts.
package dnd

import (
	"fmt"
	"slices"

	"github.com/thenoetrevino/pilar/internal/document"
)

// Side is the half of the target a block was dropped on.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// SideFor maps a pointer x onto the half of a target box spanning
// [left, left+width).
func SideFor(x, left, width int) Side {
	if x < left+width/2 {
		return SideLeft
	}
	return SideRight
}

// Drop describes one drag-and-drop request. Target wins over TargetPos when
// both are set; TargetPos is only a fallback for callers that have no id.
type Drop struct {
	Dragged   document.NodeID
	Target    document.NodeID
	TargetPos int
	Side      Side
	IsMove    bool
}

// region replaces [from, to) of the starting document with nodes.
type region struct {
	from  int
	to    int
	nodes []*document.Spec
}

func (r region) delta() int {
	return document.SpecsSize(r.nodes) - (r.to - r.from)
}

// slot is where the dragged content lands: a column index inside an existing
// group, or one side of a plain top-level block.
type slot struct {
	group *document.Node
	block *document.Node
	at    int
}

// Plan builds the single transaction for drop on st. The transaction holds
// one replace that builds the new layout and, for moves, at most one more
// step that cuts the source out. Nothing is returned when any part of the
// plan fails.
func Plan(st *document.State, drop Drop) (tr *document.Transaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			tr, err = nil, fmt.Errorf("%w: %v", ErrPlanningPanic, r)
		}
	}()

	d := st.Doc()
	dragged, target, err := resolve(d, drop)
	if err != nil {
		return nil, err
	}
	dest, err := slotFor(d, target, drop.Side)
	if err != nil {
		return nil, err
	}

	content, width := draggedContent(d, dragged, drop.IsMove)
	if len(content) == 0 {
		return nil, ErrNothingToDrop
	}
	column := document.Column(width, content...)

	var (
		build region
		cols  []*document.Spec
		at    int
	)
	folded := false
	if dest.group != nil {
		folded = drop.IsMove && d.IsAncestor(dest.group.ID, dragged.ID)
		build, cols, at = extendGroup(d, dest, column, dragged, folded)
	} else {
		build, cols, at = pairWith(d, dest, column, drop.Side)
	}

	tr = st.Tr().SetLabel("drop")
	groupPos := build.from
	switch {
	case !drop.IsMove || folded:
		tr.Replace(build.from, build.to, build.nodes...)
	default:
		cut := excise(d, dragged)
		if cut.to <= build.from {
			shift := cut.delta()
			tr.Replace(cut.from, cut.to, cut.nodes...).
				Replace(build.from+shift, build.to+shift, build.nodes...)
			groupPos += shift
		} else {
			shift := build.delta()
			tr.Replace(build.from, build.to, build.nodes...).
				Replace(cut.from+shift, cut.to+shift, cut.nodes...)
		}
	}
	if err := tr.Err(); err != nil {
		return nil, err
	}
	if err := document.Check(tr.Doc()); err != nil {
		return nil, err
	}

	if len(build.nodes) == 1 && build.nodes[0].Type == document.TypeColumnGroup {
		// group open, column open, block open
		colPos := groupPos + 1 + document.SpecsSize(cols[:at])
		tr.SetSelection(document.Cursor(colPos + 2))
	} else {
		tr.SetSelection(document.Cursor(groupPos + 1))
	}
	return tr, nil
}

// resolve finds the dragged node and the drop target by id and rejects drops
// that would put a node into itself.
func resolve(d *document.Doc, drop Drop) (*document.Node, *document.Node, error) {
	dragged, ok := d.Node(drop.Dragged)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrDraggedNotFound, drop.Dragged)
	}
	if dragged.ID == d.Root().ID {
		return nil, nil, ErrNotDraggable
	}

	var target *document.Node
	if drop.Target != "" {
		target, ok = d.Node(drop.Target)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrTargetNotFound, drop.Target)
		}
	} else {
		target, ok = nodeAround(d, drop.TargetPos)
		if !ok {
			return nil, nil, fmt.Errorf("%w: position %d", ErrTargetNotFound, drop.TargetPos)
		}
	}

	if dragged.ID == target.ID {
		return nil, nil, ErrSameNode
	}
	if d.IsAncestor(dragged.ID, target.ID) {
		return nil, nil, ErrCycle
	}
	return dragged, target, nil
}

// nodeAround returns the node starting at pos or else the innermost node
// containing it.
func nodeAround(d *document.Doc, pos int) (*document.Node, bool) {
	if n, ok := d.NodeAt(pos); ok {
		return n, true
	}
	rp, err := d.Resolve(pos)
	if err != nil || rp.Depth() == 0 {
		return nil, false
	}
	return rp.Parent(), true
}

// slotFor turns the target into a landing slot. A textblock inside a column
// stands for its column.
func slotFor(d *document.Doc, target *document.Node, side Side) (slot, error) {
	if target.ID == d.Root().ID {
		return slot{}, ErrInvalidTarget
	}
	if target.Type.IsTextblock() {
		parent, _ := d.Node(target.Parent)
		if parent.Type != document.TypeColumn {
			return slot{block: target}, nil
		}
		target = parent
	}

	switch target.Type {
	case document.TypeColumn:
		group, _ := d.Node(target.Parent)
		at := d.IndexOf(target)
		if side == SideRight {
			at++
		}
		return slot{group: group, at: at}, nil
	case document.TypeColumnGroup:
		at := 0
		if side == SideRight {
			at = len(target.Children)
		}
		return slot{group: target, at: at}, nil
	}
	return slot{}, fmt.Errorf("%w: %s", ErrInvalidTarget, target.Type)
}

// draggedContent flattens the dragged node into the blocks of one column.
// Copies get fresh ids; moved blocks keep theirs when they are free again.
func draggedContent(d *document.Doc, dragged *document.Node, move bool) ([]*document.Spec, float64) {
	spec, _ := d.Extract(dragged.ID)
	if !move {
		spec = spec.Fresh()
	}
	width := document.DefaultColumnWidth
	if dragged.Type == document.TypeColumn {
		width = dragged.Attrs.Width
	}
	return flatten(spec), width
}

func flatten(s *document.Spec) []*document.Spec {
	if s.Type.IsTextblock() {
		return []*document.Spec{s}
	}
	var out []*document.Spec
	for _, c := range s.Content {
		out = append(out, flatten(c)...)
	}
	return out
}

// extendGroup rebuilds the target group with the new column spliced in. When
// the dragged node lives in the same group its removal is folded into the
// rebuild.
func extendGroup(d *document.Doc, dest slot, column *document.Spec, dragged *document.Node, folded bool) (region, []*document.Spec, int) {
	groupPos, _ := d.PosOf(dest.group.ID)
	group, _ := d.Extract(dest.group.ID)
	cols, at := group.Content, dest.at
	if folded {
		cols, at = withoutDragged(cols, dragged.ID, at)
	}
	cols = slices.Insert(cols, at, column)
	group.Content = cols

	return region{
		from:  groupPos,
		to:    groupPos + d.Size(dest.group),
		nodes: collapse(group),
	}, cols, at
}

func withoutDragged(cols []*document.Spec, id document.NodeID, at int) ([]*document.Spec, int) {
	for i, col := range cols {
		if col.ID == id {
			if i < at {
				at--
			}
			return slices.Delete(cols, i, i+1), at
		}
		for j, block := range col.Content {
			if block.ID != id {
				continue
			}
			col.Content = slices.Delete(col.Content, j, j+1)
			if len(col.Content) == 0 {
				col.Content = []*document.Spec{document.Paragraph("")}
			}
			return cols, at
		}
	}
	return cols, at
}

// pairWith wraps a plain top-level block and the new column into a fresh
// two-column group.
func pairWith(d *document.Doc, dest slot, column *document.Spec, side Side) (region, []*document.Spec, int) {
	pos, _ := d.PosOf(dest.block.ID)
	block, _ := d.Extract(dest.block.ID)
	other := document.Column(document.DefaultColumnWidth, block)

	cols, at := []*document.Spec{column, other}, 0
	if side == SideRight {
		cols, at = []*document.Spec{other, column}, 1
	}
	return region{
		from:  pos,
		to:    pos + d.Size(dest.block),
		nodes: []*document.Spec{document.ColumnGroup(cols...)},
	}, cols, at
}

// excise cuts the dragged node out of the document. A group that would keep
// a single column collapses to that column's content, and a column that
// would lose its last block keeps an empty paragraph.
func excise(d *document.Doc, dragged *document.Node) region {
	pos, _ := d.PosOf(dragged.ID)
	size := d.Size(dragged)
	parent, _ := d.Node(dragged.Parent)

	switch parent.Type {
	case document.TypeColumnGroup:
		if len(parent.Children) <= 2 {
			groupPos, _ := d.PosOf(parent.ID)
			survivor := d.Child(parent, 1-d.IndexOf(dragged))
			return region{
				from:  groupPos,
				to:    groupPos + d.Size(parent),
				nodes: d.ExtractChildren(survivor.ID),
			}
		}
	case document.TypeColumn:
		if len(parent.Children) == 1 {
			return region{from: pos, to: pos + size, nodes: []*document.Spec{document.Paragraph("")}}
		}
	}
	return region{from: pos, to: pos + size}
}

// collapse returns the group, or the content of its last column when fewer
// than two columns are left.
func collapse(group *document.Spec) []*document.Spec {
	if len(group.Content) >= 2 {
		return []*document.Spec{group}
	}
	return group.Content[len(group.Content)-1].Content
}
