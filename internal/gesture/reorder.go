package gesture

import (
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/services/column"
)

// reorder tracks a column being dragged by its handle. Only ids and the
// pointer-down snapshot are kept; positions come from the live document.
type reorder struct {
	group     document.NodeID
	column    document.NodeID
	origin    int
	snap      Snapshot
	startX    int
	startY    int
	grab      int // pointer x minus the column's left edge at press
	moved     bool
	candidate int
}

func (r *reorder) resolve(d *document.Doc) error {
	col, ok := d.Node(r.column)
	if !ok || col.Parent != r.group {
		return ErrStaleGesture
	}
	return nil
}

func (c *Controller) startReorder(group *document.Node, index int, snap Snapshot, x, y int) error {
	if err := c.machine.Transition(Dragging); err != nil {
		return err
	}
	c.reorder = &reorder{
		group:     group.ID,
		column:    group.Children[index],
		origin:    index,
		snap:      snap,
		startX:    x,
		startY:    y,
		grab:      x - snap.Columns[index].Left,
		candidate: index,
	}
	return nil
}

func (c *Controller) moveReorder(x, y int) {
	r := c.reorder
	if !r.moved && abs(x-r.startX) <= c.dragThreshold && abs(y-r.startY) <= c.dragThreshold {
		return
	}
	r.moved = true

	footprint := Box{Left: x - r.grab, Width: r.snap.Columns[r.origin].Width}
	r.candidate = candidateSlot(r.snap.Columns, footprint)

	ov := c.machine.overlayRef()
	ov.Preview = &Preview{Column: r.column, X: footprint.Left, Y: y, Width: footprint.Width}
	ov.Indicator = nil
	if r.candidate != r.origin {
		ov.Indicator = &DropIndicator{
			Group: r.group,
			Index: r.candidate,
			X:     indicatorX(r.snap.Columns[r.candidate], r.candidate < r.origin),
		}
	}
}

// indicatorX puts the line on the slot edge facing the origin.
func indicatorX(slot Box, before bool) int {
	if before {
		return slot.Left
	}
	return slot.Right() - 1
}

func (c *Controller) releaseReorder(x, y int) (Result, error) {
	c.moveReorder(x, y)
	r := c.reorder

	if !r.moved {
		c.finish(false)
		c.menu = &Menu{
			Group:  r.group,
			Column: r.column,
			X:      r.snap.Columns[r.origin].Left,
			Y:      r.startY,
		}
		return ResultMenu, nil
	}
	if r.candidate == r.origin {
		c.finish(false)
		return ResultCancelled, nil
	}

	loc, err := column.ColumnByID(c.host.State().Doc(), r.column)
	if err != nil {
		c.abort(err)
		return ResultAborted, ErrStaleGesture
	}
	target := min(r.candidate, len(loc.Group.Children)-1)
	ok := c.columns.MoveColumn(loc.GroupPos, loc.Index, target)
	c.finish(ok)
	if !ok {
		return ResultRejected, nil
	}
	c.logger.Debug("column moved", "column_id", r.column, "from", loc.Index, "to", target)
	return ResultMoved, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
