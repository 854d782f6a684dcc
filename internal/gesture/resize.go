package gesture

import (
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/services/column"
)

// resize tracks the gap between two adjacent columns being dragged.
type resize struct {
	group      document.NodeID
	left       document.NodeID
	right      document.NodeID
	index      int
	startX     int
	total      int
	startLeft  float64
	startRight float64
	curLeft    float64
	curRight   float64
}

func (r *resize) resolve(d *document.Doc) error {
	group, ok := d.Node(r.group)
	if !ok {
		return ErrStaleGesture
	}
	left, ok := d.Node(r.left)
	if !ok || left.Parent != r.group {
		return ErrStaleGesture
	}
	i := d.IndexOf(left)
	if i+1 >= len(group.Children) || group.Children[i+1] != r.right {
		return ErrStaleGesture
	}
	return nil
}

// ResizeWeights moves delta weight from the right column to the left one.
// The delta is clamped so neither side drops below minWidth; the pair's sum
// never changes.
func ResizeWeights(left, right, delta, minWidth float64) (float64, float64) {
	delta = max(delta, minWidth-left)
	delta = min(delta, right-minWidth)
	return left + delta, right - delta
}

func (c *Controller) startResize(group *document.Node, index int, snap Snapshot, x int) error {
	total := snap.PairWidth(index)
	if total <= 0 {
		return ErrNoLayout
	}
	d := c.host.State().Doc()
	left, right := d.Child(group, index), d.Child(group, index+1)
	if right == nil {
		return ErrInvalidHit
	}
	if err := c.machine.Transition(Resizing); err != nil {
		return err
	}
	c.resize = &resize{
		group:      group.ID,
		left:       left.ID,
		right:      right.ID,
		index:      index,
		startX:     x,
		total:      total,
		startLeft:  left.Attrs.Width,
		startRight: right.Attrs.Width,
		curLeft:    left.Attrs.Width,
		curRight:   right.Attrs.Width,
	}
	c.moveResize(x)
	return nil
}

func (c *Controller) moveResize(x int) {
	r := c.resize
	delta := float64(x-r.startX) / float64(r.total)
	r.curLeft, r.curRight = ResizeWeights(r.startLeft, r.startRight, delta, c.minWidth)

	ov := c.machine.overlayRef()
	ov.Guide = &ResizeGuide{Group: r.group, X: x}
	ov.Widths = &WidthPreview{Group: r.group, Index: r.index, Left: r.curLeft, Right: r.curRight}
}

func (c *Controller) releaseResize(x int) (Result, error) {
	c.moveResize(x)
	r := c.resize

	if r.curLeft == r.startLeft && r.curRight == r.startRight {
		c.finish(false)
		return ResultCancelled, nil
	}
	loc, err := column.ColumnByID(c.host.State().Doc(), r.left)
	if err != nil {
		c.abort(err)
		return ResultAborted, ErrStaleGesture
	}
	ok := c.columns.SetColumnWidths(loc.GroupPos, loc.Index, r.curLeft, r.curRight)
	c.finish(ok)
	if !ok {
		return ResultRejected, nil
	}
	c.logger.Debug("columns resized", "column_id", r.left, "left", r.curLeft, "right", r.curRight)
	return ResultResized, nil
}
