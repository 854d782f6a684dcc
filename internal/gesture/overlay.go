package gesture

import "github.com/thenoetrevino/pilar/internal/document"

// Overlay is the ephemeral visual feedback of a gesture. It lives next to
// the document and is never written into it.
type Overlay struct {
	Hover     *Hover
	Preview   *Preview
	Indicator *DropIndicator
	Guide     *ResizeGuide
	Widths    *WidthPreview
}

// Empty reports whether nothing needs drawing.
func (o Overlay) Empty() bool {
	return o.Hover == nil && o.Preview == nil && o.Indicator == nil && o.Guide == nil && o.Widths == nil
}

// Hover highlights the handle or gap under the pointer.
type Hover struct {
	Group document.NodeID
	Index int
	Kind  HitKind
}

// Preview is the floating copy of a dragged column that follows the pointer.
type Preview struct {
	Column document.NodeID
	X      int
	Y      int
	Width  int
}

// DropIndicator marks the boundary of the slot a dragged column would land
// in.
type DropIndicator struct {
	Group document.NodeID
	Index int
	X     int
}

// ResizeGuide is the vertical guide line drawn at the pointer while
// resizing.
type ResizeGuide struct {
	Group document.NodeID
	X     int
}

// WidthPreview holds the live weights of the pair being resized. Renderers
// use them instead of the document's weights until the gesture ends.
type WidthPreview struct {
	Group document.NodeID
	Index int
	Left  float64
	Right float64
}
