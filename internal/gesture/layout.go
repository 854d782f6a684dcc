package gesture

import "github.com/thenoetrevino/pilar/internal/document"

// Box is the horizontal footprint of a rendered column in pixels (terminal
// cells in the TUI).
type Box struct {
	Left  int
	Width int
}

// Right returns the first pixel after the box.
func (b Box) Right() int {
	return b.Left + b.Width
}

func (b Box) overlap(o Box) int {
	return max(0, min(b.Right(), o.Right())-max(b.Left, o.Left))
}

// center2 returns twice the center so it stays an integer.
func (b Box) center2() int {
	return 2*b.Left + b.Width
}

// Snapshot is the rendered geometry of one column group at pointer-down.
// Column weights are relative, so pixels can only come from the host's
// layout.
type Snapshot struct {
	Group   document.NodeID
	Columns []Box
	Gap     int
}

// PairWidth returns the combined pixel width of columns index and index+1.
func (s Snapshot) PairWidth(index int) int {
	if index < 0 || index+1 >= len(s.Columns) {
		return 0
	}
	return s.Columns[index].Width + s.Columns[index+1].Width
}

// Layout gives controllers access to the host's rendered geometry.
type Layout interface {
	Snapshot(group document.NodeID) (Snapshot, bool)
}

// LayoutFunc adapts a function to a Layout.
type LayoutFunc func(group document.NodeID) (Snapshot, bool)

// Snapshot implements Layout.
func (f LayoutFunc) Snapshot(group document.NodeID) (Snapshot, bool) {
	return f(group)
}

// GapAt returns the index of the left column of the gap whose resize zone
// contains x. The zone spans the gap plus slop pixels on each side.
func GapAt(s Snapshot, x, slop int) (int, bool) {
	for i := 0; i+1 < len(s.Columns); i++ {
		from := s.Columns[i].Right() - slop
		to := s.Columns[i+1].Left + slop
		if x >= from && x < max(to, from+1) {
			return i, true
		}
	}
	return 0, false
}

// candidateSlot picks the slot the dragged footprint overlaps most. Ties go
// to the slot whose center is closest to the footprint's center. The result
// is always a valid index.
func candidateSlot(slots []Box, footprint Box) int {
	best, bestOverlap, bestDist := 0, -1, 0
	for i, slot := range slots {
		overlap := slot.overlap(footprint)
		dist := slot.center2() - footprint.center2()
		if dist < 0 {
			dist = -dist
		}
		if overlap > bestOverlap || (overlap == bestOverlap && dist < bestDist) {
			best, bestOverlap, bestDist = i, overlap, dist
		}
	}
	return best
}
