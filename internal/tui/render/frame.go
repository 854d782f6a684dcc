// Package render lays the document out on the terminal grid. A Frame holds
// the drawn lines together with the geometry of every block and column, so
// pointer events can be mapped back onto the document.
package render

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/gesture"
	"github.com/thenoetrevino/pilar/internal/tui/theme"
)

const (
	// HandleGlyph is drawn on each column's top border
	HandleGlyph = "⠿"

	// GapWidth is the number of cells between two columns
	GapWidth = 1

	// minColumnBox fits both borders, the handle and one border cell
	minColumnBox = 4

	// handleReach is how many cells from a column's left edge count as the
	// handle
	handleReach = 3
)

// BlockBox locates the text cells of one textblock.
type BlockBox struct {
	ID     document.NodeID
	Column document.NodeID // empty for top-level blocks
	Row    int
	Left   int // first text cell
	Width  int // text cells
}

// Contains reports whether the cell x, y falls on the block's row.
func (b BlockBox) Contains(x, y int) bool {
	return y == b.Row && x >= b.Left && x < b.Left+b.Width
}

// GroupBox locates a rendered column group.
type GroupBox struct {
	ID      document.NodeID
	Top     int
	Height  int
	Columns []gesture.Box
	IDs     []document.NodeID
}

// Bottom returns the first row after the group.
func (g GroupBox) Bottom() int {
	return g.Top + g.Height
}

// Options controls one layout pass.
type Options struct {
	Width     int
	Selection document.Selection

	// Widths overrides the weights of the pair being resized
	Widths *gesture.WidthPreview
}

// Frame is one laid out document.
type Frame struct {
	Width  int
	Lines  []string
	Blocks []BlockBox
	Groups []GroupBox
}

type cursor struct {
	block  document.NodeID
	column document.NodeID
	offset int
}

// Build lays out d for a terminal opts.Width cells wide.
func Build(d *document.Doc, opts Options) *Frame {
	f := &Frame{Width: max(opts.Width, 2*minColumnBox+GapWidth)}
	cur := cursorOf(d, opts.Selection)

	for _, n := range d.Children(d.Root()) {
		switch {
		case n.Type.IsTextblock():
			f.Blocks = append(f.Blocks, BlockBox{ID: n.ID, Row: len(f.Lines), Width: f.Width})
			f.Lines = append(f.Lines, textLine(n, f.Width, cur))
		case n.Type == document.TypeColumnGroup:
			f.addGroup(d, n, opts.Widths, cur)
		}
	}
	return f
}

func cursorOf(d *document.Doc, sel document.Selection) cursor {
	head := sel.Head
	for _, b := range d.Textblocks() {
		if head < b.Start || head > b.End {
			continue
		}
		n, _ := d.Node(b.ID)
		c := cursor{block: b.ID, offset: head - b.Start}
		if parent, ok := d.Node(n.Parent); ok && parent.Type == document.TypeColumn {
			c.column = parent.ID
		}
		return c
	}
	return cursor{}
}

// ColumnWidths splits total cells between columns in proportion to their
// weights. The last column takes the rounding remainder.
func ColumnWidths(total int, weights []float64, gap int) []int {
	n := len(weights)
	if n == 0 {
		return nil
	}
	avail := total - gap*(n-1)
	sum := 0.0
	for _, w := range weights {
		sum += w
	}

	out := make([]int, n)
	used := 0
	for i, w := range weights {
		if i == n-1 {
			out[i] = avail - used
		} else {
			out[i] = int(float64(avail) * w / sum)
		}
		out[i] = max(out[i], minColumnBox)
		used += out[i]
	}
	return out
}

func (f *Frame) addGroup(d *document.Doc, g *document.Node, live *gesture.WidthPreview, cur cursor) {
	cols := d.Children(g)
	weights := make([]float64, len(cols))
	for i, c := range cols {
		weights[i] = c.Attrs.Width
	}
	if live != nil && live.Group == g.ID && live.Index+1 < len(weights) {
		weights[live.Index], weights[live.Index+1] = live.Left, live.Right
	}
	widths := ColumnWidths(f.Width, weights, GapWidth)

	rows := 0
	for _, c := range cols {
		rows = max(rows, len(c.Children))
	}
	box := GroupBox{ID: g.ID, Top: len(f.Lines), Height: rows + 2}

	segments := make([][]string, len(cols))
	left := 0
	for i, c := range cols {
		box.Columns = append(box.Columns, gesture.Box{Left: left, Width: widths[i]})
		box.IDs = append(box.IDs, c.ID)
		segments[i] = f.columnBox(d, c, box.Top, left, widths[i], rows, cur)
		left += widths[i] + GapWidth
	}

	gap := strings.Repeat(" ", GapWidth)
	for r := range box.Height {
		var line strings.Builder
		for i := range cols {
			if i > 0 {
				line.WriteString(gap)
			}
			line.WriteString(segments[i][r])
		}
		f.Lines = append(f.Lines, line.String())
	}
	f.Groups = append(f.Groups, box)
}

func (f *Frame) columnBox(d *document.Doc, c *document.Node, top, left, width, rows int, cur cursor) []string {
	borderColor := theme.ColumnBorder
	if cur.column == c.ID {
		borderColor = theme.ActiveBorder
	}
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	handle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Handle))
	inner := width - 2

	lines := make([]string, 0, rows+2)
	lines = append(lines, border.Render("╭")+handle.Render(HandleGlyph)+border.Render(strings.Repeat("─", inner-1)+"╮"))

	blocks := d.Children(c)
	for r := range rows {
		content := strings.Repeat(" ", inner)
		if r < len(blocks) && blocks[r].Type.IsTextblock() {
			b := blocks[r]
			f.Blocks = append(f.Blocks, BlockBox{ID: b.ID, Column: c.ID, Row: top + 1 + r, Left: left + 1, Width: inner})
			content = textLine(b, inner, cur)
		}
		lines = append(lines, border.Render("│")+content+border.Render("│"))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return lines
}

// textLine renders a textblock into exactly width cells, with the cursor
// drawn in reverse video when it sits in this block.
func textLine(n *document.Node, width int, cur cursor) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal))
	if n.Type == document.TypeHeading {
		style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title))
	}

	if cur.block != n.ID {
		if n.Text == "" {
			return fit("", width)
		}
		return fit(style.Render(n.Text), width)
	}

	runes := []rune(n.Text)
	off := min(cur.offset, len(runes))
	at, rest := " ", ""
	if off < len(runes) {
		at, rest = string(runes[off]), string(runes[off+1:])
	}
	caret := lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color(theme.Cursor))

	var line strings.Builder
	if off > 0 {
		line.WriteString(style.Render(string(runes[:off])))
	}
	line.WriteString(caret.Render(at))
	if rest != "" {
		line.WriteString(style.Render(rest))
	}
	return fit(line.String(), width)
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// Snapshot implements gesture.Layout.
func (f *Frame) Snapshot(group document.NodeID) (gesture.Snapshot, bool) {
	g, ok := f.Group(group)
	if !ok {
		return gesture.Snapshot{}, false
	}
	return snapshotOf(g), true
}

func snapshotOf(g GroupBox) gesture.Snapshot {
	return gesture.Snapshot{Group: g.ID, Columns: g.Columns, Gap: GapWidth}
}

// Group returns the rendered group with the given id.
func (f *Frame) Group(id document.NodeID) (GroupBox, bool) {
	for _, g := range f.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return GroupBox{}, false
}

// ColumnBox returns the group holding a column and the column's index.
func (f *Frame) ColumnBox(col document.NodeID) (GroupBox, int, bool) {
	for _, g := range f.Groups {
		for i, id := range g.IDs {
			if id == col {
				return g, i, true
			}
		}
	}
	return GroupBox{}, 0, false
}

// HitTest maps a cell to the column handle or gap under it. A handle wins
// over a gap zone that reaches into the next column.
func (f *Frame) HitTest(x, y, slop int) gesture.Hit {
	for _, g := range f.Groups {
		if y < g.Top || y >= g.Bottom() {
			continue
		}
		if y == g.Top {
			for i, c := range g.Columns {
				if x >= c.Left && x < c.Left+handleReach {
					return gesture.Hit{Kind: gesture.HitHandle, Group: g.ID, Index: i}
				}
			}
		}
		if i, ok := gesture.GapAt(snapshotOf(g), x, slop); ok {
			return gesture.Hit{Kind: gesture.HitGap, Group: g.ID, Index: i}
		}
		return gesture.Hit{}
	}
	return gesture.Hit{}
}

// BlockAt returns the textblock drawn at x, y.
func (f *Frame) BlockAt(x, y int) (BlockBox, bool) {
	for _, b := range f.Blocks {
		if b.Contains(x, y) {
			return b, true
		}
	}
	return BlockBox{}, false
}

// Block returns the box of a textblock by id.
func (f *Frame) Block(id document.NodeID) (BlockBox, bool) {
	for _, b := range f.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return BlockBox{}, false
}
