package render

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/gesture"
)

// 0 intro 7 g[ 8 X[ 9 x ] 13 Y[ 14 y ] ] 19
func sampleDoc(t *testing.T) *document.Doc {
	t.Helper()
	d, err := document.New(document.DocSpec(
		document.Paragraph("intro").WithID("p"),
		document.ColumnGroup(
			document.Column(1, document.Paragraph("x").WithID("x")).WithID("X"),
			document.Column(1, document.Paragraph("y").WithID("y")).WithID("Y"),
		).WithID("g"),
	))
	require.NoError(t, err)
	return d
}

func plain(f *Frame) []string {
	out := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		out[i] = ansi.Strip(l)
	}
	return out
}

func TestBuild_Layout(t *testing.T) {
	f := Build(sampleDoc(t), Options{Width: 21, Selection: document.Cursor(1)})

	assert.Equal(t, []string{
		"intro                ",
		"╭⠿───────╮ ╭⠿───────╮",
		"│x       │ │y       │",
		"╰────────╯ ╰────────╯",
	}, plain(f))

	g, ok := f.Group("g")
	require.True(t, ok)
	assert.Equal(t, 1, g.Top)
	assert.Equal(t, 3, g.Height)
	assert.Equal(t, []gesture.Box{{Left: 0, Width: 10}, {Left: 11, Width: 10}}, g.Columns)

	y, ok := f.Block("y")
	require.True(t, ok)
	assert.Equal(t, BlockBox{ID: "y", Column: "Y", Row: 2, Left: 12, Width: 8}, y)
}

func TestBuild_UnevenColumnsPadRows(t *testing.T) {
	d, err := document.New(document.DocSpec(document.ColumnGroup(
		document.Column(1, document.Paragraph("a"), document.Paragraph("b")),
		document.Column(1, document.Paragraph("c")),
	)))
	require.NoError(t, err)

	lines := plain(Build(d, Options{Width: 21}))
	require.Len(t, lines, 4)
	assert.Equal(t, "│b       │ │        │", lines[2])
}

func TestBuild_TruncatesLongText(t *testing.T) {
	d, err := document.New(document.DocSpec(document.Paragraph(strings.Repeat("w", 30))))
	require.NoError(t, err)

	line := plain(Build(d, Options{Width: 12}))[0]
	assert.Equal(t, 12, ansi.StringWidth(line))
	assert.True(t, strings.HasSuffix(line, "…"))
}

func TestBuild_LiveWidths(t *testing.T) {
	f := Build(sampleDoc(t), Options{
		Width:  21,
		Widths: &gesture.WidthPreview{Group: "g", Index: 0, Left: 1.5, Right: 0.5},
	})
	g, _ := f.Group("g")
	assert.Equal(t, []gesture.Box{{Left: 0, Width: 15}, {Left: 16, Width: 5}}, g.Columns)
}

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		weights []float64
		want    []int
	}{
		{"even pair", 401, []float64{1, 1}, []int{200, 200}},
		{"three", 32, []float64{1, 1, 1}, []int{10, 10, 10}},
		{"weighted", 41, []float64{1.3, 0.7}, []int{26, 14}},
		{"floor", 9, []float64{1, 1}, []int{4, 4}},
		{"empty", 10, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnWidths(tt.total, tt.weights, GapWidth))
		})
	}
}

func TestHitTest(t *testing.T) {
	f := Build(sampleDoc(t), Options{Width: 21})

	tests := []struct {
		name string
		x, y int
		want gesture.Hit
	}{
		{"first handle", 1, 1, gesture.Hit{Kind: gesture.HitHandle, Group: "g", Index: 0}},
		{"second handle beats gap", 11, 1, gesture.Hit{Kind: gesture.HitHandle, Group: "g", Index: 1}},
		{"gap", 10, 2, gesture.Hit{Kind: gesture.HitGap, Group: "g", Index: 0}},
		{"gap slop", 9, 3, gesture.Hit{Kind: gesture.HitGap, Group: "g", Index: 0}},
		{"column body", 5, 2, gesture.Hit{}},
		{"top-level block", 0, 0, gesture.Hit{}},
		{"below", 0, 9, gesture.Hit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.HitTest(tt.x, tt.y, 1))
		})
	}
}

func TestBlockAt(t *testing.T) {
	f := Build(sampleDoc(t), Options{Width: 21})

	b, ok := f.BlockAt(15, 2)
	require.True(t, ok)
	assert.Equal(t, document.NodeID("y"), b.ID)

	b, ok = f.BlockAt(20, 0)
	require.True(t, ok)
	assert.Equal(t, document.NodeID("p"), b.ID)

	_, ok = f.BlockAt(10, 2)
	assert.False(t, ok, "gap holds no block")
}

func TestSnapshot(t *testing.T) {
	f := Build(sampleDoc(t), Options{Width: 21})

	snap, ok := f.Snapshot("g")
	require.True(t, ok)
	assert.Equal(t, 20, snap.PairWidth(0))
	assert.Equal(t, GapWidth, snap.Gap)

	_, ok = f.Snapshot("missing")
	assert.False(t, ok)
}

func TestOverlayLayers(t *testing.T) {
	f := Build(sampleDoc(t), Options{Width: 21})

	assert.Empty(t, OverlayLayers(f, gesture.Overlay{}))

	ov := gesture.Overlay{
		Preview:   &gesture.Preview{Column: "X", X: 4, Width: 10},
		Indicator: &gesture.DropIndicator{Group: "g", Index: 1, X: 20},
	}
	layers := OverlayLayers(f, ov)
	assert.Len(t, layers, 2)

	ov = gesture.Overlay{
		Guide:  &gesture.ResizeGuide{Group: "g", X: 12},
		Widths: &gesture.WidthPreview{Group: "g", Left: 1.2, Right: 0.8},
	}
	layers = OverlayLayers(f, ov)
	require.Len(t, layers, 2)
	out := ansi.Strip(lipgloss.NewCanvas(append([]*lipgloss.Layer{lipgloss.NewLayer(strings.Join(f.Lines, "\n"))}, layers...)...).Render())
	assert.Contains(t, out, "1.20 │ 0.80")

	stale := gesture.Overlay{Indicator: &gesture.DropIndicator{Group: "gone"}}
	assert.Empty(t, OverlayLayers(f, stale))
}

func TestGhostBox(t *testing.T) {
	ghost := strings.Split(ansi.Strip(ghostBox(6, 3)), "\n")
	assert.Equal(t, []string{"┌⠿┄┄┄┐", "┆    ┆", "└┄┄┄┄┘"}, ghost)
}

func TestMenuLayer(t *testing.T) {
	_, box := MenuLayer(&gesture.Menu{X: 2, Y: 0, Cursor: 1}, 80, 24)
	assert.Equal(t, 2, box.X)
	assert.Equal(t, 1, box.Y)
	assert.Equal(t, len(gesture.MenuActions)+2, box.Height)

	i, ok := box.EntryAt(4, 2)
	require.True(t, ok)
	assert.Equal(t, 0, i)
	i, ok = box.EntryAt(4, box.Y+len(gesture.MenuActions))
	require.True(t, ok)
	assert.Equal(t, len(gesture.MenuActions)-1, i)

	_, ok = box.EntryAt(4, box.Y)
	assert.False(t, ok, "border row")
	_, ok = box.EntryAt(0, 2)
	assert.False(t, ok, "left of the menu")

	_, box = MenuLayer(&gesture.Menu{X: 78, Y: 22}, 80, 24)
	assert.LessOrEqual(t, box.X+box.Width, 80, "kept on screen")
	assert.LessOrEqual(t, box.Y+box.Height, 24)
}
