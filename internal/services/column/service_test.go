package column

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/editor"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newEditor(t *testing.T, root *document.Spec, cursor int) *editor.Editor {
	t.Helper()
	d, err := document.New(root, document.WithIDGenerator(document.SequentialIDs("t")))
	require.NoError(t, err)
	return editor.New(d, editor.WithSelection(document.Cursor(cursor)))
}

// twoColumns builds: 0 intro 7 g[ 8 X[ 9 x ] 13 Y[ 14 y ] ] 19
func twoColumns() *document.Spec {
	return document.DocSpec(
		document.Paragraph("intro"),
		document.ColumnGroup(
			document.Column(1, document.Paragraph("x")).WithID("X"),
			document.Column(1, document.Paragraph("y")).WithID("Y"),
		).WithID("g"),
	)
}

func posOf(t *testing.T, e *editor.Editor, id document.NodeID) int {
	t.Helper()
	pos, ok := e.State().Doc().PosOf(id)
	require.True(t, ok, "node %s", id)
	return pos
}

func columnIDs(t *testing.T, e *editor.Editor, group document.NodeID) []document.NodeID {
	t.Helper()
	g, ok := e.State().Doc().Node(group)
	require.True(t, ok)
	return append([]document.NodeID(nil), g.Children...)
}

// assertWellFormed walks the document and checks the structural rules of
// column layouts directly.
func assertWellFormed(t *testing.T, d *document.Doc) {
	t.Helper()
	var walk func(n *document.Node)
	walk = func(n *document.Node) {
		switch n.Type {
		case document.TypeColumnGroup:
			assert.GreaterOrEqual(t, len(n.Children), 2, "group %s", n.ID)
		case document.TypeColumn:
			assert.GreaterOrEqual(t, len(n.Children), 1, "column %s", n.ID)
			assert.GreaterOrEqual(t, n.Attrs.Width, document.MinColumnWidth, "column %s", n.ID)
		}
		for _, c := range d.Children(n) {
			walk(c)
		}
	}
	walk(d.Root())
}

// ============================================================================
// DELETE
// ============================================================================

func TestDeleteColumn_DissolvesTwoColumnGroup(t *testing.T) {
	e := newEditor(t, twoColumns(), 15)
	svc := NewService(e)

	require.True(t, svc.DeleteColumn(8))

	d := e.State().Doc()
	_, ok := d.Node("g")
	assert.False(t, ok, "group node is gone")
	assert.True(t, d.Spec().Equal(document.DocSpec(
		document.Paragraph("intro"),
		document.Paragraph("y"),
	)))
	assert.Equal(t, document.Cursor(8), e.State().Selection(), "cursor stays before the y")
	assertWellFormed(t, d)
}

func TestDeleteColumn_CursorInDeletedColumn(t *testing.T) {
	e := newEditor(t, twoColumns(), 10)
	svc := NewService(e)

	require.True(t, svc.DeleteColumn(9))
	assert.Equal(t, document.Cursor(8), e.State().Selection(), "start of the inlined content")
}

func TestDeleteColumn_KeepsSiblingWidths(t *testing.T) {
	e := newEditor(t, document.DocSpec(document.ColumnGroup(
		document.Column(1.5, document.Paragraph("x")).WithID("X"),
		document.Column(1, document.Paragraph("y")).WithID("Y"),
		document.Column(0.7, document.Paragraph("z")).WithID("Z"),
	).WithID("g")), 8)
	svc := NewService(e)

	require.True(t, svc.DeleteColumn(posOf(t, e, "Y")))

	d := e.State().Doc()
	assert.Equal(t, []document.NodeID{"X", "Z"}, columnIDs(t, e, "g"))
	x, _ := d.Node("X")
	z, _ := d.Node("Z")
	assert.InDelta(t, 1.5, x.Attrs.Width, 1e-9)
	assert.InDelta(t, 0.7, z.Attrs.Width, 1e-9)
	assert.Equal(t, document.Cursor(4), e.State().Selection(), "cursor moves to the end of the previous column")
	assertWellFormed(t, d)
}

func TestDeleteColumn_FirstOfThree(t *testing.T) {
	e := newEditor(t, document.DocSpec(document.ColumnGroup(
		document.Column(1, document.Paragraph("x")).WithID("X"),
		document.EmptyColumn().WithID("Y"),
		document.EmptyColumn().WithID("Z"),
	).WithID("g")), 3)
	svc := NewService(e)

	require.True(t, svc.DeleteColumn(1))
	assert.Equal(t, []document.NodeID{"Y", "Z"}, columnIDs(t, e, "g"))
	assert.Equal(t, document.Cursor(3), e.State().Selection(), "start of the new first column")
}

func TestDeleteColumn_OutsideGroup(t *testing.T) {
	e := newEditor(t, twoColumns(), 2)
	before := e.State()
	svc := NewService(e)

	assert.False(t, svc.DeleteColumn(2))
	assert.Same(t, before, e.State())
}

// ============================================================================
// INSERT / DUPLICATE / CLEAR
// ============================================================================

func TestInsertColumnGroup(t *testing.T) {
	t.Run("replaces empty paragraph", func(t *testing.T) {
		e := newEditor(t, document.DocSpec(document.Paragraph("a"), document.Paragraph("")), 4)
		require.True(t, NewService(e).InsertColumnGroup(3))

		d := e.State().Doc()
		assert.True(t, d.Spec().Equal(document.DocSpec(
			document.Paragraph("a"),
			document.ColumnGroup(document.EmptyColumn(), document.EmptyColumn(), document.EmptyColumn()),
		)))
		assert.Equal(t, document.Cursor(6), e.State().Selection(), "cursor lands in the first column")
	})

	t.Run("inserts after non-empty block", func(t *testing.T) {
		e := newEditor(t, document.DocSpec(document.Paragraph("a"), document.Paragraph("b")), 2)
		require.True(t, NewService(e).InsertColumnGroup(2))

		d := e.State().Doc()
		assert.True(t, d.Spec().Equal(document.DocSpec(
			document.Paragraph("a"),
			document.ColumnGroup(document.EmptyColumn(), document.EmptyColumn()),
			document.Paragraph("b"),
		)))
		assert.Equal(t, document.Cursor(6), e.State().Selection())
	})

	t.Run("rejects fewer than two columns", func(t *testing.T) {
		e := newEditor(t, document.DocSpec(document.Paragraph("")), 1)
		svc := NewService(e)
		assert.False(t, svc.InsertColumnGroup(1))
		assert.False(t, svc.InsertColumnGroup(0))
	})
}

func TestInsertColumnLeftRight(t *testing.T) {
	e := newEditor(t, twoColumns(), 10)
	svc := NewService(e)

	require.True(t, svc.InsertColumnRight(10))
	ids := columnIDs(t, e, "g")
	require.Len(t, ids, 3)
	assert.Equal(t, document.NodeID("X"), ids[0])
	assert.Equal(t, document.NodeID("Y"), ids[2])
	assert.Equal(t, document.Cursor(15), e.State().Selection(), "cursor in the new column")

	require.True(t, svc.InsertColumnLeft(posOf(t, e, "X")))
	ids = columnIDs(t, e, "g")
	require.Len(t, ids, 4)
	assert.Equal(t, document.NodeID("X"), ids[1])

	n, _ := e.State().Doc().Node(ids[0])
	assert.True(t, e.State().Doc().IsEmptyColumn(n))
	assert.InDelta(t, document.DefaultColumnWidth, n.Attrs.Width, 1e-9)

	assert.False(t, svc.InsertColumnLeft(2), "not inside a group")
	assertWellFormed(t, e.State().Doc())
}

func TestDuplicateColumn(t *testing.T) {
	e := newEditor(t, document.DocSpec(document.ColumnGroup(
		document.Column(1.4, document.Heading(2, "title"), document.Paragraph("body")).WithID("X"),
		document.EmptyColumn().WithID("Y"),
	).WithID("g")), 3)
	svc := NewService(e)

	require.True(t, svc.DuplicateColumn(1))

	d := e.State().Doc()
	ids := columnIDs(t, e, "g")
	require.Len(t, ids, 3)
	assert.Equal(t, document.NodeID("X"), ids[0])
	assert.NotEqual(t, document.NodeID("X"), ids[1], "copy gets a fresh id")

	orig, _ := d.Extract("X")
	dup, _ := d.Extract(ids[1])
	assert.True(t, orig.Equal(dup))
	assert.NotEqual(t, orig.Content[0].ID, dup.Content[0].ID)
}

func TestClearColumnContents_Idempotent(t *testing.T) {
	e := newEditor(t, document.DocSpec(document.ColumnGroup(
		document.Column(0.8, document.Paragraph("one"), document.Paragraph("two")).WithID("X"),
		document.EmptyColumn().WithID("Y"),
	).WithID("g")), 3)
	svc := NewService(e)

	require.True(t, svc.ClearColumnContents(1))
	first := e.State()
	x, _ := first.Doc().Node("X")
	assert.True(t, first.Doc().IsEmptyColumn(x))
	assert.InDelta(t, 0.8, x.Attrs.Width, 1e-9, "width untouched")
	assert.Equal(t, document.Cursor(3), first.Selection())

	require.True(t, svc.ClearColumnContents(1))
	assert.Same(t, first, e.State(), "second clear changes nothing")
	assert.True(t, first.Doc().Spec().Equal(e.State().Doc().Spec()))
}

// ============================================================================
// WIDTH AND MOVE
// ============================================================================

func TestSetColumnWidth(t *testing.T) {
	e := newEditor(t, twoColumns(), 10)
	svc := NewService(e)

	require.True(t, svc.SetColumnWidth(10, 2))
	x, _ := e.State().Doc().Node("X")
	assert.InDelta(t, 2.0, x.Attrs.Width, 1e-9)

	require.True(t, svc.SetColumnWidth(posOf(t, e, "Y"), 0.1))
	y, _ := e.State().Doc().Node("Y")
	assert.InDelta(t, document.MinColumnWidth, y.Attrs.Width, 1e-9, "clamped")

	assert.False(t, svc.SetColumnWidth(2, 1.2))
}

func TestSetColumnWidths(t *testing.T) {
	e := newEditor(t, twoColumns(), 10)
	svc := NewService(e)

	require.True(t, svc.SetColumnWidths(7, 0, 1.3, 0.7))
	d := e.State().Doc()
	x, _ := d.Node("X")
	y, _ := d.Node("Y")
	assert.InDelta(t, 1.3, x.Attrs.Width, 1e-9)
	assert.InDelta(t, 0.7, y.Attrs.Width, 1e-9)

	assert.False(t, svc.SetColumnWidths(7, 1, 1, 1), "no column after the last")

	require.True(t, e.Undo(), "the committed widths are one undo step")
	x, _ = e.State().Doc().Node("X")
	assert.InDelta(t, 1.0, x.Attrs.Width, 1e-9)
}

func TestSetColumnWidth_RejectsNonFinite(t *testing.T) {
	e := newEditor(t, twoColumns(), 10)
	svc := NewService(e)
	before := e.State()

	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.False(t, svc.SetColumnWidth(10, w), "width %v", w)
		assert.False(t, svc.SetColumnWidths(7, 0, w, 1), "left %v", w)
		assert.False(t, svc.SetColumnWidths(7, 0, 1, w), "right %v", w)
	}

	assert.Same(t, before, e.State())
	assert.NoError(t, document.Check(e.State().Doc()))
	assertWellFormed(t, e.State().Doc())
}

func TestMoveColumn_SwapsPairwise(t *testing.T) {
	e := newEditor(t, document.DocSpec(document.ColumnGroup(
		document.Column(1, document.Paragraph("a")).WithID("A"),
		document.Column(1, document.Paragraph("b")).WithID("B"),
		document.Column(1, document.Paragraph("c")).WithID("C"),
		document.Column(1, document.Paragraph("d")).WithID("D"),
	).WithID("g")), 3)
	svc := NewService(e)

	require.True(t, svc.MoveColumn(0, 0, 2))

	assert.Equal(t, []document.NodeID{"C", "B", "A", "D"}, columnIDs(t, e, "g"))
	assert.Equal(t, document.Cursor(13), e.State().Selection(), "cursor travels with column A")
	assertWellFormed(t, e.State().Doc())
}

func TestMoveColumn_Rejects(t *testing.T) {
	e := newEditor(t, twoColumns(), 10)
	before := e.State()
	svc := NewService(e)

	assert.False(t, svc.MoveColumn(7, 1, 1))
	assert.False(t, svc.MoveColumn(7, 0, 2))
	assert.False(t, svc.MoveColumn(7, -1, 0))
	assert.False(t, svc.MoveColumn(0, 0, 1), "no group at the intro paragraph")
	assert.Same(t, before, e.State())
}

// ============================================================================
// ROUND TRIP AND GATE
// ============================================================================

func TestInsertGroupThenDelete_RoundTrip(t *testing.T) {
	original := document.DocSpec(
		document.Paragraph("before"),
		document.Paragraph(""),
		document.Paragraph("after"),
	)

	for _, which := range []int{0, 1} {
		e := newEditor(t, original, 9)
		svc := NewService(e)
		require.True(t, svc.InsertColumnGroup(2))

		g, _, err := GroupAt(e.State().Doc(), 8)
		require.NoError(t, err)
		colPos, _ := e.State().Doc().PosOf(g.Children[which])
		require.True(t, svc.DeleteColumn(colPos))

		assert.True(t, e.State().Doc().Spec().Equal(original), "deleting column %d", which)
	}
}

func TestGate_LocksEveryCommand(t *testing.T) {
	e := newEditor(t, twoColumns(), 10)
	before := e.State()
	svc := NewService(e, WithGate(StaticGate(true)))

	assert.True(t, svc.Locked())
	assert.False(t, svc.InsertColumnGroup(2))
	assert.False(t, svc.InsertColumnLeft(8))
	assert.False(t, svc.InsertColumnRight(8))
	assert.False(t, svc.DuplicateColumn(8))
	assert.False(t, svc.ClearColumnContents(8))
	assert.False(t, svc.DeleteColumn(8))
	assert.False(t, svc.SetColumnWidth(8, 2))
	assert.False(t, svc.SetColumnWidths(7, 0, 1.2, 0.8))
	assert.False(t, svc.MoveColumn(7, 0, 1))
	assert.Same(t, before, e.State(), "locked commands never touch the document")
}

func TestGate_Dynamic(t *testing.T) {
	e := newEditor(t, twoColumns(), 10)
	locked := true
	svc := NewService(e, WithGate(GateFunc(func() bool { return locked })))

	assert.False(t, svc.DeleteColumn(8))
	locked = false
	assert.True(t, svc.DeleteColumn(8))
}

func TestColumnByID(t *testing.T) {
	e := newEditor(t, twoColumns(), 10)
	loc, err := ColumnByID(e.State().Doc(), "Y")
	require.NoError(t, err)
	assert.Equal(t, 13, loc.ColumnPos)
	assert.Equal(t, 7, loc.GroupPos)
	assert.Equal(t, 1, loc.Index)

	_, err = ColumnByID(e.State().Doc(), "missing")
	assert.ErrorIs(t, err, document.ErrNodeNotFound)
	_, err = ColumnByID(e.State().Doc(), "g")
	assert.ErrorIs(t, err, ErrNotInColumn)
}
