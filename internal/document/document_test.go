package document

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// sampleDoc builds:
//
//	0 p1("ab") 4 g[ 5 c1[ 6 x("x") 9 ] 10 c2[ 11 yz("yz") 15 ] 16 ] 17 tail("") 19
func sampleDoc(t *testing.T) *Doc {
	t.Helper()
	d, err := New(DocSpec(
		Paragraph("ab").WithID("p1"),
		ColumnGroup(
			Column(1, Paragraph("x").WithID("x")).WithID("c1"),
			Column(1, Paragraph("yz").WithID("yz")).WithID("c2"),
		).WithID("g"),
		Paragraph("").WithID("tail"),
	).WithID("doc"), WithIDGenerator(SequentialIDs("n")))
	require.NoError(t, err)
	return d
}

// ============================================================================
// POSITIONS
// ============================================================================

func TestPositions(t *testing.T) {
	d := sampleDoc(t)
	assert.Equal(t, 19, d.ContentSize())

	for id, want := range map[NodeID]int{"p1": 0, "g": 4, "c1": 5, "x": 6, "c2": 10, "yz": 11, "tail": 17} {
		pos, ok := d.PosOf(id)
		require.True(t, ok, id)
		assert.Equal(t, want, pos, id)
	}

	_, ok := d.PosOf("missing")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	d := sampleDoc(t)

	tests := []struct {
		pos        int
		depth      int
		parent     NodeID
		index      int
		nodeAt     NodeID
		parentOffs int
	}{
		{pos: 0, depth: 0, parent: "doc", index: 0, nodeAt: "p1"},
		{pos: 2, depth: 1, parent: "p1", parentOffs: 1},
		{pos: 4, depth: 0, parent: "doc", index: 1, nodeAt: "g"},
		{pos: 5, depth: 1, parent: "g", index: 0, nodeAt: "c1"},
		{pos: 6, depth: 2, parent: "c1", index: 0, nodeAt: "x"},
		{pos: 7, depth: 3, parent: "x", parentOffs: 0},
		{pos: 10, depth: 1, parent: "g", index: 1, nodeAt: "c2"},
		{pos: 14, depth: 3, parent: "yz", parentOffs: 2},
		{pos: 16, depth: 1, parent: "g", index: 2},
		{pos: 19, depth: 0, parent: "doc", index: 3},
	}

	for _, tt := range tests {
		rp, err := d.Resolve(tt.pos)
		require.NoError(t, err)
		assert.Equal(t, tt.depth, rp.Depth(), "pos %d", tt.pos)
		assert.Equal(t, tt.parent, rp.Parent().ID, "pos %d", tt.pos)
		if rp.Parent().Type.IsTextblock() {
			assert.Equal(t, tt.parentOffs, rp.ParentOffset(), "pos %d", tt.pos)
			continue
		}
		assert.Equal(t, tt.index, rp.Index(rp.Depth()), "pos %d", tt.pos)
		n, ok := d.NodeAt(tt.pos)
		if tt.nodeAt == "" {
			assert.False(t, ok, "pos %d", tt.pos)
		} else {
			require.True(t, ok, "pos %d", tt.pos)
			assert.Equal(t, tt.nodeAt, n.ID, "pos %d", tt.pos)
		}
	}

	_, err := d.Resolve(20)
	assert.ErrorIs(t, err, ErrInvalidPosition)
	_, err = d.Resolve(-1)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestAncestor(t *testing.T) {
	d := sampleDoc(t)

	col, pos, ok := d.Ancestor(13, TypeColumn)
	require.True(t, ok)
	assert.Equal(t, NodeID("c2"), col.ID)
	assert.Equal(t, 10, pos)

	grp, pos, ok := d.Ancestor(4, TypeColumnGroup)
	require.True(t, ok)
	assert.Equal(t, NodeID("g"), grp.ID)
	assert.Equal(t, 4, pos)

	_, _, ok = d.Ancestor(2, TypeColumn)
	assert.False(t, ok)
}

func TestTextblocks(t *testing.T) {
	d := sampleDoc(t)
	assert.Equal(t, []TextblockSpan{
		{ID: "p1", Start: 1, End: 3},
		{ID: "x", Start: 7, End: 8},
		{ID: "yz", Start: 12, End: 14},
		{ID: "tail", Start: 18, End: 18},
	}, d.Textblocks())

	assert.Equal(t, 1, d.TextPosNear(0))
	assert.Equal(t, 7, d.TextPosNear(4))
	assert.Equal(t, 12, d.TextPosNear(9))
	assert.Equal(t, 18, d.TextPosNear(19))
}

// ============================================================================
// SCHEMA
// ============================================================================

func TestCheck_RejectsBrokenStructure(t *testing.T) {
	tests := []struct {
		name string
		root *Spec
	}{
		{"group with one column", DocSpec(ColumnGroup(EmptyColumn()))},
		{"column without blocks", DocSpec(ColumnGroup(Column(1), EmptyColumn()))},
		{"column below minimum width", DocSpec(ColumnGroup(Column(0.4, Paragraph("")), EmptyColumn()))},
		{"column width NaN", DocSpec(ColumnGroup(Column(math.NaN(), Paragraph("")), EmptyColumn()))},
		{"column width +Inf", DocSpec(ColumnGroup(Column(math.Inf(1), Paragraph("")), EmptyColumn()))},
		{"column width -Inf", DocSpec(ColumnGroup(Column(math.Inf(-1), Paragraph("")), EmptyColumn()))},
		{"group nested in column", DocSpec(ColumnGroup(
			Column(1, ColumnGroup(EmptyColumn(), EmptyColumn())),
			EmptyColumn(),
		))},
		{"column in doc flow", DocSpec(EmptyColumn())},
		{"empty doc", DocSpec()},
		{"heading level", DocSpec(Heading(7, "h"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.root)
			assert.ErrorIs(t, err, ErrSchemaViolation)
		})
	}
}

// ============================================================================
// STEPS AND TRANSACTIONS
// ============================================================================

func TestStepMap(t *testing.T) {
	m := StepMap{Start: 4, OldSize: 13, NewSize: 3}
	assert.Equal(t, 2, m.Map(2, 1))
	assert.Equal(t, 4, m.Map(4, 1))
	assert.Equal(t, 4, m.Map(10, -1))
	assert.Equal(t, 7, m.Map(10, 1))
	assert.Equal(t, 7, m.Map(17, -1))
	assert.Equal(t, 9, m.Map(19, 1))

	ins := StepMap{Start: 5, NewSize: 2}
	assert.Equal(t, 5, ins.Map(5, -1))
	assert.Equal(t, 7, ins.Map(5, 1))
}

func TestTransaction_DissolveGroup(t *testing.T) {
	d := sampleDoc(t)
	survivor := d.ExtractChildren("c2")

	tr := NewTransaction(d).Replace(4, 17, survivor...)
	require.NoError(t, tr.Commit())

	out := tr.Doc()
	_, ok := out.Node("g")
	assert.False(t, ok, "group must be gone")
	_, ok = out.Node("c1")
	assert.False(t, ok)
	pos, ok := out.PosOf("yz")
	require.True(t, ok, "moved paragraph keeps its id")
	assert.Equal(t, 4, pos)
	assert.Equal(t, 10, out.ContentSize())

	// original untouched
	_, ok = d.Node("g")
	assert.True(t, ok)
	assert.Equal(t, 9, tr.Mapping().Map(18, 1))
}

func TestTransaction_SchemaViolationIsRejected(t *testing.T) {
	d := sampleDoc(t)

	// removing one column leaves a one-column group
	tr := NewTransaction(d).Delete(5, 10)
	require.NoError(t, tr.Err())
	assert.ErrorIs(t, tr.Commit(), ErrSchemaViolation)

	s := NewState(d, Cursor(1))
	_, err := s.Apply(tr)
	assert.ErrorIs(t, err, ErrTransactionFailed)
}

func TestTransaction_NonFiniteWidthIsRejected(t *testing.T) {
	d := sampleDoc(t)
	for _, w := range []float64{math.NaN(), math.Inf(1)} {
		tr := NewTransaction(d).SetAttr(5, AttrWidth, w)
		require.NoError(t, tr.Err())
		assert.ErrorIs(t, tr.Commit(), ErrSchemaViolation, "width %v", w)
	}
	c1, _ := d.Node("c1")
	assert.InDelta(t, 1.0, c1.Attrs.Width, 1e-9)
}

func TestTransaction_FailedStepPoisons(t *testing.T) {
	d := sampleDoc(t)
	// 2 sits inside a paragraph and 6 inside a column, so the replace fails
	// and the attr step after it never runs.
	tr := NewTransaction(d).
		Replace(2, 6).
		SetAttr(5, AttrWidth, 2)
	assert.ErrorIs(t, tr.Err(), ErrNotBoundary)
	assert.Empty(t, tr.Steps())
	assert.ErrorIs(t, tr.Commit(), ErrTransactionFailed)
}

func TestTransaction_TextAndAttr(t *testing.T) {
	d := sampleDoc(t)
	tr := NewTransaction(d).
		InsertText(2, "XY").
		SetAttr(7, AttrWidth, 1.5).
		DeleteText(15, 16)
	require.NoError(t, tr.Commit())

	out := tr.Doc()
	p1, _ := out.Node("p1")
	assert.Equal(t, "aXYb", p1.Text)
	c1, _ := out.Node("c1")
	assert.InDelta(t, 1.5, c1.Attrs.Width, 1e-9)
	yz, _ := out.Node("yz")
	assert.Equal(t, "y", yz.Text)

	bad := NewTransaction(d).SetAttr(0, AttrWidth, 2)
	assert.ErrorIs(t, bad.Err(), ErrUnknownAttr)

	notText := NewTransaction(d).InsertText(5, "q")
	assert.ErrorIs(t, notText.Err(), ErrNotTextblock)
}

func TestTransaction_RecordsReplayWithSameIDs(t *testing.T) {
	d := sampleDoc(t)
	peer := d.Clone()

	tr := NewTransaction(d).Insert(17, ColumnGroup(EmptyColumn(), EmptyColumn()))
	require.NoError(t, tr.Commit())

	replay := NewTransaction(peer)
	for _, rec := range tr.Records() {
		step, err := StepFromRecord(rec)
		require.NoError(t, err)
		replay.Step(step)
	}
	require.NoError(t, replay.Commit())
	assert.Equal(t, tr.Doc().Spec(), replay.Doc().Spec())

	_, err := StepFromRecord(StepRecord{Kind: "bogus"})
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestState_Apply(t *testing.T) {
	d := sampleDoc(t)
	s := NewState(d, Cursor(18))

	next, err := s.Apply(s.Tr().Insert(0, Paragraph("new")))
	require.NoError(t, err)
	assert.Equal(t, Cursor(23), next.Selection())

	_, err = next.Apply(s.Tr())
	assert.ErrorIs(t, err, ErrStaleTransaction)

	pinned, err := next.Apply(next.Tr().SetSelection(Cursor(2)))
	require.NoError(t, err)
	assert.Equal(t, Cursor(2), pinned.Selection())
}

func TestSpec_EqualIgnoresIDs(t *testing.T) {
	d := sampleDoc(t)
	fresh := d.Spec().Fresh()
	assert.True(t, d.Spec().Equal(fresh))
	assert.Empty(t, fresh.Content[0].ID)

	fresh.Content[0].Text = "changed"
	assert.False(t, d.Spec().Equal(fresh))
}

func TestTransaction_InvertedRestoresDocument(t *testing.T) {
	d := sampleDoc(t)
	tr := NewTransaction(d).
		Replace(4, 17, d.ExtractChildren("c1")...).
		InsertText(5, "!").
		SetAttr(0, AttrLevel, 2)
	require.ErrorIs(t, tr.Err(), ErrUnknownAttr)

	tr = NewTransaction(d).
		Replace(4, 17, d.ExtractChildren("c1")...).
		InsertText(5, "!")
	require.NoError(t, tr.Commit())

	undo := NewTransaction(tr.Doc())
	for _, step := range tr.Inverted() {
		undo.Step(step)
	}
	require.NoError(t, undo.Commit())
	assert.Equal(t, d.Spec(), undo.Doc().Spec())
}

func TestStep_MapDropsDeletedContent(t *testing.T) {
	remote := Mapping{{Start: 4, OldSize: 13, NewSize: 0}}

	assert.Nil(t, (&AttrStep{Pos: 5, Key: AttrWidth, Value: 1}).Map(remote))
	assert.Nil(t, (&TextStep{Pos: 12, Delete: 1}).Map(remote))

	shifted := (&ReplaceStep{From: 17, To: 19}).Map(remote)
	require.NotNil(t, shifted)
	assert.Equal(t, 4, shifted.(*ReplaceStep).From)
	assert.Equal(t, 6, shifted.(*ReplaceStep).To)
}
