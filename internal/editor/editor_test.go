package editor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/events"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// newDoc builds: 0 a("one") 5 g[ 6 c1[ 7 x("x") ] 11 c2[ 12 y("y") ] ] 17 b("two") 22
func newDoc(t *testing.T) *document.Doc {
	t.Helper()
	d, err := document.New(document.DocSpec(
		document.Paragraph("one").WithID("a"),
		document.ColumnGroup(
			document.Column(1, document.Paragraph("x").WithID("x")).WithID("c1"),
			document.Column(1, document.Paragraph("y").WithID("y")).WithID("c2"),
		).WithID("g"),
		document.Paragraph("two").WithID("b"),
	), document.WithIDGenerator(document.SequentialIDs("e")))
	require.NoError(t, err)
	return d
}

// gatedPublisher holds every SendEvent until release is closed.
type gatedPublisher struct {
	entered chan string
	release chan struct{}

	mu   sync.Mutex
	sent []string
}

func newGatedPublisher() *gatedPublisher {
	return &gatedPublisher{entered: make(chan string, 4), release: make(chan struct{})}
}

func (p *gatedPublisher) SendEvent(event events.Event) error {
	p.entered <- event.Label
	<-p.release
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, event.Label)
	return nil
}

func (p *gatedPublisher) Listen(context.Context) (<-chan events.Event, error) {
	return make(chan events.Event), nil
}

func (p *gatedPublisher) Subscribe(string) error { return nil }
func (p *gatedPublisher) Close() error           { return nil }

func (p *gatedPublisher) labels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.sent...)
}

func textOf(t *testing.T, e *Editor, id document.NodeID) string {
	t.Helper()
	n, ok := e.State().Doc().Node(id)
	require.True(t, ok, "node %s", id)
	return n.Text
}

// ============================================================================
// DISPATCH AND HISTORY
// ============================================================================

func TestDispatch_RejectsStaleAndInvalid(t *testing.T) {
	e := New(newDoc(t))
	stale := e.State().Tr().InsertText(1, "!")
	require.NoError(t, e.Dispatch(e.State().Tr().InsertText(1, "?")))

	assert.ErrorIs(t, e.Dispatch(stale), document.ErrStaleTransaction)

	broken := e.State().Tr().Delete(6, 11) // leaves a one-column group
	assert.ErrorIs(t, e.Dispatch(broken), document.ErrSchemaViolation)
	_, ok := e.State().Doc().Node("c1")
	assert.True(t, ok, "failed dispatch must not touch the document")
}

func TestDispatch_NotifiesListeners(t *testing.T) {
	e := New(newDoc(t))
	var labels []string
	e.Subscribe(func(tr *document.Transaction, _ *document.State) {
		labels = append(labels, tr.Label())
	})

	require.NoError(t, e.Dispatch(e.State().Tr().InsertText(1, "!").SetLabel("type")))
	require.NoError(t, e.SetSelection(document.Cursor(3)))
	assert.Equal(t, []string{"type", "select"}, labels)
}

func TestUndoRedo(t *testing.T) {
	d := newDoc(t)
	e := New(d)
	require.NoError(t, e.Dispatch(e.State().Tr().Replace(5, 17, d.ExtractChildren("c2")...).SetLabel("dissolve")))
	_, ok := e.State().Doc().Node("g")
	require.False(t, ok)

	require.True(t, e.CanUndo())
	require.True(t, e.Undo())
	assert.Equal(t, d.Spec(), e.State().Doc().Spec(), "undo restores ids too")
	assert.False(t, e.CanUndo())

	require.True(t, e.Redo())
	_, ok = e.State().Doc().Node("g")
	assert.False(t, ok)

	require.True(t, e.Undo())
	assert.False(t, e.Undo())
}

func TestHistory_SkipsOptOutAndClearsRedo(t *testing.T) {
	e := New(newDoc(t))
	require.NoError(t, e.Dispatch(e.State().Tr().InsertText(1, "A").SetAddToHistory(false)))
	assert.False(t, e.CanUndo())

	require.NoError(t, e.Dispatch(e.State().Tr().InsertText(1, "B")))
	require.True(t, e.Undo())
	assert.True(t, e.CanRedo())
	require.NoError(t, e.Dispatch(e.State().Tr().InsertText(1, "C")))
	assert.False(t, e.CanRedo())
	assert.Equal(t, "CAone", textOf(t, e, "a"))
}

func TestHistory_MapsThroughUntrackedChanges(t *testing.T) {
	e := New(newDoc(t))
	require.NoError(t, e.Dispatch(e.State().Tr().InsertText(19, "!")))
	assert.Equal(t, "t!wo", textOf(t, e, "b"))

	// an untracked paragraph at the top shifts everything by 5
	require.NoError(t, e.Dispatch(e.State().Tr().Insert(0, document.Paragraph("new")).SetAddToHistory(false)))

	require.True(t, e.Undo())
	assert.Equal(t, "two", textOf(t, e, "b"))
	assert.Equal(t, 27, e.State().Doc().ContentSize())
}

// ============================================================================
// REMOTE PEERS
// ============================================================================

func TestRemoteEdits_TravelOverBus(t *testing.T) {
	bus := events.NewBus()
	ca, cb := bus.Join("a"), bus.Join("b")
	t.Cleanup(func() {
		_ = ca.Close()
		_ = cb.Close()
	})

	base := newDoc(t)
	alice := New(base, WithPublisher(ca), WithPeerID("a"), WithDocID("doc"))
	bob := New(base.Clone(), WithPublisher(cb), WithPeerID("b"), WithDocID("doc"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = bob.Run(ctx) }()

	require.NoError(t, alice.Dispatch(alice.State().Tr().
		Replace(5, 17, base.ExtractChildren("c1")...).
		SetLabel("deleteColumn")))

	require.Eventually(t, func() bool {
		_, ok := bob.State().Doc().Node("g")
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, alice.State().Doc().Spec(), bob.State().Doc().Spec())
	assert.False(t, bob.CanUndo(), "remote transactions are not undoable locally")
}

func TestDispatch_PublishesOutsideTheStateLock(t *testing.T) {
	pub := newGatedPublisher()
	e := New(newDoc(t), WithPublisher(pub), WithSelection(document.Cursor(1)))

	var wg sync.WaitGroup
	dispatch := func(insert, label string) {
		tr := e.State().Tr().InsertText(1, insert).SetLabel(label)
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, e.Dispatch(tr))
		}()
	}

	dispatch("A", "first")
	select {
	case label := <-pub.entered:
		require.Equal(t, "first", label)
	case <-time.After(2 * time.Second):
		t.Fatal("first transaction never reached the publisher")
	}

	text := func() string {
		n, ok := e.State().Doc().Node("a")
		if !ok {
			return ""
		}
		return n.Text
	}

	// the publisher is stuck; readers and the next commit still get through
	read := make(chan string, 1)
	go func() { read <- text() }()
	select {
	case got := <-read:
		assert.Equal(t, "Aone", got)
	case <-time.After(2 * time.Second):
		t.Fatal("State blocked behind a pending publish")
	}

	dispatch("B", "second")
	require.Eventually(t, func() bool {
		return text() == "BAone"
	}, 2*time.Second, 5*time.Millisecond)

	close(pub.release)
	wg.Wait()
	assert.Equal(t, []string{"first", "second"}, pub.labels(), "commit order is kept")
}

func TestApplyRemote_IgnoresOwnAndForeignEvents(t *testing.T) {
	e := New(newDoc(t), WithPeerID("me"), WithDocID("doc"))
	before := e.State()

	require.NoError(t, e.ApplyRemote(events.Event{Type: events.EventTransactionCommitted, PeerID: "me"}))
	require.NoError(t, e.ApplyRemote(events.Event{Type: events.EventTransactionCommitted, PeerID: "x", DocID: "other"}))
	assert.Same(t, before, e.State())

	err := e.ApplyRemote(events.Event{Type: events.EventTransactionCommitted, PeerID: "x", Steps: []byte{0xff}})
	assert.ErrorIs(t, err, ErrRemoteRejected)
}

// ============================================================================
// TEXT EDITING
// ============================================================================

func TestTextEditing(t *testing.T) {
	e := New(newDoc(t), WithSelection(document.Cursor(4)))

	require.True(t, e.InsertText("!"))
	assert.Equal(t, "one!", textOf(t, e, "a"))
	assert.Equal(t, document.Cursor(5), e.State().Selection())

	require.True(t, e.DeleteBackward())
	assert.Equal(t, "one", textOf(t, e, "a"))

	require.NoError(t, e.SetSelection(document.Cursor(2)))
	require.True(t, e.SplitBlock())
	assert.Equal(t, "o", textOf(t, e, "a"))
	assert.Equal(t, document.Cursor(4), e.State().Selection())

	require.True(t, e.DeleteBackward(), "joins with the previous paragraph")
	assert.Equal(t, "one", textOf(t, e, "a"))
	assert.Equal(t, document.Cursor(2), e.State().Selection())
}

func TestDeleteBackward_DoesNotJoinAcrossGroup(t *testing.T) {
	e := New(newDoc(t), WithSelection(document.Cursor(18)))
	assert.False(t, e.DeleteBackward())
}

func TestMoveCursor(t *testing.T) {
	e := New(newDoc(t), WithSelection(document.Cursor(4)))

	require.True(t, e.MoveCursor(Right))
	assert.Equal(t, 8, e.State().Selection().Head, "into the first column")
	require.True(t, e.MoveCursor(Down))
	assert.Equal(t, 13, e.State().Selection().Head)
	require.True(t, e.MoveCursor(Left))
	assert.Equal(t, 9, e.State().Selection().Head, "end of the first column")
	require.True(t, e.MoveCursor(Up))
	assert.Equal(t, 2, e.State().Selection().Head)

	require.True(t, e.CursorTo("b", 99))
	assert.Equal(t, 21, e.State().Selection().Head)
	assert.False(t, e.MoveCursor(Right))
}
