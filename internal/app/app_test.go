package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/pilar/internal/config"
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/events"
	"github.com/thenoetrevino/pilar/internal/gesture"
	"github.com/thenoetrevino/pilar/internal/logging"
	"github.com/thenoetrevino/pilar/internal/services/dnd"
)

// 0 intro 7 g[ 8 X[ 9 x ] 13 Y[ 14 y ] ] 19
func newDoc(t *testing.T) *document.Doc {
	t.Helper()
	d, err := document.New(document.DocSpec(
		document.Paragraph("intro").WithID("p"),
		document.ColumnGroup(
			document.Column(1, document.Paragraph("x")).WithID("X"),
			document.Column(1, document.Paragraph("y")).WithID("Y"),
		).WithID("g"),
	), document.WithIDGenerator(document.SequentialIDs("a")))
	require.NoError(t, err)
	return d
}

func TestNew(t *testing.T) {
	app := New(newDoc(t), WithLogger(logging.Discard()))

	require.NotNil(t, app.Editor)
	assert.NotNil(t, app.ColumnService)
	assert.NotNil(t, app.DropService)
	assert.NotNil(t, app.Keyboard)
	assert.Equal(t, config.Default(), app.Config)
	assert.Nil(t, app.EventClient())
	assert.False(t, app.Locked())
	assert.NoError(t, app.Close())
}

func TestNew_LockedFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Features.ColumnsLocked = true
	app := New(newDoc(t), WithConfig(cfg), WithLogger(logging.Discard()))

	assert.True(t, app.Locked())
	assert.False(t, app.ColumnService.DeleteColumn(8))
}

func TestSetLocked_SharedByEveryService(t *testing.T) {
	app := New(newDoc(t),
		WithSelection(document.Cursor(10)),
		WithLogger(logging.Discard()))
	before := app.Editor.State()

	app.SetLocked(true)
	assert.False(t, app.ColumnService.InsertColumnRight(8))
	assert.False(t, app.DropService.Drop(dnd.Drop{Dragged: "p", Target: "X", Side: dnd.SideLeft}))
	assert.False(t, app.Keyboard.Backspace())
	assert.Same(t, before, app.Editor.State())

	controller := app.Gestures(gesture.LayoutFunc(func(document.NodeID) (gesture.Snapshot, bool) {
		return gesture.Snapshot{}, false
	}))
	err := controller.PointerDown(gesture.Hit{Kind: gesture.HitHandle, Group: "g", Index: 0}, 0, 0)
	assert.Error(t, err)

	app.SetLocked(false)
	assert.True(t, app.ColumnService.InsertColumnRight(8))
}

func TestApp_PublishesToPeers(t *testing.T) {
	bus := events.NewBus()
	ca, cb := bus.Join("a"), bus.Join("b")

	alice := New(newDoc(t), WithEventPublisher(ca), WithPeerID("a"), WithDocID("doc"), WithLogger(logging.Discard()))
	bob := New(newDoc(t), WithEventPublisher(cb), WithPeerID("b"), WithDocID("doc"), WithLogger(logging.Discard()))
	t.Cleanup(func() {
		_ = alice.Close()
		_ = bob.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = bob.Editor.Run(ctx) }()

	require.True(t, alice.ColumnService.DeleteColumn(8))

	require.Eventually(t, func() bool {
		_, ok := bob.Editor.State().Doc().Node("g")
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, alice.Editor.State().Doc().Spec().Equal(bob.Editor.State().Doc().Spec()))
}
