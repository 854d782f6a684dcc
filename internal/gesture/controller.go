// Package gesture turns pointer input into column reorder and resize
// gestures. Gestures are local: they keep their visual state in an Overlay
// and dispatch at most one transaction, on release.
package gesture

import (
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/services/column"
)

const (
	// DefaultDragThreshold is how far, in pixels, the pointer must travel
	// before a press on a handle counts as a drag instead of a click.
	DefaultDragThreshold = 4

	// DefaultHitSlop widens the resize zone on each side of a gap.
	DefaultHitSlop = 1
)

// HitKind tells what part of a column group is under the pointer.
type HitKind int

const (
	HitNone HitKind = iota
	HitHandle
	HitGap
)

// Hit is the host's answer to "what is under the pointer". For HitGap,
// Index is the column left of the gap.
type Hit struct {
	Kind  HitKind
	Group document.NodeID
	Index int
}

// Result reports how a gesture ended.
type Result int

const (
	ResultNone Result = iota
	ResultMoved
	ResultResized
	ResultMenu
	ResultCancelled
	ResultAborted
	ResultRejected
)

func (r Result) String() string {
	switch r {
	case ResultMoved:
		return "moved"
	case ResultResized:
		return "resized"
	case ResultMenu:
		return "menu"
	case ResultCancelled:
		return "cancelled"
	case ResultAborted:
		return "aborted"
	case ResultRejected:
		return "rejected"
	default:
		return "none"
	}
}

// Option is a functional option for configuring the controller
type Option func(*Controller)

// WithDragThreshold sets the click/drag threshold in pixels
func WithDragThreshold(px int) Option {
	return func(c *Controller) {
		c.dragThreshold = max(0, px)
	}
}

// WithHitSlop sets how far the resize zone reaches past each gap edge
func WithHitSlop(px int) Option {
	return func(c *Controller) {
		c.hitSlop = max(0, px)
	}
}

// WithMinWidth raises the smallest weight a resize may leave. Values below
// the document minimum are ignored.
func WithMinWidth(w float64) Option {
	return func(c *Controller) {
		c.minWidth = max(w, document.MinColumnWidth)
	}
}

// WithLogger sets the logger for gesture diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller runs reorder and resize gestures over column groups and owns
// the structural-edit menu opened by clicking a handle.
type Controller struct {
	machine *Machine
	host    column.Host
	columns column.Service
	layout  Layout
	logger  *slog.Logger

	dragThreshold int
	hitSlop       int
	minWidth      float64

	reorder *reorder
	resize  *resize
	menu    *Menu
}

// NewController creates a gesture controller. Commands go through columns so
// the feature gate applies to every commit.
func NewController(host column.Host, columns column.Service, layout Layout, opts ...Option) *Controller {
	c := &Controller{
		machine:       NewMachine(),
		host:          host,
		columns:       columns,
		layout:        layout,
		logger:        slog.Default(),
		dragThreshold: DefaultDragThreshold,
		hitSlop:       DefaultHitSlop,
		minWidth:      document.MinColumnWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase { return c.machine.Phase() }

// Overlay returns what the host should draw on top of the document.
func (c *Controller) Overlay() Overlay { return c.machine.Overlay() }

// HitSlop returns the configured resize slop for host hit-testing.
func (c *Controller) HitSlop() int { return c.hitSlop }

// Hover updates the hover highlight. It is ignored while a gesture runs.
func (c *Controller) Hover(hit Hit) {
	if c.machine.Active() {
		return
	}
	if hit.Kind == HitNone {
		if c.machine.Phase() == Hovering {
			_ = c.machine.Transition(Idle)
		}
		return
	}
	if err := c.machine.Transition(Hovering); err != nil {
		c.logger.Debug("hover ignored", "error", err)
		return
	}
	c.machine.overlayRef().Hover = &Hover{Group: hit.Group, Index: hit.Index, Kind: hit.Kind}
}

// PointerDown starts a reorder on a handle or a resize on a gap. Any open
// menu is closed.
func (c *Controller) PointerDown(hit Hit, x, y int) error {
	if c.machine.Active() {
		return ErrGestureActive
	}
	c.menu = nil
	if c.columns.Locked() {
		c.logger.Debug("gesture rejected", "error", column.ErrLocked)
		return column.ErrLocked
	}
	if hit.Kind == HitNone {
		return ErrInvalidHit
	}

	snap, ok := c.layout.Snapshot(hit.Group)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoLayout, hit.Group)
	}
	group, ok := c.host.State().Doc().Node(hit.Group)
	if !ok || group.Type != document.TypeColumnGroup {
		return fmt.Errorf("%w: %s", ErrStaleGesture, hit.Group)
	}
	if hit.Index < 0 || hit.Index >= len(group.Children) || hit.Index >= len(snap.Columns) {
		return fmt.Errorf("%w: column %d", ErrInvalidHit, hit.Index)
	}

	c.Hover(hit)
	switch hit.Kind {
	case HitHandle:
		return c.startReorder(group, hit.Index, snap, x, y)
	case HitGap:
		return c.startResize(group, hit.Index, snap, x)
	}
	return ErrInvalidHit
}

// PointerMove feeds a pointer position to the running gesture. A panic in
// the gesture code is logged and cancels the gesture; it never reaches the
// caller.
func (c *Controller) PointerMove(x, y int) (err error) {
	if !c.machine.Active() {
		return nil
	}
	defer c.recoverPanic("move", &err)

	if err := c.revalidate(); err != nil {
		c.abort(err)
		return err
	}
	switch c.machine.Phase() {
	case Dragging:
		c.moveReorder(x, y)
	case Resizing:
		c.moveResize(x)
	}
	return nil
}

// PointerUp ends the running gesture and dispatches its transaction, if
// any.
func (c *Controller) PointerUp(x, y int) (result Result, err error) {
	if !c.machine.Active() {
		return ResultNone, nil
	}
	defer c.recoverPanic("release", &err)

	if err := c.revalidate(); err != nil {
		c.abort(err)
		return ResultAborted, err
	}
	switch c.machine.Phase() {
	case Dragging:
		return c.releaseReorder(x, y)
	case Resizing:
		return c.releaseResize(x)
	}
	return ResultNone, nil
}

// Escape cancels a running gesture and closes the menu without touching the
// document. It reports whether there was anything to cancel.
func (c *Controller) Escape() bool {
	cancelled := c.menu != nil
	c.menu = nil
	switch {
	case c.machine.Active():
		c.machine.Finish(false)
		c.reorder, c.resize = nil, nil
		cancelled = true
	case c.machine.Phase() == Hovering:
		_ = c.machine.Transition(Idle)
	}
	return cancelled
}

// Refresh re-resolves the running gesture and the open menu against the
// current document, typically after a remote transaction. A gesture whose
// group or columns are gone is aborted. It reports whether anything was
// torn down.
func (c *Controller) Refresh() bool {
	changed := false
	if c.menu != nil {
		if _, err := column.ColumnByID(c.host.State().Doc(), c.menu.Column); err != nil {
			c.menu = nil
			changed = true
		}
	}
	if c.machine.Active() {
		if err := c.revalidate(); err != nil {
			c.abort(err)
			changed = true
		}
	}
	return changed
}

func (c *Controller) revalidate() error {
	d := c.host.State().Doc()
	switch {
	case c.reorder != nil:
		return c.reorder.resolve(d)
	case c.resize != nil:
		return c.resize.resolve(d)
	}
	return ErrNoGesture
}

func (c *Controller) abort(cause error) {
	c.logger.Info("gesture aborted", "phase", c.machine.Phase(), "error", cause)
	c.machine.Finish(false)
	c.reorder, c.resize = nil, nil
}

func (c *Controller) finish(commit bool) {
	c.machine.Finish(commit)
	c.reorder, c.resize = nil, nil
}

func (c *Controller) recoverPanic(stage string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	c.logger.Error("gesture handler panicked", "stage", stage, "phase", c.machine.Phase(), "panic", r)
	c.machine.Finish(false)
	c.reorder, c.resize = nil, nil
	*err = fmt.Errorf("%w: %v", ErrGesturePanic, r)
}
