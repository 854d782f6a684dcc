// Package keyboard holds the structural key handlers that run before the
// editor's default text editing.
package keyboard

import (
	"log/slog"

	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/services/column"
)

// Option is a functional option for configuring the handler
type Option func(*Handler)

// WithGate injects the policy that can lock structural edits
func WithGate(g column.Gate) Option {
	return func(h *Handler) {
		h.gate = g
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// Handler runs structural key handling against a host editor.
type Handler struct {
	host   column.Host
	gate   column.Gate
	logger *slog.Logger
}

// NewHandler creates a keyboard handler.
func NewHandler(host column.Host, opts ...Option) *Handler {
	h := &Handler{
		host:   host,
		gate:   column.StaticGate(false),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Backspace handles Backspace around column structures. It reports false
// when the key is not structural here and the default behavior should run.
//
// With the cursor at the start of an empty column:
//   - in a two-column group the group dissolves into the other column's
//     content and the cursor lands at the end of that content
//   - in a wider group only the empty column is removed
//
// With the cursor at the start of a block right after a group, the cursor
// steps into the group's last column and nothing is deleted.
func (h *Handler) Backspace() bool {
	st := h.host.State()
	sel := st.Selection()
	if !sel.Empty() {
		return false
	}
	d := st.Doc()
	block, ok := blockStartingAt(d, sel.Head)
	if !ok {
		return false
	}
	parent, _ := d.Node(block.Parent)

	if parent.Type == document.TypeColumn && d.IsEmptyColumn(parent) {
		if h.gate.Locked() {
			h.logger.Debug("backspace rejected", "error", column.ErrLocked)
			return false
		}
		return h.removeEmptyColumn(st, parent)
	}

	prev := d.Child(parent, d.IndexOf(block)-1)
	if prev != nil && prev.Type == document.TypeColumnGroup {
		return h.stepIntoGroup(st, prev)
	}
	return false
}

// blockStartingAt returns the textblock whose content starts at pos.
func blockStartingAt(d *document.Doc, pos int) (*document.Node, bool) {
	for _, b := range d.Textblocks() {
		if b.Start == pos {
			n, ok := d.Node(b.ID)
			return n, ok
		}
	}
	return nil, false
}

func (h *Handler) removeEmptyColumn(st *document.State, col *document.Node) bool {
	d := st.Doc()
	loc, err := column.ColumnAt(d, st.Selection().Head)
	if err != nil || loc.Column.ID != col.ID {
		return false
	}

	tr := st.Tr().SetLabel("backspace")
	if len(loc.Group.Children) == 2 {
		dissolveInto(tr, d, loc)
	} else {
		tr.Delete(loc.ColumnPos, loc.ColumnPos+d.Size(col))
		if loc.Index > 0 {
			// end of the previous column's last block
			tr.SetSelection(document.Cursor(loc.ColumnPos - 2))
		} else {
			tr.SetSelection(document.Cursor(loc.ColumnPos + 2))
		}
	}

	if err := h.host.Dispatch(tr); err != nil {
		h.logger.Debug("backspace failed", "column_id", col.ID, "error", err)
		return false
	}
	return true
}

// dissolveInto replaces the group with the other column's content. An empty
// other column inlines nothing, unless the document would be left without
// any block.
func dissolveInto(tr *document.Transaction, d *document.Doc, loc column.Location) {
	other := d.Child(loc.Group, 1-loc.Index)
	groupEnd := loc.GroupPos + d.Size(loc.Group)

	var inlined []*document.Spec
	if !d.IsEmptyColumn(other) || len(d.Root().Children) == 1 {
		inlined = d.ExtractChildren(other.ID)
	}
	tr.Replace(loc.GroupPos, groupEnd, inlined...)

	if len(inlined) > 0 {
		// closing token of the last inlined block
		end := loc.GroupPos + document.SpecsSize(inlined) - 1
		tr.SetSelection(document.Cursor(end))
		return
	}
	tr.SetSelection(document.Cursor(tr.Doc().TextPosNear(loc.GroupPos)))
}

func (h *Handler) stepIntoGroup(st *document.State, group *document.Node) bool {
	d := st.Doc()
	groupPos, _ := d.PosOf(group.ID)
	end := groupPos + d.Size(group)

	target := -1
	for _, b := range d.Textblocks() {
		if b.End < end && b.Start > groupPos {
			target = b.End
		}
	}
	if target < 0 {
		return false
	}
	tr := st.Tr().
		SetLabel("backspace").
		SetAddToHistory(false).
		SetSelection(document.Cursor(target))
	return h.host.Dispatch(tr) == nil
}
