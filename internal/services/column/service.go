// Package column is the structural command set for column layouts. Every
// command validates its preconditions, builds exactly one transaction and
// hands it to the host. Commands fail closed: they report false and leave the
// document untouched.
package column

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/thenoetrevino/pilar/internal/document"
)

// Host is the editor the commands act on.
type Host interface {
	State() *document.State
	Dispatch(tr *document.Transaction) error
}

// Service defines all column structural operations
type Service interface {
	// Group operations
	InsertColumnGroup(columnCount int) bool
	MoveColumn(groupPos, fromIndex, toIndex int) bool
	SetColumnWidths(groupPos, index int, left, right float64) bool

	// Column operations
	InsertColumnLeft(columnPos int) bool
	InsertColumnRight(columnPos int) bool
	DuplicateColumn(columnPos int) bool
	ClearColumnContents(columnPos int) bool
	DeleteColumn(columnPos int) bool
	SetColumnWidth(columnPos int, width float64) bool

	// Locked reports whether the gate currently blocks every command
	Locked() bool
}

// Option is a functional option for configuring the column service
type Option func(*service)

// WithGate injects the policy that can lock all commands
func WithGate(g Gate) Option {
	return func(s *service) {
		s.gate = g
	}
}

// WithLogger sets the logger for rejected commands
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// service implements Service on top of a Host
type service struct {
	host   Host
	gate   Gate
	logger *slog.Logger
}

// NewService creates a new column service. Without WithGate the commands are
// never locked.
func NewService(host Host, opts ...Option) Service {
	s := &service{
		host:   host,
		gate:   StaticGate(false),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Locked() bool {
	return s.gate.Locked()
}

// buildFunc builds the single transaction of a command. A nil transaction
// with a nil error means the document already has the requested shape.
type buildFunc func(st *document.State) (*document.Transaction, error)

// run gates, builds and dispatches one command.
func (s *service) run(name string, build buildFunc) bool {
	if s.gate.Locked() {
		s.logger.Debug("column command rejected", "command", name, "error", ErrLocked)
		return false
	}
	tr, err := build(s.host.State())
	if err != nil {
		s.logger.Debug("column command rejected", "command", name, "error", err)
		return false
	}
	if tr == nil {
		return true
	}
	if err := s.host.Dispatch(tr.SetLabel(name)); err != nil {
		s.logger.Debug("column command failed", "command", name, "error", err)
		return false
	}
	return true
}

// InsertColumnGroup wraps the cursor's top-level block position into a new
// group of empty columns. An empty paragraph under the cursor is replaced by
// the group; otherwise the group goes right after the cursor's top-level
// block.
func (s *service) InsertColumnGroup(columnCount int) bool {
	return s.run("insertColumnGroup", func(st *document.State) (*document.Transaction, error) {
		if columnCount < 2 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidColumnCount, columnCount)
		}
		d := st.Doc()
		rp, err := d.Resolve(st.Selection().Head)
		if err != nil {
			return nil, err
		}

		columns := make([]*document.Spec, 0, columnCount)
		for range columnCount {
			columns = append(columns, document.EmptyColumn())
		}
		group := document.ColumnGroup(columns...)

		tr := st.Tr()
		if rp.Depth() == 0 {
			return tr.Insert(rp.Pos, group).SetSelection(document.Cursor(rp.Pos + 3)), nil
		}
		block := rp.Node(1)
		pos := rp.Before(1)
		if block.Type == document.TypeParagraph && block.Text == "" {
			tr.Replace(pos, pos+d.Size(block), group)
		} else {
			pos += d.Size(block)
			tr.Insert(pos, group)
		}
		// group open, column open, paragraph open
		return tr.SetSelection(document.Cursor(pos + 3)), nil
	})
}

// InsertColumnLeft inserts an empty column before the column at columnPos.
func (s *service) InsertColumnLeft(columnPos int) bool {
	return s.run("insertColumnLeft", func(st *document.State) (*document.Transaction, error) {
		loc, err := ColumnAt(st.Doc(), columnPos)
		if err != nil {
			return nil, err
		}
		return st.Tr().
			Insert(loc.ColumnPos, document.EmptyColumn()).
			SetSelection(document.Cursor(loc.ColumnPos + 2)), nil
	})
}

// InsertColumnRight inserts an empty column after the column at columnPos.
func (s *service) InsertColumnRight(columnPos int) bool {
	return s.run("insertColumnRight", func(st *document.State) (*document.Transaction, error) {
		loc, err := ColumnAt(st.Doc(), columnPos)
		if err != nil {
			return nil, err
		}
		after := loc.ColumnPos + st.Doc().Size(loc.Column)
		return st.Tr().
			Insert(after, document.EmptyColumn()).
			SetSelection(document.Cursor(after + 2)), nil
	})
}

// DuplicateColumn inserts a copy of the column right after it. The copy keeps
// the width and gets fresh ids throughout.
func (s *service) DuplicateColumn(columnPos int) bool {
	return s.run("duplicateColumn", func(st *document.State) (*document.Transaction, error) {
		d := st.Doc()
		loc, err := ColumnAt(d, columnPos)
		if err != nil {
			return nil, err
		}
		spec, _ := d.Extract(loc.Column.ID)
		return st.Tr().Insert(loc.ColumnPos+d.Size(loc.Column), spec.Fresh()), nil
	})
}

// ClearColumnContents replaces the column's content with one empty
// paragraph. Width and id are kept. Clearing an empty column succeeds without
// a transaction.
func (s *service) ClearColumnContents(columnPos int) bool {
	return s.run("clearColumnContents", func(st *document.State) (*document.Transaction, error) {
		d := st.Doc()
		loc, err := ColumnAt(d, columnPos)
		if err != nil {
			return nil, err
		}
		if d.IsEmptyColumn(loc.Column) {
			return nil, nil
		}
		end := loc.ColumnPos + d.Size(loc.Column)
		tr := st.Tr().Replace(loc.ColumnPos+1, end-1, document.Paragraph(""))
		if head := st.Selection().Head; head > loc.ColumnPos && head < end {
			tr.SetSelection(document.Cursor(loc.ColumnPos + 2))
		}
		return tr, nil
	})
}

// DeleteColumn removes the column at columnPos. When only one column would
// remain the group is dissolved: it is replaced, at its own position, by the
// surviving column's content.
func (s *service) DeleteColumn(columnPos int) bool {
	return s.run("deleteColumn", func(st *document.State) (*document.Transaction, error) {
		d := st.Doc()
		loc, err := ColumnAt(d, columnPos)
		if err != nil {
			return nil, err
		}
		if len(loc.Group.Children) == 2 {
			return dissolve(st, loc), nil
		}

		size := d.Size(loc.Column)
		tr := st.Tr().Delete(loc.ColumnPos, loc.ColumnPos+size)
		head := st.Selection().Head
		if head > loc.ColumnPos && head < loc.ColumnPos+size {
			if loc.Index > 0 {
				// end of the previous column's last block
				tr.SetSelection(document.Cursor(loc.ColumnPos - 2))
			} else {
				tr.SetSelection(document.Cursor(loc.ColumnPos + 2))
			}
		}
		return tr, nil
	})
}

// dissolve replaces a two-column group by the content of the column that is
// not loc.Column.
func dissolve(st *document.State, loc Location) *document.Transaction {
	d := st.Doc()
	survivor := d.Child(loc.Group, 1-loc.Index)
	survivorPos, _ := d.PosOf(survivor.ID)
	groupSize := d.Size(loc.Group)

	tr := st.Tr().Replace(loc.GroupPos, loc.GroupPos+groupSize, d.ExtractChildren(survivor.ID)...)

	head := st.Selection().Head
	switch {
	case head > survivorPos && head < survivorPos+d.Size(survivor):
		tr.SetSelection(document.Cursor(head - (survivorPos + 1 - loc.GroupPos)))
	case head > loc.GroupPos && head < loc.GroupPos+groupSize:
		tr.SetSelection(document.Cursor(loc.GroupPos + 1))
	}
	return tr
}

// SetColumnWidth sets the width weight of the column at or around columnPos,
// clamped to the minimum weight. NaN and infinite widths are rejected.
func (s *service) SetColumnWidth(columnPos int, width float64) bool {
	return s.run("setColumnWidth", func(st *document.State) (*document.Transaction, error) {
		if !finite(width) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWidth, width)
		}
		loc, err := ColumnAt(st.Doc(), columnPos)
		if err != nil {
			return nil, err
		}
		width = max(width, document.MinColumnWidth)
		if loc.Column.Attrs.Width == width {
			return nil, nil
		}
		return st.Tr().SetAttr(loc.ColumnPos, document.AttrWidth, width), nil
	})
}

// SetColumnWidths sets the weights of the adjacent columns index and
// index+1 in one transaction.
func (s *service) SetColumnWidths(groupPos, index int, left, right float64) bool {
	return s.run("setColumnWidths", func(st *document.State) (*document.Transaction, error) {
		if !finite(left) || !finite(right) {
			return nil, fmt.Errorf("%w: %v/%v", ErrInvalidWidth, left, right)
		}
		d := st.Doc()
		group, gPos, err := GroupAt(d, groupPos)
		if err != nil {
			return nil, err
		}
		if index < 0 || index+1 >= len(group.Children) {
			return nil, fmt.Errorf("%w: pair %d/%d of %d", ErrIndexOutOfRange, index, index+1, len(group.Children))
		}
		spans := columnSpans(d, group, gPos)
		tr := st.Tr()
		for i, width := range []float64{left, right} {
			col := d.Child(group, index+i)
			width = max(width, document.MinColumnWidth)
			if col.Attrs.Width != width {
				tr.SetAttr(spans[index+i], document.AttrWidth, width)
			}
		}
		if !tr.DocChanged() {
			return nil, tr.Err()
		}
		return tr, nil
	})
}

// MoveColumn swaps the columns at fromIndex and toIndex. Columns in between
// stay where they are. A cursor inside either column moves with it.
func (s *service) MoveColumn(groupPos, fromIndex, toIndex int) bool {
	return s.run("moveColumn", func(st *document.State) (*document.Transaction, error) {
		d := st.Doc()
		group, gPos, err := GroupAt(d, groupPos)
		if err != nil {
			return nil, err
		}
		n := len(group.Children)
		if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
			return nil, fmt.Errorf("%w: %d -> %d of %d", ErrIndexOutOfRange, fromIndex, toIndex, n)
		}
		if fromIndex == toIndex {
			return nil, ErrSameIndex
		}

		specs := d.ExtractChildren(group.ID)
		specs[fromIndex], specs[toIndex] = specs[toIndex], specs[fromIndex]

		groupSize := d.Size(group)
		tr := st.Tr().Replace(gPos+1, gPos+groupSize-1, specs...)

		head := st.Selection().Head
		for i, start := range columnSpans(d, group, gPos) {
			size := d.Size(d.Child(group, i))
			if head <= start || head >= start+size {
				continue
			}
			target := i
			switch i {
			case fromIndex:
				target = toIndex
			case toIndex:
				target = fromIndex
			}
			tr.SetSelection(document.Cursor(gPos + 1 + document.SpecsSize(specs[:target]) + head - start))
			break
		}
		return tr, nil
	})
}

func finite(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0)
}
