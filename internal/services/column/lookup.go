package column

import (
	"github.com/thenoetrevino/pilar/internal/document"
)

// Location pins a column inside its group at one document version.
type Location struct {
	Column    *document.Node
	ColumnPos int // position directly before the column
	Group     *document.Node
	GroupPos  int // position directly before the group
	Index     int // column index within the group
}

// ColumnAt resolves the column that starts at pos or contains it.
func ColumnAt(d *document.Doc, pos int) (Location, error) {
	col, colPos, ok := d.Ancestor(pos, document.TypeColumn)
	if !ok {
		return Location{}, ErrNotInColumn
	}
	group, ok := d.Node(col.Parent)
	if !ok || group.Type != document.TypeColumnGroup {
		return Location{}, ErrNotInGroup
	}
	groupPos, _ := d.PosOf(group.ID)
	return Location{
		Column:    col,
		ColumnPos: colPos,
		Group:     group,
		GroupPos:  groupPos,
		Index:     d.IndexOf(col),
	}, nil
}

// GroupAt resolves the column group that starts at pos or contains it.
func GroupAt(d *document.Doc, pos int) (*document.Node, int, error) {
	group, groupPos, ok := d.Ancestor(pos, document.TypeColumnGroup)
	if !ok {
		return nil, 0, ErrNotInGroup
	}
	return group, groupPos, nil
}

// ColumnByID resolves a column by stable id.
func ColumnByID(d *document.Doc, id document.NodeID) (Location, error) {
	col, ok := d.Node(id)
	if !ok {
		return Location{}, document.ErrNodeNotFound
	}
	if col.Type != document.TypeColumn {
		return Location{}, ErrNotInColumn
	}
	pos, _ := d.PosOf(id)
	return ColumnAt(d, pos)
}

// columnSpans returns the position before each column of a group.
func columnSpans(d *document.Doc, group *document.Node, groupPos int) []int {
	spans := make([]int, 0, len(group.Children))
	pos := groupPos + 1
	for _, col := range d.Children(group) {
		spans = append(spans, pos)
		pos += d.Size(col)
	}
	return spans
}
