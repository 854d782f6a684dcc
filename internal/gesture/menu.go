package gesture

import (
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/services/column"
)

// MenuAction is one entry of the structural-edit menu.
type MenuAction int

const (
	InsertLeft MenuAction = iota
	InsertRight
	Duplicate
	Clear
	Delete
)

// MenuActions lists the menu entries in display order.
var MenuActions = []MenuAction{InsertLeft, InsertRight, Duplicate, Clear, Delete}

func (a MenuAction) String() string {
	switch a {
	case InsertLeft:
		return "Insert column left"
	case InsertRight:
		return "Insert column right"
	case Duplicate:
		return "Duplicate column"
	case Clear:
		return "Clear contents"
	case Delete:
		return "Delete column"
	}
	return "unknown"
}

// Menu is the structural-edit menu anchored at a column handle.
type Menu struct {
	Group  document.NodeID
	Column document.NodeID
	X      int
	Y      int
	Cursor int
}

// Selected returns the highlighted action.
func (m *Menu) Selected() MenuAction {
	return MenuActions[m.Cursor]
}

// Menu returns the open menu, or nil.
func (c *Controller) Menu() *Menu { return c.menu }

// OpenMenu opens the menu for a column without a pointer gesture, anchored
// at x, y.
func (c *Controller) OpenMenu(col document.NodeID, x, y int) bool {
	loc, err := column.ColumnByID(c.host.State().Doc(), col)
	if err != nil {
		return false
	}
	c.menu = &Menu{Group: loc.Group.ID, Column: col, X: x, Y: y}
	return true
}

// CloseMenu closes the menu.
func (c *Controller) CloseMenu() { c.menu = nil }

// MenuMove moves the highlight by delta entries, wrapping around.
func (c *Controller) MenuMove(delta int) {
	if c.menu == nil {
		return
	}
	n := len(MenuActions)
	c.menu.Cursor = ((c.menu.Cursor+delta)%n + n) % n
}

// MenuChoose runs the highlighted action.
func (c *Controller) MenuChoose() bool {
	if c.menu == nil {
		return false
	}
	return c.RunMenuAction(c.menu.Selected())
}

// RunMenuAction runs action on the menu's column and closes the menu. The
// column is looked up by id, so the menu survives edits that shift it.
func (c *Controller) RunMenuAction(action MenuAction) bool {
	m := c.menu
	c.menu = nil
	if m == nil {
		return false
	}
	loc, err := column.ColumnByID(c.host.State().Doc(), m.Column)
	if err != nil {
		c.logger.Debug("menu target gone", "column_id", m.Column, "error", err)
		return false
	}

	switch action {
	case InsertLeft:
		return c.columns.InsertColumnLeft(loc.ColumnPos)
	case InsertRight:
		return c.columns.InsertColumnRight(loc.ColumnPos)
	case Duplicate:
		return c.columns.DuplicateColumn(loc.ColumnPos)
	case Clear:
		return c.columns.ClearColumnContents(loc.ColumnPos)
	case Delete:
		return c.columns.DeleteColumn(loc.ColumnPos)
	}
	return false
}
