package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/thenoetrevino/pilar/internal/config"
)

// keyMap is the set of bindings the TUI reacts to, built from the user's
// key mappings. It implements help.KeyMap.
type keyMap struct {
	InsertGroup     key.Binding
	ColumnMenu      key.Binding
	DeleteColumn    key.Binding
	MoveColumnLeft  key.Binding
	MoveColumnRight key.Binding
	WidenColumn     key.Binding
	NarrowColumn    key.Binding
	Undo            key.Binding
	Redo            key.Binding
	Cancel          key.Binding
	Help            key.Binding
	Quit            key.Binding

	// Fixed editing keys
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Backspace key.Binding
}

func newKeyMap(k config.KeyMappings) keyMap {
	return keyMap{
		InsertGroup:     key.NewBinding(key.WithKeys(k.InsertGroup), key.WithHelp(k.InsertGroup, "insert columns")),
		ColumnMenu:      key.NewBinding(key.WithKeys(k.ColumnMenu), key.WithHelp(k.ColumnMenu, "column menu")),
		DeleteColumn:    key.NewBinding(key.WithKeys(k.DeleteColumn), key.WithHelp(k.DeleteColumn, "delete column")),
		MoveColumnLeft:  key.NewBinding(key.WithKeys(k.MoveColumnLeft), key.WithHelp(k.MoveColumnLeft, "move column left")),
		MoveColumnRight: key.NewBinding(key.WithKeys(k.MoveColumnRight), key.WithHelp(k.MoveColumnRight, "move column right")),
		WidenColumn:     key.NewBinding(key.WithKeys(k.WidenColumn), key.WithHelp(k.WidenColumn, "widen column")),
		NarrowColumn:    key.NewBinding(key.WithKeys(k.NarrowColumn), key.WithHelp(k.NarrowColumn, "narrow column")),
		Undo:            key.NewBinding(key.WithKeys(k.Undo), key.WithHelp(k.Undo, "undo")),
		Redo:            key.NewBinding(key.WithKeys(k.Redo), key.WithHelp(k.Redo, "redo")),
		Cancel:          key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		Help:            key.NewBinding(key.WithKeys(k.ShowHelp), key.WithHelp(k.ShowHelp, "help")),
		Quit:            key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),

		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "split block")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.InsertGroup, k.ColumnMenu, k.Undo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.InsertGroup, k.ColumnMenu, k.DeleteColumn, k.MoveColumnLeft, k.MoveColumnRight, k.WidenColumn, k.NarrowColumn},
		{k.Up, k.Down, k.Left, k.Right, k.Enter, k.Backspace},
		{k.Undo, k.Redo, k.Cancel, k.Help, k.Quit},
	}
}
