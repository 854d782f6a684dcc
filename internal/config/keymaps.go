package config

// KeyMappings defines all configurable key bindings. Plain characters always
// type text, so structural commands use modifier keys.
type KeyMappings struct {
	// Column layout
	InsertGroup     string `yaml:"insert_group"`
	ColumnMenu      string `yaml:"column_menu"`
	DeleteColumn    string `yaml:"delete_column"`
	MoveColumnLeft  string `yaml:"move_column_left"`
	MoveColumnRight string `yaml:"move_column_right"`
	WidenColumn     string `yaml:"widen_column"`
	NarrowColumn    string `yaml:"narrow_column"`

	// History
	Undo string `yaml:"undo"`
	Redo string `yaml:"redo"`

	// Other
	Cancel   string `yaml:"cancel"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Column layout
		InsertGroup:     "ctrl+g",
		ColumnMenu:      "ctrl+o",
		DeleteColumn:    "ctrl+d",
		MoveColumnLeft:  "alt+left",
		MoveColumnRight: "alt+right",
		WidenColumn:     "alt+up",
		NarrowColumn:    "alt+down",

		// History
		Undo: "ctrl+z",
		Redo: "ctrl+y",

		// Other
		Cancel:   "esc",
		ShowHelp: "f1",
		Quit:     "ctrl+q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.InsertGroup, defaults.InsertGroup)
	fill(&k.ColumnMenu, defaults.ColumnMenu)
	fill(&k.DeleteColumn, defaults.DeleteColumn)
	fill(&k.MoveColumnLeft, defaults.MoveColumnLeft)
	fill(&k.MoveColumnRight, defaults.MoveColumnRight)
	fill(&k.WidenColumn, defaults.WidenColumn)
	fill(&k.NarrowColumn, defaults.NarrowColumn)
	fill(&k.Undo, defaults.Undo)
	fill(&k.Redo, defaults.Redo)
	fill(&k.Cancel, defaults.Cancel)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
