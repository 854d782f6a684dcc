package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		// Primary
		Accent: "#FFFFFF",

		// Column layout
		ColumnBorder: "#585858",
		ActiveBorder: "#FFFFFF",
		Handle:       "#D0D0D0",
		Gap:          "#3A3A3A",

		// Gesture overlays
		Preview:   "#FFFFFF",
		Indicator: "#FFFFFF",
		Guide:     "#D0D0D0",

		// Text
		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",
		Cursor: "#FFFFFF",

		// Notifications
		InfoFg:    "#FFFFFF",
		InfoBg:    "#1C1C1C",
		WarningFg: "#FFFFFF",
		WarningBg: "#3A3A3A",
		ErrorFg:   "#FFFFFF",
		ErrorBg:   "#585858",

		// Status bar
		StatusBarBg:   "#3A3A3A",
		StatusBarText: "#FFFFFF",
	}
}
