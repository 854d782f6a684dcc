package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		// Primary
		Accent: "#874BFD",

		// Column layout
		ColumnBorder: "#585858",
		ActiveBorder: "#D75FD7",
		Handle:       "#5F87D7",
		Gap:          "#3A3A3A",

		// Gesture overlays
		Preview:   "#874BFD",
		Indicator: "#5FD75F",
		Guide:     "#FFD700",

		// Text
		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",
		Cursor: "#FFFFFF",

		// Notifications
		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",

		// Status bar
		StatusBarBg:   "#874BFD", // Matches accent
		StatusBarText: "#D0D0D0", // Matches normal text
	}
}
