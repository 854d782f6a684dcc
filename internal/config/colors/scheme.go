package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for the focused column and the menu)
	Accent string `yaml:"accent"`

	// Column layout colors
	ColumnBorder string `yaml:"column_border"`
	ActiveBorder string `yaml:"active_border"` // column holding the cursor
	Handle       string `yaml:"handle"`
	Gap          string `yaml:"gap"`

	// Gesture overlay colors
	Preview   string `yaml:"preview"`
	Indicator string `yaml:"indicator"`
	Guide     string `yaml:"guide"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`
	Cursor string `yaml:"cursor"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`

	// Status bar
	StatusBarBg   string `yaml:"status_bar_bg"`
	StatusBarText string `yaml:"status_bar_text"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// fields lists every color field so defaults and merges stay in sync with
// the struct.
func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent,
		&c.ColumnBorder, &c.ActiveBorder, &c.Handle, &c.Gap,
		&c.Preview, &c.Indicator, &c.Guide,
		&c.Title, &c.Subtle, &c.Normal, &c.Cursor,
		&c.InfoFg, &c.InfoBg, &c.WarningFg, &c.WarningBg, &c.ErrorFg, &c.ErrorBg,
		&c.StatusBarBg, &c.StatusBarText,
	}
}

// ApplyDefaults fills in missing color values using the preset as base
// If preset is specified, loads that preset first, then overrides with custom values
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset).fields()
	for i, f := range c.fields() {
		if *f == "" {
			*f = *preset[i]
		}
	}
}

// MergeFrom overrides colors with every non-empty value of other.
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	theirs := other.fields()
	for i, f := range c.fields() {
		if *theirs[i] != "" {
			*f = *theirs[i]
		}
	}
}
