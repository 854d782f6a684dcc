package theme

import "github.com/thenoetrevino/pilar/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight     string
	ColumnBorder  string
	ActiveBorder  string
	Handle        string
	Gap           string
	Preview       string
	Indicator     string
	Guide         string
	Title         string
	Subtle        string
	Normal        string
	Cursor        string
	InfoFg        string
	InfoBg        string
	WarningFg     string
	WarningBg     string
	ErrorFg       string
	ErrorBg       string
	StatusBarBg   string
	StatusBarText string
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Highlight = colors.Accent
	ColumnBorder = colors.ColumnBorder
	ActiveBorder = colors.ActiveBorder
	Handle = colors.Handle
	Gap = colors.Gap
	Preview = colors.Preview
	Indicator = colors.Indicator
	Guide = colors.Guide
	Title = colors.Title
	Subtle = colors.Subtle
	Normal = colors.Normal
	Cursor = colors.Cursor
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	WarningFg = colors.WarningFg
	WarningBg = colors.WarningBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg
	StatusBarBg = colors.StatusBarBg
	StatusBarText = colors.StatusBarText
}
