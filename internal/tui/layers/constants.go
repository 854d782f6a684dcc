package layers

// Z order of the canvas layers, lowest first
const (
	ZDocument = iota
	ZHover
	ZGuide
	ZPreview
	ZIndicator
	ZMenu
	ZHelp
)

const (
	MenuPaddingWidth = 4 // border + one cell of padding each side
	MenuChromeHeight = 2 // top and bottom border

	HelpMaxWidthNumerator = 4 // help box takes at most 4/5 of the screen
	HelpMaxWidthDivisor   = 5
)
