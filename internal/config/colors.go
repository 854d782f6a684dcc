package config

import "github.com/thenoetrevino/pilar/internal/config/colors"

// ColorScheme is the configurable color set
type ColorScheme = colors.ColorScheme

// DefaultColorScheme returns the default color scheme (purple theme)
func DefaultColorScheme() colors.ColorScheme {
	return *colors.Default()
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() colors.ColorScheme {
	return *colors.Monochrome()
}
