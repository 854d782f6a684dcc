package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/pilar/internal/config/colors"
)

func TestThemeFileLoading(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	themeFile := filepath.Join(t.TempDir(), "pilar-theme.yaml")
	require.NoError(t, os.WriteFile(themeFile, []byte(`theme:
  accent: "#FF0000"
  column_border: "#00FF00"
  indicator: "#0000FF"
`), 0o644))
	t.Setenv("PILAR_THEME_FILE", themeFile)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	assert.Equal(t, "#00FF00", cfg.ColorScheme.ColumnBorder)
	assert.Equal(t, "#0000FF", cfg.ColorScheme.Indicator)

	defaults := DefaultColorScheme()
	assert.Equal(t, defaults.Guide, cfg.ColorScheme.Guide, "unset colors keep defaults")
}

func TestThemeFileMissingIsIgnored(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PILAR_THEME_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultColorScheme(), cfg.ColorScheme)
}

func TestPresetFallsBackToDefault(t *testing.T) {
	assert.Equal(t, MonochromeColorScheme(), *colors.GetPreset("monochrome"))
	assert.Equal(t, DefaultColorScheme(), *colors.GetPreset("unknown"))
}
