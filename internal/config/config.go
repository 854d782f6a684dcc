package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/gesture"
)

// Config represents the application configuration
type Config struct {
	KeyMappings KeyMappings `yaml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme"`
	Gestures    Gestures    `yaml:"gestures"`
	Features    Features    `yaml:"features"`
}

// Gestures tunes pointer gestures. Zero values mean "use the default".
type Gestures struct {
	DragThreshold  int     `yaml:"drag_threshold"`
	ResizeHitSlop  int     `yaml:"resize_hit_slop"`
	MinColumnWidth float64 `yaml:"min_column_width"`
}

// Features holds feature switches
type Features struct {
	// ColumnsLocked turns every structural column command off
	ColumnsLocked bool `yaml:"columns_locked"`
}

// DefaultGestures returns the default gesture tuning
func DefaultGestures() Gestures {
	return Gestures{
		DragThreshold:  gesture.DefaultDragThreshold,
		ResizeHitSlop:  gesture.DefaultHitSlop,
		MinColumnWidth: document.MinColumnWidth,
	}
}

func (g *Gestures) applyDefaults() {
	defaults := DefaultGestures()
	if g.DragThreshold <= 0 {
		g.DragThreshold = defaults.DragThreshold
	}
	if g.ResizeHitSlop <= 0 {
		g.ResizeHitSlop = defaults.ResizeHitSlop
	}
	if g.MinColumnWidth < document.MinColumnWidth {
		g.MinColumnWidth = defaults.MinColumnWidth
	}
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		KeyMappings: DefaultKeyMappings(),
		ColorScheme: DefaultColorScheme(),
		Gestures:    DefaultGestures(),
	}
}

// loadThemeFile loads and merges theme from PILAR_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("PILAR_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := Default()
		loadThemeFile(config)
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path, falling back to defaults when the file
// does not exist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		config := Default()
		loadThemeFile(config)
		return config, nil
	}
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Load theme from PILAR_THEME_FILE if set
	loadThemeFile(&config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "pilar", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "pilar", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
	c.Gestures.applyDefaults()
}
