package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/1broseidon/waliboard/internal/cover"
	"gopkg.in/yaml.v3"
)

// Preset is a named menu color as written in YAML.
type Preset struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Config is the effective waliboard configuration.
type Config struct {
	// Initial geometry. X and Y are optional; when either is unset the
	// cover is centered on the monitor under the pointer.
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	X      *int `yaml:"x,omitempty"`
	Y      *int `yaml:"y,omitempty"`

	CornerSize   int `yaml:"corner_size"`   // Hit zone for corner resizing, px
	MinSize      int `yaml:"min_size"`      // Width and height must stay above this
	CornerRadius int `yaml:"corner_radius"` // Rounded-corner radius, px
	Inset        int `yaml:"inset"`         // Transparent margin around the panel, px

	Background  string  `yaml:"background"`
	Opacity     float64 `yaml:"opacity"` // 0 < opacity <= 1
	AlwaysOnTop bool    `yaml:"always_on_top"`

	DoubleClickMS int `yaml:"double_click_ms"`

	PaletteBackend       string   `yaml:"palette_backend"`
	PaletteFuzzyMatching bool     `yaml:"palette_fuzzy_matching"`
	ColorPicker          string   `yaml:"color_picker"`
	Presets              []Preset `yaml:"presets"`

	// Optional global shortcuts; empty disables.
	MenuHotkey  string `yaml:"menu_hotkey,omitempty"`
	CloseHotkey string `yaml:"close_hotkey,omitempty"`

	Display  string `yaml:"display,omitempty"`
	LogLevel string `yaml:"log_level"`
}

const (
	DefaultWidth         = 400
	DefaultHeight        = 300
	DefaultCornerRadius  = 15
	DefaultInset         = 5
	DefaultDoubleClickMS = 400
)

// PaletteBackends lists the accepted palette_backend values.
var PaletteBackends = []string{"auto", "rofi", "fuzzel", "wofi", "dmenu"}

// ColorPickers lists the accepted color_picker values.
var ColorPickers = []string{"auto", "zenity", "yad", "kdialog", "terminal"}

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"debug", "info", "warning", "error"}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	presets := cover.DefaultPresets()
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, Preset{Name: p.Name, Color: p.Color.Hex()})
	}

	return &Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		CornerSize:     cover.DefaultCornerSize,
		MinSize:        cover.DefaultMinSize,
		CornerRadius:   DefaultCornerRadius,
		Inset:          DefaultInset,
		Background:     cover.DefaultBackground.Hex(),
		Opacity:        1.0,
		AlwaysOnTop:    true,
		DoubleClickMS:  DefaultDoubleClickMS,
		PaletteBackend: "auto",
		ColorPicker:    "auto",
		Presets:        out,
		LogLevel:       "info",
	}
}

// ValidationError points at the offending key and, when known, the file
// position it came from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.CornerSize < 1 {
		return &ValidationError{Path: "corner_size", Err: fmt.Errorf("corner_size must be >= 1")}
	}
	if c.MinSize < 1 {
		return &ValidationError{Path: "min_size", Err: fmt.Errorf("min_size must be >= 1")}
	}
	if c.Width <= c.MinSize {
		return &ValidationError{Path: "width", Err: fmt.Errorf("width must be > min_size (%d)", c.MinSize)}
	}
	if c.Height <= c.MinSize {
		return &ValidationError{Path: "height", Err: fmt.Errorf("height must be > min_size (%d)", c.MinSize)}
	}
	if c.CornerRadius < 0 {
		return &ValidationError{Path: "corner_radius", Err: fmt.Errorf("corner_radius must be >= 0")}
	}
	if c.Inset < 0 {
		return &ValidationError{Path: "inset", Err: fmt.Errorf("inset must be >= 0")}
	}
	if _, err := cover.ParseColor(c.Background); err != nil {
		return &ValidationError{Path: "background", Err: err}
	}
	if c.Opacity <= 0 || c.Opacity > 1 {
		return &ValidationError{Path: "opacity", Err: fmt.Errorf("opacity must be in (0, 1]")}
	}
	if c.DoubleClickMS < 1 {
		return &ValidationError{Path: "double_click_ms", Err: fmt.Errorf("double_click_ms must be >= 1")}
	}
	if !slices.Contains(PaletteBackends, c.PaletteBackend) {
		return &ValidationError{Path: "palette_backend", Err: fmt.Errorf("palette_backend must be one of: %s", strings.Join(PaletteBackends, ", "))}
	}
	if !slices.Contains(ColorPickers, c.ColorPicker) {
		return &ValidationError{Path: "color_picker", Err: fmt.Errorf("color_picker must be one of: %s", strings.Join(ColorPickers, ", "))}
	}
	for i, p := range c.Presets {
		path := fmt.Sprintf("presets.%d", i)
		if strings.TrimSpace(p.Name) == "" {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("preset name must not be empty")}
		}
		if _, err := cover.ParseColor(p.Color); err != nil {
			return &ValidationError{Path: path + ".color", Err: err}
		}
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: %s", strings.Join(LogLevels, ", "))}
	}
	return nil
}

// BackgroundColor returns the parsed background, falling back to the
// default for an invalid value.
func (c *Config) BackgroundColor() cover.Color {
	col, err := cover.ParseColor(c.Background)
	if err != nil {
		return cover.DefaultBackground
	}
	return col
}

// PresetColors returns the menu presets with parsed colors. Invalid entries
// are skipped; Validate reports them.
func (c *Config) PresetColors() []cover.Preset {
	out := make([]cover.Preset, 0, len(c.Presets))
	for _, p := range c.Presets {
		col, err := cover.ParseColor(p.Color)
		if err != nil {
			continue
		}
		out = append(out, cover.Preset{Name: p.Name, Color: col})
	}
	return out
}

// DoubleClickInterval returns double_click_ms as a duration.
func (c *Config) DoubleClickInterval() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}

// Bounds returns the initial rectangle and whether it should be centered
// because no explicit position was configured.
func (c *Config) Bounds() (cover.Rect, bool) {
	r := cover.Rect{Width: c.Width, Height: c.Height}
	if c.X == nil || c.Y == nil {
		return r, true
	}
	r.X, r.Y = *c.X, *c.Y
	return r, false
}

// SlogLevel maps log_level onto slog levels.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

