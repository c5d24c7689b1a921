package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig mirrors Config with every key optional, so a file only
// overrides what it sets.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
	X      *int `yaml:"x"`
	Y      *int `yaml:"y"`

	CornerSize   *int `yaml:"corner_size"`
	MinSize      *int `yaml:"min_size"`
	CornerRadius *int `yaml:"corner_radius"`
	Inset        *int `yaml:"inset"`

	Background  *string  `yaml:"background"`
	Opacity     *float64 `yaml:"opacity"`
	AlwaysOnTop *bool    `yaml:"always_on_top"`

	DoubleClickMS *int `yaml:"double_click_ms"`

	PaletteBackend       *string  `yaml:"palette_backend"`
	PaletteFuzzyMatching *bool    `yaml:"palette_fuzzy_matching"`
	ColorPicker          *string  `yaml:"color_picker"`
	Presets              []Preset `yaml:"presets"`

	MenuHotkey  *string `yaml:"menu_hotkey"`
	CloseHotkey *string `yaml:"close_hotkey"`

	Display  *string `yaml:"display"`
	LogLevel *string `yaml:"log_level"`
}

// merge returns r overridden by every key set in other. A presets list
// replaces the previous list as a whole.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	out.Include = nil

	setPtr(&out.Width, other.Width)
	setPtr(&out.Height, other.Height)
	setPtr(&out.X, other.X)
	setPtr(&out.Y, other.Y)
	setPtr(&out.CornerSize, other.CornerSize)
	setPtr(&out.MinSize, other.MinSize)
	setPtr(&out.CornerRadius, other.CornerRadius)
	setPtr(&out.Inset, other.Inset)
	setPtr(&out.Background, other.Background)
	setPtr(&out.Opacity, other.Opacity)
	setPtr(&out.AlwaysOnTop, other.AlwaysOnTop)
	setPtr(&out.DoubleClickMS, other.DoubleClickMS)
	setPtr(&out.PaletteBackend, other.PaletteBackend)
	setPtr(&out.PaletteFuzzyMatching, other.PaletteFuzzyMatching)
	setPtr(&out.ColorPicker, other.ColorPicker)
	setPtr(&out.MenuHotkey, other.MenuHotkey)
	setPtr(&out.CloseHotkey, other.CloseHotkey)
	setPtr(&out.Display, other.Display)
	setPtr(&out.LogLevel, other.LogLevel)

	if other.Presets != nil {
		out.Presets = append(other.Presets[:0:0], other.Presets...)
	}
	return out
}

func setPtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
