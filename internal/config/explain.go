package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys lists every top-level configuration key.
var Keys = []string{
	"width", "height", "x", "y",
	"corner_size", "min_size", "corner_radius", "inset",
	"background", "opacity", "always_on_top", "double_click_ms",
	"palette_backend", "palette_fuzzy_matching", "color_picker", "presets",
	"menu_hotkey", "close_hotkey", "display", "log_level",
}

// Explain returns the effective value at the given YAML-like path and its source.
//
// Paths are top-level keys, optionally followed by list indexes and fields:
//
//	background
//	presets
//	presets.2
//	presets.2.color
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	parts := strings.Split(path, ".")
	if !slices.Contains(Keys, parts[0]) {
		return nil, Source{}, fmt.Errorf("unknown config key %q", parts[0])
	}

	value, err := lookupValue(res.Config, parts)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, parts []string) (any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Unset optional keys (x, y, hotkeys) are omitted from the YAML.
	var cur any = tree
	for i, part := range parts {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				if i == 0 {
					return nil, nil
				}
				return nil, fmt.Errorf("unknown key %q in %s", part, strings.Join(parts[:i], "."))
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("index %q out of range for %s", part, strings.Join(parts[:i], "."))
			}
			cur = node[idx]
		default:
			return nil, fmt.Errorf("%s is not a list or mapping", strings.Join(parts[:i], "."))
		}
	}
	return cur, nil
}
