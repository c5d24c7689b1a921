// Package colormenu builds the cover's color menu: the preset swatches plus
// an entry that opens a free color picker.
package colormenu

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/1broseidon/waliboard/internal/colorpick"
	"github.com/1broseidon/waliboard/internal/cover"
	"github.com/1broseidon/waliboard/internal/palette"
)

const (
	actionPicker       = "picker"
	actionPresetPrefix = "preset:"
	pickerLabel        = "Color picker…"
	menuPrompt         = "waliboard"
)

// ErrNoChooser is returned when neither a palette backend nor a picker is
// available.
var ErrNoChooser = errors.New("no palette backend or color picker available")

// Options configures a Menu.
type Options struct {
	Presets []cover.Preset
	// Picker backs the "Color picker…" entry. Nil hides it.
	Picker colorpick.Picker
	// IconDir receives the rendered PNG icons. Empty disables icons.
	IconDir string
	Logger  *slog.Logger
}

// Menu shows the color menu and resolves the selection to a color.
type Menu struct {
	backend palette.Backend
	presets []cover.Preset
	picker  colorpick.Picker
	iconDir string
	logger  *slog.Logger
}

// New returns a menu shown through backend. A nil backend skips the menu and
// opens the picker directly.
func New(backend palette.Backend, opts Options) *Menu {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{
		backend: backend,
		presets: opts.Presets,
		picker:  opts.Picker,
		iconDir: opts.IconDir,
		logger:  logger,
	}
}

// Items builds the menu rows. The preset matching current is marked active.
func (m *Menu) Items(current cover.Color) []palette.Item {
	items := make([]palette.Item, 0, len(m.presets)+1)
	for i, p := range m.presets {
		items = append(items, palette.Item{
			Label:    p.Name,
			Action:   actionPresetPrefix + strconv.Itoa(i),
			Icon:     m.icon(swatchName(p.Color), func() image.Image { return Swatch(p.Color) }),
			Meta:     p.Color.Hex(),
			IsActive: p.Color == current,
		})
	}
	if m.picker != nil {
		items = append(items, palette.Item{
			Label:  pickerLabel,
			Action: actionPicker,
			Icon:   m.icon(pickerIconName, func() image.Image { return PickerIcon() }),
			Meta:   "custom pick " + m.picker.Name(),
		})
	}
	return items
}

// Choose shows the menu and returns the chosen color. ok is false when the
// user dismissed the menu or the picker.
func (m *Menu) Choose(ctx context.Context, current cover.Color) (cover.Color, bool, error) {
	if m.backend == nil {
		if m.picker == nil {
			return cover.Color{}, false, ErrNoChooser
		}
		return m.pick(ctx, current)
	}

	item, err := m.backend.Show(ctx, palette.Request{
		Prompt:  menuPrompt,
		Message: "Current color: " + current.Hex(),
		Items:   m.Items(current),
	})
	if err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return cover.Color{}, false, nil
		}
		return cover.Color{}, false, fmt.Errorf("%s: %w", m.backend.Name(), err)
	}

	if item.Action == actionPicker && m.picker != nil {
		return m.pick(ctx, current)
	}
	if rest, ok := strings.CutPrefix(item.Action, actionPresetPrefix); ok {
		i, err := strconv.Atoi(rest)
		if err == nil && i >= 0 && i < len(m.presets) {
			p := m.presets[i]
			m.logger.Debug("preset selected", "name", p.Name, "color", p.Color.Hex())
			return p.Color, true, nil
		}
	}
	return cover.Color{}, false, fmt.Errorf("unknown menu action %q", item.Action)
}

func (m *Menu) pick(ctx context.Context, current cover.Color) (cover.Color, bool, error) {
	c, err := m.picker.Pick(ctx, current)
	if err != nil {
		if errors.Is(err, colorpick.ErrCancelled) {
			return cover.Color{}, false, nil
		}
		return cover.Color{}, false, fmt.Errorf("%s picker: %w", m.picker.Name(), err)
	}
	m.logger.Debug("picker returned color", "picker", m.picker.Name(), "color", c.Hex())
	return c, true, nil
}

// icon writes the named icon on first use and returns its path. Failures
// drop the icon rather than the menu row.
func (m *Menu) icon(name string, render func() image.Image) string {
	if m.iconDir == "" {
		return ""
	}
	path, err := WriteIcon(m.iconDir, name, render())
	if err != nil {
		m.logger.Debug("icon unavailable", "name", name, "error", err)
		return ""
	}
	return path
}
