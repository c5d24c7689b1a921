package colorpick

import (
	"context"
	"errors"
	"os"

	"github.com/1broseidon/waliboard/internal/cover"
	"github.com/1broseidon/waliboard/internal/tui"
)

// terminalPicker runs the interactive TUI picker on the controlling terminal.
type terminalPicker struct {
	presets []cover.Preset
}

func newTerminalPicker(presets []cover.Preset) *terminalPicker {
	return &terminalPicker{presets: presets}
}

func (p *terminalPicker) Name() string {
	return "terminal"
}

func (p *terminalPicker) Pick(ctx context.Context, initial cover.Color) (cover.Color, error) {
	c, err := tui.PickColor(ctx, initial, p.presets, os.Stdin, os.Stderr)
	if errors.Is(err, tui.ErrCancelled) {
		return cover.Color{}, ErrCancelled
	}
	return c, err
}
