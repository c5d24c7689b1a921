// Package colorpick asks the user for an arbitrary color through a desktop
// color dialog or, when started from a terminal, an interactive TUI.
package colorpick

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/1broseidon/waliboard/internal/cover"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user closes the picker without choosing.
var ErrCancelled = errors.New("color picker cancelled")

// Picker asks the user for a color, starting from initial.
type Picker interface {
	Pick(ctx context.Context, initial cover.Color) (cover.Color, error)
	Name() string
}

// Names lists the accepted picker names in auto-detection order.
var Names = []string{"zenity", "yad", "kdialog", "terminal"}

// Swapped in tests.
var (
	lookPath   = exec.LookPath
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
	}
)

// New returns the named picker. "auto" (or "") picks the first dialog found
// in PATH, then the terminal picker when attached to a TTY. presets are
// offered as shortcuts by the terminal picker.
func New(name string, presets []cover.Preset) (Picker, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "auto":
		for _, candidate := range Names {
			if candidate == "terminal" {
				if isTerminal() {
					return newTerminalPicker(presets), nil
				}
				continue
			}
			if _, err := lookPath(candidate); err == nil {
				return newDialog(candidate), nil
			}
		}
		return nil, fmt.Errorf("no color picker available (looked for: zenity, yad, kdialog, or a terminal)")
	case "terminal":
		if !isTerminal() {
			return nil, fmt.Errorf("color picker %q needs stdin and stderr attached to a terminal", name)
		}
		return newTerminalPicker(presets), nil
	case "zenity", "yad", "kdialog":
		if _, err := lookPath(name); err != nil {
			return nil, fmt.Errorf("color picker %q not found in PATH", name)
		}
		return newDialog(name), nil
	default:
		return nil, fmt.Errorf("unknown color picker: %q (expected: auto, %s)", name, strings.Join(Names, ", "))
	}
}

// cssColor formats c for GTK dialogs, which accept rgb() and rgba() but not
// 8-digit hex.
func cssColor(c cover.Color) string {
	if c.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, c.Alpha())
}
