package colorpick

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/1broseidon/waliboard/internal/cover"
)

const dialogTitle = "waliboard"

// dialog runs an external color chooser and parses what it prints.
type dialog struct {
	command string
	args    func(initial cover.Color) []string
	// keepAlpha: the dialog has no alpha channel, so the initial alpha is
	// carried over to the result.
	keepAlpha bool
	// cancelCodes are exit statuses meaning "closed without choosing".
	cancelCodes []int
}

func newDialog(name string) *dialog {
	switch name {
	case "yad":
		return &dialog{
			command: name,
			args: func(initial cover.Color) []string {
				return []string{"--color", "--alpha", "--title=" + dialogTitle, "--init-color=" + cssColor(initial)}
			},
			// 252 is yad's "window closed" status.
			cancelCodes: []int{1, 252},
		}
	case "kdialog":
		return &dialog{
			command: name,
			args: func(initial cover.Color) []string {
				return []string{"--getcolor", "--title", dialogTitle, "--default", initial.Opaque().Hex()}
			},
			keepAlpha:   true,
			cancelCodes: []int{1},
		}
	default:
		return &dialog{
			command: "zenity",
			args: func(initial cover.Color) []string {
				return []string{"--color-selection", "--show-palette", "--title=" + dialogTitle, "--color=" + cssColor(initial)}
			},
			cancelCodes: []int{1},
		}
	}
}

func (d *dialog) Name() string {
	return d.command
}

func (d *dialog) Pick(ctx context.Context, initial cover.Color) (cover.Color, error) {
	cmd := exec.CommandContext(ctx, d.command, d.args(initial)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := firstLine(string(out))

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && selection == "" && slices.Contains(d.cancelCodes, exitErr.ExitCode()) {
			return cover.Color{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return cover.Color{}, fmt.Errorf("%s failed: %s", d.command, msg)
		}
		return cover.Color{}, fmt.Errorf("%s failed: %w", d.command, err)
	}
	if selection == "" {
		return cover.Color{}, ErrCancelled
	}

	c, err := cover.ParseColor(selection)
	if err != nil {
		return cover.Color{}, fmt.Errorf("%s returned %q: %w", d.command, selection, err)
	}
	if d.keepAlpha {
		c.A = initial.A
	}
	return c, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
