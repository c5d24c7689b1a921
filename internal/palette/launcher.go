package palette

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type launcherKind int

const (
	kindRofi launcherKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

// launcher drives a dmenu-compatible program over stdin/stdout.
type launcher struct {
	command string
	kind    launcherKind

	// icons: rows may carry an icon via the \0icon\x1f<name> protocol.
	// markup: rows are pango markup and must be escaped.
	// indexOutput: the selection comes back as a row index.
	icons       bool
	markup      bool
	indexOutput bool

	fuzzyMatching bool
}

func newLauncher(name string) *launcher {
	switch name {
	case "rofi":
		return &launcher{command: name, kind: kindRofi, icons: true, markup: true, indexOutput: true}
	case "fuzzel":
		return &launcher{command: name, kind: kindFuzzel, icons: true, indexOutput: true}
	case "wofi":
		return &launcher{command: name, kind: kindWofi}
	default:
		return &launcher{command: "dmenu", kind: kindDmenu}
	}
}

func (l *launcher) Name() string {
	return l.command
}

func (l *launcher) Show(ctx context.Context, req Request) (Item, error) {
	if len(req.Items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	items := make([]Item, len(req.Items))
	copy(items, req.Items)

	input, selected := l.formatInput(items)
	args := l.buildArgs(req, items, selected)

	cmd := exec.CommandContext(ctx, l.command, args...)
	cmd.Stdin = strings.NewReader(input)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))

	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", l.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", l.command, err)
	}

	if selection == "" {
		return Item{}, ErrCancelled
	}

	item, err := l.parseSelection(selection, items)
	if err != nil {
		return Item{}, err
	}
	if item.IsHeader {
		// Some launchers cannot make rows non-selectable.
		return Item{}, ErrCancelled
	}
	return item, nil
}

func (l *launcher) buildArgs(req Request, items []Item, selected int) []string {
	var args []string

	switch l.kind {
	case kindRofi:
		args = []string{"-dmenu", "-i"}
		if req.Prompt != "" {
			args = append(args, "-p", req.Prompt)
		}
		// Output only the index for robust selection parsing (labels may contain markup).
		args = append(args, "-format", "i", "-no-custom")
		if l.fuzzyMatching {
			args = append(args, "-matching", "fuzzy")
		}
		args = append(args, "-markup-rows", "-show-icons")

		var active []string
		for i, item := range items {
			if item.IsActive && !item.IsHeader {
				active = append(active, strconv.Itoa(i))
			}
		}
		if len(active) > 0 {
			args = append(args, "-a", strings.Join(active, ","))
		}
		if selected >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(selected))
		}
		if req.Message != "" {
			args = append(args, "-mesg", req.Message)
		}

	case kindFuzzel:
		args = []string{"--dmenu", "--index"}
		if req.Prompt != "" {
			args = append(args, "--prompt", req.Prompt+" ")
		}

	case kindWofi:
		args = []string{"--dmenu"}
		if req.Prompt != "" {
			args = append(args, "--prompt", req.Prompt)
		}

	case kindDmenu:
		args = []string{"-i"}
		if req.Prompt != "" {
			args = append(args, "-p", req.Prompt)
		}
	}

	return args
}

// formatInput renders items one per line and returns the row that should
// start selected: the first active row, else the first selectable one.
func (l *launcher) formatInput(items []Item) (string, int) {
	if !l.indexOutput {
		// Text-matching launchers need unique labels.
		seen := make(map[string]int)
		for i := range items {
			key := sanitizeLabel(items[i].Label)
			if items[i].IsHeader || key == "" {
				continue
			}
			if n := seen[key]; n > 0 {
				items[i].Label = fmt.Sprintf("%s (%d)", key, n+1)
			}
			seen[key]++
		}
	}

	lines := make([]string, 0, len(items))
	first, firstActive := -1, -1
	for i, item := range items {
		lines = append(lines, l.formatItem(item))
		if item.IsHeader {
			continue
		}
		if first == -1 {
			first = i
		}
		if item.IsActive && firstActive == -1 {
			firstActive = i
		}
	}

	if firstActive != -1 {
		return strings.Join(lines, "\n"), firstActive
	}
	return strings.Join(lines, "\n"), first
}

func (l *launcher) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if l.markup {
		display = html.EscapeString(display)
		if item.IsHeader {
			display = "<b>" + display + "</b>"
		}
	}

	if !l.icons {
		return display
	}

	// Row properties: a single NUL, then key\x1fvalue pairs joined by \x1f.
	var attrs []string
	if item.IsHeader && l.kind == kindRofi {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" {
		attrs = append(attrs, "icon", sanitizeField(item.Icon))
	}
	if item.Meta != "" && l.kind == kindRofi {
		attrs = append(attrs, "meta", sanitizeField(item.Meta))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (l *launcher) parseSelection(selection string, items []Item) (Item, error) {
	if l.indexOutput {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}

	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	// Launchers use 1 for "no selection" and 130 for Ctrl+C.
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
