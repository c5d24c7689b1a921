package palette

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single selectable entry in a palette menu.
type Item struct {
	Label    string // Display text
	Action   string // Action identifier returned on selection
	Icon     string // Icon name or absolute PNG path (rofi/fuzzel)
	Meta     string // Hidden search keywords (rofi meta field)
	IsHeader bool   // Non-selectable section header (bold)
	IsActive bool   // Highlighted as current (rofi active row)
}

// Request is one palette invocation.
type Request struct {
	Prompt  string
	Message string // Context line (rofi message bar)
	Items   []Item
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	Show(ctx context.Context, req Request) (Item, error)
	Name() string
}

// Options selects and tunes a backend.
type Options struct {
	// Name is one of auto, rofi, fuzzel, wofi, dmenu. Empty means auto.
	Name string
	// FuzzyMatching enables rofi's fuzzy matcher.
	FuzzyMatching bool
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// launcherOrder is the auto-detection priority.
var launcherOrder = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// DetectBackend returns the first palette launcher found in PATH.
func DetectBackend() (string, error) {
	for _, name := range launcherOrder {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(launcherOrder, ", "))
}

// New creates a backend for opts.Name.
func New(opts Options) (Backend, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Name))
	switch name {
	case "", "auto":
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	case "rofi", "fuzzel", "wofi", "dmenu":
		if _, err := lookPath(name); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", name)
		}
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", opts.Name, strings.Join(launcherOrder, ", "))
	}

	l := newLauncher(name)
	l.fuzzyMatching = opts.FuzzyMatching
	return l, nil
}
