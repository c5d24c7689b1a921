package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/waliboard/internal/config"
	"github.com/1broseidon/waliboard/internal/cover"
)

// wizardValues holds the form fields as the user typed them.
type wizardValues struct {
	width          string
	height         string
	background     string
	opacity        string
	alwaysOnTop    bool
	paletteBackend string
	colorPicker    string
	menuHotkey     string
}

func newWizardValues(cfg *config.Config) wizardValues {
	return wizardValues{
		width:          strconv.Itoa(cfg.Width),
		height:         strconv.Itoa(cfg.Height),
		background:     cfg.Background,
		opacity:        strconv.FormatFloat(cfg.Opacity, 'g', -1, 64),
		alwaysOnTop:    cfg.AlwaysOnTop,
		paletteBackend: cfg.PaletteBackend,
		colorPicker:    cfg.ColorPicker,
		menuHotkey:     cfg.MenuHotkey,
	}
}

// apply copies the values into cfg and validates the result. cfg is left
// untouched on error.
func (v wizardValues) apply(cfg *config.Config) error {
	next := *cfg

	w, err := parseSize(v.width)
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	h, err := parseSize(v.height)
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}
	if _, err := cover.ParseColor(v.background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	op, err := strconv.ParseFloat(strings.TrimSpace(v.opacity), 64)
	if err != nil {
		return fmt.Errorf("opacity: %w", err)
	}

	next.Width = w
	next.Height = h
	next.Background = strings.TrimSpace(v.background)
	next.Opacity = op
	next.AlwaysOnTop = v.alwaysOnTop
	next.PaletteBackend = v.paletteBackend
	next.ColorPicker = v.colorPicker
	next.MenuHotkey = strings.TrimSpace(v.menuHotkey)

	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}

func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return n, nil
}

func validateSize(s string) error {
	_, err := parseSize(s)
	return err
}

func validateColor(s string) error {
	_, err := cover.ParseColor(strings.TrimSpace(s))
	return err
}

func validateOpacity(s string) error {
	op, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if op <= 0 || op > 1 {
		return fmt.Errorf("must be in (0, 1]")
	}
	return nil
}

// RunConfigWizard walks the user through the common settings and applies
// the answers to cfg. It returns ErrCancelled when the form is aborted.
func RunConfigWizard(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	v := newWizardValues(cfg)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("width").
				Title("Width").
				Description("Initial cover width in pixels").
				Validate(validateSize).
				Value(&v.width),
			huh.NewInput().
				Key("height").
				Title("Height").
				Description("Initial cover height in pixels").
				Validate(validateSize).
				Value(&v.height),
			huh.NewInput().
				Key("background").
				Title("Background").
				Description("#rrggbb, #rrggbbaa or rgba(r,g,b,a)").
				Validate(validateColor).
				Value(&v.background),
			huh.NewInput().
				Key("opacity").
				Title("Opacity").
				Description("Window opacity between 0 and 1").
				Validate(validateOpacity).
				Value(&v.opacity),
			huh.NewConfirm().
				Key("always_on_top").
				Title("Keep above other windows?").
				Value(&v.alwaysOnTop),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("palette_backend").
				Title("Menu launcher").
				Options(huh.NewOptions(config.PaletteBackends...)...).
				Value(&v.paletteBackend),
			huh.NewSelect[string]().
				Key("color_picker").
				Title("Color picker").
				Options(huh.NewOptions(config.ColorPickers...)...).
				Value(&v.colorPicker),
			huh.NewInput().
				Key("menu_hotkey").
				Title("Menu hotkey").
				Description("Optional X11 keybinding that opens the color menu").
				Value(&v.menuHotkey),
		),
	).WithInput(in).WithOutput(out)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	return v.apply(cfg)
}
