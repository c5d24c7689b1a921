package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/waliboard/internal/cover"
)

// ErrCancelled is returned when the user backs out of the picker or the
// config wizard.
var ErrCancelled = errors.New("cancelled")

// field is the focusable row of the picker.
type field int

const (
	fieldRed field = iota
	fieldGreen
	fieldBlue
	fieldAlpha
	fieldHex
	fieldCount // sentinel for cycling
)

func (f field) String() string {
	switch f {
	case fieldRed:
		return "R"
	case fieldGreen:
		return "G"
	case fieldBlue:
		return "B"
	case fieldAlpha:
		return "A"
	case fieldHex:
		return "Hex"
	default:
		return "?"
	}
}

const (
	smallStep = 1
	largeStep = 16
	barWidth  = 32
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	focusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// pickerModel is the bubbletea model behind PickColor.
type pickerModel struct {
	color   cover.Color
	initial cover.Color
	presets []cover.Preset
	preset  int // index of the last applied preset, -1 when none

	focus  field
	hex    textinput.Model
	hexErr string

	accepted  bool
	cancelled bool
}

func newPickerModel(initial cover.Color, presets []cover.Preset) pickerModel {
	hex := textinput.New()
	hex.Prompt = ""
	hex.CharLimit = len("#rrggbbaa")
	hex.Placeholder = "#rrggbb"
	hex.SetValue(initial.Hex())

	return pickerModel{
		color:   initial,
		initial: initial,
		presets: presets,
		preset:  -1,
		hex:     hex,
	}
}

// Init implements tea.Model.
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focus == fieldHex {
			var cmd tea.Cmd
			m.hex, cmd = m.hex.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch km.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		if m.focus == fieldHex && !m.applyHex() {
			return m, nil
		}
		m.accepted = true
		return m, tea.Quit
	case "tab", "down":
		return m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
	}

	// The hex field owns every other key while it is focused.
	if m.focus == fieldHex {
		var cmd tea.Cmd
		m.hex, cmd = m.hex.Update(msg)
		m.hexErr = ""
		return m, cmd
	}

	switch key := km.String(); key {
	case "q":
		m.cancelled = true
		return m, tea.Quit
	case "left", "h":
		m.adjust(-smallStep)
	case "right", "l":
		m.adjust(smallStep)
	case "shift+left", "H":
		m.adjust(-largeStep)
	case "shift+right", "L":
		m.adjust(largeStep)
	case "r":
		m.setColor(m.initial)
		m.preset = -1
	case "[":
		m.cyclePreset(-1)
	case "]":
		m.cyclePreset(1)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.presets) {
			m.applyPreset(n - 1)
		}
	}
	return m, nil
}

func (m pickerModel) setFocus(f field) (tea.Model, tea.Cmd) {
	if m.focus == fieldHex && f != fieldHex {
		// Leaving the hex field keeps a valid entry and discards an invalid one.
		if !m.applyHex() {
			m.hex.SetValue(m.color.Hex())
			m.hexErr = ""
		}
		m.hex.Blur()
	}
	m.focus = f
	if f == fieldHex {
		m.hex.SetValue(m.color.Hex())
		return m, m.hex.Focus()
	}
	return m, nil
}

// applyHex parses the hex field into the current color and reports success.
func (m *pickerModel) applyHex() bool {
	value := strings.TrimSpace(m.hex.Value())
	if value != "" && !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	c, err := cover.ParseColor(value)
	if err != nil {
		m.hexErr = err.Error()
		return false
	}
	m.color = c
	m.hexErr = ""
	m.preset = -1
	return true
}

func (m *pickerModel) adjust(delta int) {
	c := m.color
	switch m.focus {
	case fieldRed:
		c.R = clampChannel(int(c.R) + delta)
	case fieldGreen:
		c.G = clampChannel(int(c.G) + delta)
	case fieldBlue:
		c.B = clampChannel(int(c.B) + delta)
	case fieldAlpha:
		c.A = clampChannel(int(c.A) + delta)
	}
	m.setColor(c)
	m.preset = -1
}

func (m *pickerModel) applyPreset(i int) {
	m.setColor(m.presets[i].Color)
	m.preset = i
}

func (m *pickerModel) cyclePreset(dir int) {
	n := len(m.presets)
	if n == 0 {
		return
	}
	next := 0
	switch {
	case m.preset >= 0:
		next = (m.preset + dir + n) % n
	case dir < 0:
		next = n - 1
	}
	m.applyPreset(next)
}

func (m *pickerModel) setColor(c cover.Color) {
	m.color = c
	m.hex.SetValue(c.Hex())
	m.hexErr = ""
}

func clampChannel(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

// View implements tea.Model.
func (m pickerModel) View() string {
	if m.accepted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("waliboard color"))
	b.WriteString("\n\n")

	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(m.color.Opaque().Hex())).
		Render(strings.Repeat(" ", barWidth+8))
	b.WriteString(swatch + "\n" + swatch + "\n\n")

	channels := []struct {
		f field
		v uint8
	}{
		{fieldRed, m.color.R},
		{fieldGreen, m.color.G},
		{fieldBlue, m.color.B},
		{fieldAlpha, m.color.A},
	}
	for _, ch := range channels {
		b.WriteString(m.label(ch.f))
		b.WriteString(" ")
		b.WriteString(renderBar(ch.v))
		fmt.Fprintf(&b, " %3d\n", ch.v)
	}

	b.WriteString(m.label(fieldHex))
	b.WriteString(" ")
	if m.focus == fieldHex {
		b.WriteString(m.hex.View())
	} else {
		b.WriteString(m.color.Hex())
	}
	b.WriteString("\n")
	if m.hexErr != "" {
		b.WriteString(errorStyle.Render("  " + m.hexErr))
		b.WriteString("\n")
	}

	if len(m.presets) > 0 {
		b.WriteString("\n")
		for i, p := range m.presets {
			if i >= 9 {
				break
			}
			dot := lipgloss.NewStyle().
				Foreground(lipgloss.Color(p.Color.Opaque().Hex())).
				Render("●")
			line := fmt.Sprintf("%d %s %s", i+1, dot, p.Name)
			if i == m.preset {
				line = focusStyle.Render("> ") + line
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString(helpStyle.Render("↑/↓ field  ←/→ ±1  shift+←/→ ±16  1-9 preset  r reset  enter accept  esc cancel"))
	return b.String()
}

func (m pickerModel) label(f field) string {
	name := fmt.Sprintf("%-3s", f.String())
	if f == m.focus {
		return focusStyle.Render("> " + name)
	}
	return dimStyle.Render("  " + name)
}

func renderBar(v uint8) string {
	filled := int(v) * barWidth / 255
	return strings.Repeat("█", filled) + dimStyle.Render(strings.Repeat("░", barWidth-filled))
}

// PickColor runs an interactive color picker on the given terminal streams.
// It returns ErrCancelled when the user backs out, and the context error when
// ctx ends first.
func PickColor(ctx context.Context, initial cover.Color, presets []cover.Preset, in io.Reader, out io.Writer) (cover.Color, error) {
	p := tea.NewProgram(
		newPickerModel(initial, presets),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return cover.Color{}, ctxErr
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return cover.Color{}, ErrCancelled
		}
		return cover.Color{}, fmt.Errorf("color picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || !m.accepted {
		return cover.Color{}, ErrCancelled
	}
	return m.color, nil
}
