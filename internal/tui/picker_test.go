package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/waliboard/internal/cover"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m pickerModel, msgs ...tea.Msg) pickerModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		pm, ok := next.(pickerModel)
		if !ok {
			t.Fatalf("Update returned %T, want pickerModel", next)
		}
		m = pm
	}
	return m
}

func TestPickerAdjustsFocusedChannel(t *testing.T) {
	m := newPickerModel(cover.Color{R: 10, G: 20, B: 30, A: 255}, nil)

	m = send(t, m, runeKey("l"), tea.KeyMsg{Type: tea.KeyRight})
	if m.color.R != 12 {
		t.Fatalf("R = %d, want 12", m.color.R)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyShiftRight})
	if m.color.G != 36 {
		t.Fatalf("G = %d, want 36", m.color.G)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runeKey("H"), runeKey("H"))
	if m.color.B != 0 {
		t.Fatalf("B = %d, want 0 (clamped)", m.color.B)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runeKey("L"))
	if m.color.A != 255 {
		t.Fatalf("A = %d, want 255 (clamped)", m.color.A)
	}
	if m.hex.Value() != "#0c2400" {
		t.Fatalf("hex field = %q, want %q", m.hex.Value(), "#0c2400")
	}
}

func TestPickerFocusWraps(t *testing.T) {
	m := newPickerModel(cover.DefaultBackground, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.focus != fieldHex {
		t.Fatalf("focus = %v, want Hex", m.focus)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.focus != fieldRed {
		t.Fatalf("focus = %v, want R", m.focus)
	}
}

func TestPickerPresets(t *testing.T) {
	presets := cover.DefaultPresets()
	m := newPickerModel(cover.DefaultBackground, presets)

	m = send(t, m, runeKey("3"))
	if m.color != presets[2].Color || m.preset != 2 {
		t.Fatalf("after 3: color=%v preset=%d", m.color, m.preset)
	}

	m = send(t, m, runeKey("]"))
	if m.color != presets[3].Color {
		t.Fatalf("after ]: color=%v, want %v", m.color, presets[3].Color)
	}

	m = send(t, m, runeKey("["), runeKey("["))
	if m.color != presets[1].Color {
		t.Fatalf("after [[: color=%v, want %v", m.color, presets[1].Color)
	}

	m = send(t, m, runeKey("r"))
	if m.color != cover.DefaultBackground || m.preset != -1 {
		t.Fatalf("after reset: color=%v preset=%d", m.color, m.preset)
	}

	// Out of range digits are ignored.
	m = send(t, m, runeKey("9"))
	if m.color != cover.DefaultBackground {
		t.Fatalf("digit beyond presets changed color to %v", m.color)
	}
}

func TestPickerCyclePresetFromNone(t *testing.T) {
	presets := cover.DefaultPresets()

	m := send(t, newPickerModel(cover.DefaultBackground, presets), runeKey("["))
	if m.preset != len(presets)-1 {
		t.Fatalf("[ from none selected %d, want last", m.preset)
	}

	m = send(t, newPickerModel(cover.DefaultBackground, presets), runeKey("]"))
	if m.preset != 0 {
		t.Fatalf("] from none selected %d, want 0", m.preset)
	}
}

func TestPickerHexEntry(t *testing.T) {
	m := newPickerModel(cover.DefaultBackground, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != fieldHex || !m.hex.Focused() {
		t.Fatalf("hex field not focused")
	}

	m.hex.SetValue("zzz")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.accepted {
		t.Fatalf("invalid hex was accepted")
	}
	if m.hexErr == "" {
		t.Fatalf("expected hex error")
	}

	m.hex.SetValue("112233cc")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.accepted {
		t.Fatalf("valid hex not accepted")
	}
	want := cover.Color{R: 0x11, G: 0x22, B: 0x33, A: 0xcc}
	if m.color != want {
		t.Fatalf("color = %v, want %v", m.color, want)
	}
}

func TestPickerHexFieldSwallowsShortcuts(t *testing.T) {
	m := newPickerModel(cover.DefaultBackground, cover.DefaultPresets())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, runeKey("q"), runeKey("1"))
	if m.cancelled {
		t.Fatalf("q cancelled while typing in the hex field")
	}
	if m.color != cover.DefaultBackground {
		t.Fatalf("digit applied a preset while typing in the hex field")
	}
}

func TestPickerLeavingHexDiscardsInvalidEntry(t *testing.T) {
	m := newPickerModel(cover.DefaultBackground, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m.hex.SetValue("nope")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldRed {
		t.Fatalf("focus = %v, want R", m.focus)
	}
	if m.hex.Value() != cover.DefaultBackground.Hex() {
		t.Fatalf("hex field = %q, want reset to %q", m.hex.Value(), cover.DefaultBackground.Hex())
	}
	if m.color != cover.DefaultBackground {
		t.Fatalf("color changed to %v", m.color)
	}
}

func TestPickerCancelKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		runeKey("q"),
	} {
		m := send(t, newPickerModel(cover.DefaultBackground, nil), msg)
		if !m.cancelled || m.accepted {
			t.Fatalf("%q: cancelled=%v accepted=%v", msg.String(), m.cancelled, m.accepted)
		}
	}
}

func TestPickerView(t *testing.T) {
	m := newPickerModel(cover.Color{R: 255, G: 0, B: 0, A: 128}, cover.DefaultPresets())
	view := m.View()
	for _, want := range []string{"#ff000080", "White", "Light orange", "128"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	m.accepted = true
	if m.View() != "" {
		t.Fatalf("view should be empty once finished")
	}
}

func TestClampChannel(t *testing.T) {
	tests := map[int]uint8{-20: 0, 0: 0, 128: 128, 255: 255, 300: 255}
	for in, want := range tests {
		if got := clampChannel(in); got != want {
			t.Fatalf("clampChannel(%d) = %d, want %d", in, got, want)
		}
	}
}
