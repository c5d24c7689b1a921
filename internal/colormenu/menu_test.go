package colormenu

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/waliboard/internal/colorpick"
	"github.com/1broseidon/waliboard/internal/cover"
	"github.com/1broseidon/waliboard/internal/palette"
)

type fakeBackend struct {
	choose func(req palette.Request) (palette.Item, error)
	last   palette.Request
	calls  int
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Show(_ context.Context, req palette.Request) (palette.Item, error) {
	b.calls++
	b.last = req
	return b.choose(req)
}

func selectLabel(label string) func(palette.Request) (palette.Item, error) {
	return func(req palette.Request) (palette.Item, error) {
		for _, it := range req.Items {
			if it.Label == label {
				return it, nil
			}
		}
		return palette.Item{}, errors.New("label not offered: " + label)
	}
}

type fakePicker struct {
	color   cover.Color
	err     error
	initial cover.Color
	calls   int
}

func (p *fakePicker) Name() string { return "fakepick" }

func (p *fakePicker) Pick(_ context.Context, initial cover.Color) (cover.Color, error) {
	p.calls++
	p.initial = initial
	return p.color, p.err
}

func TestItemsListsPresetsThenPicker(t *testing.T) {
	presets := cover.DefaultPresets()
	m := New(&fakeBackend{}, Options{Presets: presets, Picker: &fakePicker{}})

	items := m.Items(presets[2].Color)
	if len(items) != len(presets)+1 {
		t.Fatalf("got %d items, want %d", len(items), len(presets)+1)
	}
	for i, p := range presets {
		it := items[i]
		if it.Label != p.Name || it.Meta != p.Color.Hex() {
			t.Fatalf("item %d = %+v, want preset %+v", i, it, p)
		}
		if it.IsActive != (i == 2) {
			t.Fatalf("item %d active = %v", i, it.IsActive)
		}
		if it.Icon != "" {
			t.Fatalf("item %d has icon %q without an icon dir", i, it.Icon)
		}
	}
	last := items[len(items)-1]
	if last.Label != "Color picker…" || last.Action != "picker" {
		t.Fatalf("last item = %+v, want picker entry", last)
	}
}

func TestItemsWithoutPicker(t *testing.T) {
	m := New(&fakeBackend{}, Options{Presets: cover.DefaultPresets()})
	for _, it := range m.Items(cover.DefaultBackground) {
		if it.Action == "picker" {
			t.Fatalf("picker entry offered without a picker")
		}
	}
}

func TestItemsWriteIcons(t *testing.T) {
	dir := t.TempDir()
	presets := cover.DefaultPresets()[:2]
	m := New(&fakeBackend{}, Options{Presets: presets, Picker: &fakePicker{}, IconDir: dir})

	items := m.Items(cover.DefaultBackground)
	want := []string{"swatch-ffffff.png", "swatch-000000.png", "picker.png"}
	for i, name := range want {
		if items[i].Icon != filepath.Join(dir, name) {
			t.Fatalf("item %d icon = %q, want %q", i, items[i].Icon, name)
		}
		if _, err := os.Stat(items[i].Icon); err != nil {
			t.Fatalf("icon %s not written: %v", name, err)
		}
	}
}

func TestItemsMissingIconDirDropsIcons(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	m := New(&fakeBackend{}, Options{Presets: cover.DefaultPresets()[:1], IconDir: dir})
	items := m.Items(cover.DefaultBackground)
	if len(items) != 1 || items[0].Icon != "" {
		t.Fatalf("items = %+v, want one row without icon", items)
	}
}

func TestChoosePreset(t *testing.T) {
	presets := cover.DefaultPresets()
	b := &fakeBackend{choose: selectLabel("Light blue")}
	m := New(b, Options{Presets: presets})

	c, ok, err := m.Choose(context.Background(), cover.DefaultBackground)
	if err != nil || !ok {
		t.Fatalf("Choose: ok=%v err=%v", ok, err)
	}
	if c != (cover.Color{R: 173, G: 216, B: 230, A: 255}) {
		t.Fatalf("color = %v", c)
	}
	if b.last.Prompt != "waliboard" || !strings.Contains(b.last.Message, "#f5f5f5") {
		t.Fatalf("request = %+v", b.last)
	}
}

func TestChoosePickerEntry(t *testing.T) {
	want := cover.Color{R: 1, G: 2, B: 3, A: 100}
	picker := &fakePicker{color: want}
	m := New(&fakeBackend{choose: selectLabel("Color picker…")}, Options{
		Presets: cover.DefaultPresets(),
		Picker:  picker,
	})

	current := cover.Color{R: 9, G: 9, B: 9, A: 200}
	c, ok, err := m.Choose(context.Background(), current)
	if err != nil || !ok || c != want {
		t.Fatalf("Choose = %v, %v, %v", c, ok, err)
	}
	if picker.initial != current {
		t.Fatalf("picker started from %v, want %v", picker.initial, current)
	}
}

func TestChooseCancelled(t *testing.T) {
	cancel := func(palette.Request) (palette.Item, error) { return palette.Item{}, palette.ErrCancelled }
	m := New(&fakeBackend{choose: cancel}, Options{Presets: cover.DefaultPresets()})
	if _, ok, err := m.Choose(context.Background(), cover.DefaultBackground); ok || err != nil {
		t.Fatalf("menu cancel: ok=%v err=%v", ok, err)
	}

	picker := &fakePicker{err: colorpick.ErrCancelled}
	m = New(&fakeBackend{choose: selectLabel("Color picker…")}, Options{Picker: picker})
	if _, ok, err := m.Choose(context.Background(), cover.DefaultBackground); ok || err != nil {
		t.Fatalf("picker cancel: ok=%v err=%v", ok, err)
	}
}

func TestChooseErrors(t *testing.T) {
	boom := errors.New("boom")
	m := New(&fakeBackend{choose: func(palette.Request) (palette.Item, error) { return palette.Item{}, boom }}, Options{})
	if _, ok, err := m.Choose(context.Background(), cover.DefaultBackground); ok || !errors.Is(err, boom) {
		t.Fatalf("backend error: ok=%v err=%v", ok, err)
	}

	m = New(&fakeBackend{choose: selectLabel("Color picker…")}, Options{Picker: &fakePicker{err: boom}})
	if _, ok, err := m.Choose(context.Background(), cover.DefaultBackground); ok || !errors.Is(err, boom) {
		t.Fatalf("picker error: ok=%v err=%v", ok, err)
	}

	bogus := func(palette.Request) (palette.Item, error) { return palette.Item{Action: "preset:99"}, nil }
	m = New(&fakeBackend{choose: bogus}, Options{Presets: cover.DefaultPresets()})
	if _, ok, err := m.Choose(context.Background(), cover.DefaultBackground); ok || err == nil {
		t.Fatalf("out of range preset: ok=%v err=%v", ok, err)
	}
}

func TestChooseWithoutBackend(t *testing.T) {
	want := cover.Color{R: 50, G: 60, B: 70, A: 255}
	m := New(nil, Options{Picker: &fakePicker{color: want}})
	if c, ok, err := m.Choose(context.Background(), cover.DefaultBackground); err != nil || !ok || c != want {
		t.Fatalf("Choose = %v, %v, %v", c, ok, err)
	}

	m = New(nil, Options{})
	if _, _, err := m.Choose(context.Background(), cover.DefaultBackground); !errors.Is(err, ErrNoChooser) {
		t.Fatalf("err = %v, want ErrNoChooser", err)
	}
}

func TestSwatchPixels(t *testing.T) {
	c := cover.Color{R: 0xff, G: 0xb6, B: 0xc1, A: 0x40}
	img := Swatch(c)

	center := img.RGBAAt(IconSize/2, IconSize/2)
	if center.R != 0xff || center.G != 0xb6 || center.B != 0xc1 || center.A != 0xff {
		t.Fatalf("center pixel = %+v, want opaque pink", center)
	}
	if corner := img.RGBAAt(0, 0); corner.A != 0 {
		t.Fatalf("corner pixel = %+v, want transparent", corner)
	}
	edge := img.RGBAAt(IconSize/2, 1)
	if edge.A == 0 || edge.R != edge.G || edge.G != edge.B {
		t.Fatalf("outline pixel = %+v, want gray", edge)
	}
}

func TestPickerIconPixels(t *testing.T) {
	img := PickerIcon()
	if c := img.RGBAAt(IconSize/2, IconSize/2); c.A != 0xff || c.R != 0 {
		t.Fatalf("crosshair center = %+v, want black", c)
	}
	if c := img.RGBAAt(IconSize/2+5, IconSize/2+5); c.A != 0 {
		t.Fatalf("ring interior = %+v, want transparent", c)
	}
	if c := img.RGBAAt(0, 0); c.A != 0 {
		t.Fatalf("corner = %+v, want transparent", c)
	}
}

func TestWriteIconKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteIcon(dir, "x.png", Swatch(cover.DefaultBackground))
	if err != nil {
		t.Fatalf("WriteIcon: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != IconSize || b.Dy() != IconSize {
		t.Fatalf("icon bounds = %v", b)
	}

	if err := os.WriteFile(path, []byte("sentinel"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteIcon(dir, "x.png", PickerIcon()); err != nil {
		t.Fatalf("second WriteIcon: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "sentinel" {
		t.Fatalf("existing icon was overwritten")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}
