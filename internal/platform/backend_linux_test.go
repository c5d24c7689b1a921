//go:build linux

package platform

import (
	"testing"
	"time"

	"github.com/1broseidon/waliboard/internal/cover"
	"github.com/BurntSushi/xgb/xproto"
)

func TestButtonFromDetail(t *testing.T) {
	tests := []struct {
		detail xproto.Button
		want   cover.Button
	}{
		{xproto.ButtonIndex1, cover.ButtonPrimary},
		{xproto.ButtonIndex2, cover.ButtonMiddle},
		{xproto.ButtonIndex3, cover.ButtonSecondary},
		{xproto.ButtonIndex4, cover.Button(0)},
	}
	for _, tt := range tests {
		if got := buttonFromDetail(tt.detail); got != tt.want {
			t.Errorf("buttonFromDetail(%d) = %d, want %d", tt.detail, got, tt.want)
		}
	}
}

func TestHeldFromState(t *testing.T) {
	held := heldFromState(xproto.KeyButMaskButton1 | xproto.KeyButMaskShift)
	if !held.Has(cover.ButtonPrimary) {
		t.Fatal("expected primary held")
	}
	if held.Has(cover.ButtonSecondary) || held.Has(cover.ButtonMiddle) {
		t.Fatalf("unexpected buttons held: %b", held)
	}

	if got := heldFromState(0); got != 0 {
		t.Fatalf("heldFromState(0) = %b, want 0", got)
	}

	all := heldFromState(xproto.KeyButMaskButton1 | xproto.KeyButMaskButton2 | xproto.KeyButMaskButton3)
	if !all.Has(cover.ButtonPrimary) || !all.Has(cover.ButtonMiddle) || !all.Has(cover.ButtonSecondary) {
		t.Fatalf("heldFromState(all) = %b, want every button", all)
	}
}

func TestPixel(t *testing.T) {
	if got := pixel(cover.Color{R: 0xad, G: 0xd8, B: 0xe6, A: 0x80}); got != 0xadd8e6 {
		t.Fatalf("pixel = %#06x, want 0xadd8e6", got)
	}
	if got := pixel(cover.DefaultBackground); got != 0xf5f5f5 {
		t.Fatalf("pixel(default) = %#06x, want 0xf5f5f5", got)
	}
}

func TestServerTimePreservesDifferences(t *testing.T) {
	a := serverTime(1000)
	b := serverTime(1400)
	if d := b.Sub(a); d != 400*time.Millisecond {
		t.Fatalf("difference = %v, want 400ms", d)
	}
}
