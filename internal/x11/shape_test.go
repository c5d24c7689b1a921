package x11

import "testing"

func TestRoundedRectBands_NoRadiusIsInsetRect(t *testing.T) {
	bands := RoundedRectBands(400, 300, 5, 0)
	if len(bands) != 1 {
		t.Fatalf("expected a single band, got %d: %+v", len(bands), bands)
	}
	b := bands[0]
	if b.X != 5 || b.Y != 5 || b.Width != 390 || b.Height != 290 {
		t.Fatalf("unexpected band %+v", b)
	}
}

func TestRoundedRectBands_CoversInnerHeightSymmetrically(t *testing.T) {
	const (
		width, height = 400, 300
		inset, radius = 5, 15
	)
	bands := RoundedRectBands(width, height, inset, radius)
	if len(bands) < 3 {
		t.Fatalf("expected rounded corners to produce several bands, got %+v", bands)
	}

	nextY := inset
	total := 0
	for i, b := range bands {
		if int(b.Y) != nextY {
			t.Fatalf("band %d starts at y=%d, expected %d", i, b.Y, nextY)
		}
		if int(b.X) < inset || int(b.X)+int(b.Width) > width-inset {
			t.Fatalf("band %d escapes the inset: %+v", i, b)
		}
		// Horizontal symmetry around the window center.
		left := int(b.X)
		right := width - (int(b.X) + int(b.Width))
		if left != right {
			t.Fatalf("band %d is not symmetric: %+v", i, b)
		}
		nextY += int(b.Height)
		total += int(b.Height)
	}
	if total != height-2*inset {
		t.Fatalf("bands cover %d rows, expected %d", total, height-2*inset)
	}

	first, last := bands[0], bands[len(bands)-1]
	if first.X != last.X || first.Width != last.Width {
		t.Fatalf("top and bottom rows differ: %+v vs %+v", first, last)
	}
	if int(first.Width) >= width-2*inset {
		t.Fatalf("expected the top row to be narrower than the body, got %+v", first)
	}
}

func TestRoundedRectBands_ClampsRadiusAndTinyWindows(t *testing.T) {
	bands := RoundedRectBands(60, 60, 5, 500)
	total := 0
	for _, b := range bands {
		total += int(b.Height)
	}
	if total != 50 {
		t.Fatalf("expected 50 covered rows, got %d", total)
	}

	tiny := RoundedRectBands(8, 8, 5, 15)
	if len(tiny) != 1 || tiny[0].Width != 8 || tiny[0].Height != 8 {
		t.Fatalf("expected full-window fallback, got %+v", tiny)
	}
}
