package cover

import "testing"

func TestClassifyCorner(t *testing.T) {
	cases := []struct {
		pos  Point
		w, h int
		want Corner
	}{
		{Point{X: 0, Y: 0}, 400, 300, CornerTopLeft},
		{Point{X: 19, Y: 19}, 400, 300, CornerTopLeft},
		{Point{X: 20, Y: 19}, 400, 300, CornerNone},
		{Point{X: 381, Y: 0}, 400, 300, CornerTopRight},
		{Point{X: 380, Y: 0}, 400, 300, CornerNone},
		{Point{X: 0, Y: 281}, 400, 300, CornerBottomLeft},
		{Point{X: 399, Y: 299}, 400, 300, CornerBottomRight},
		{Point{X: 200, Y: 150}, 400, 300, CornerNone},
		// Small windows: zones overlap and the fixed order decides.
		{Point{X: 15, Y: 15}, 30, 30, CornerTopLeft},
		{Point{X: 15, Y: 25}, 30, 30, CornerBottomLeft},
		{Point{X: 25, Y: 15}, 30, 30, CornerTopRight},
		{Point{X: 25, Y: 25}, 30, 30, CornerBottomRight},
	}

	for _, tc := range cases {
		if got := ClassifyCorner(tc.pos, tc.w, tc.h, 20); got != tc.want {
			t.Fatalf("ClassifyCorner(%+v, %d, %d) = %s, want %s", tc.pos, tc.w, tc.h, got, tc.want)
		}
	}
}

func TestRectWithCorner(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: 400, Height: 300}
	p := Point{X: 150, Y: 160}

	cases := []struct {
		corner Corner
		want   Rect
	}{
		{CornerTopLeft, Rect{X: 150, Y: 160, Width: 350, Height: 240}},
		{CornerTopRight, Rect{X: 100, Y: 160, Width: 50, Height: 240}},
		{CornerBottomLeft, Rect{X: 150, Y: 100, Width: 350, Height: 60}},
		{CornerBottomRight, Rect{X: 100, Y: 100, Width: 50, Height: 60}},
		{CornerNone, r},
	}
	for _, tc := range cases {
		if got := r.WithCorner(tc.corner, p); got != tc.want {
			t.Fatalf("WithCorner(%s) = %+v, want %+v", tc.corner, got, tc.want)
		}
	}
}

func TestSessionString(t *testing.T) {
	if got := resizingSession(CornerBottomLeft).String(); got != "resizing(bottom_left)" {
		t.Fatalf("unexpected session string %q", got)
	}
	if got := movingSession(Point{X: 1, Y: 2}).String(); got != "moving" {
		t.Fatalf("unexpected session string %q", got)
	}
	if got := idleSession().String(); got != "idle" {
		t.Fatalf("unexpected session string %q", got)
	}
}
