package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
)

// InitShape enables the SHAPE extension on the connection.
func (c *Connection) InitShape() error {
	if err := shape.Init(c.XUtil.Conn()); err != nil {
		return fmt.Errorf("shape init failed: %w", err)
	}
	return nil
}

// ShapeRoundedRect clips a window's bounding region to a rounded rectangle
// inset from the window edges. Everything outside the rectangle is not drawn.
func (c *Connection) ShapeRoundedRect(windowID xproto.Window, width, height, inset, radius int) error {
	rects := RoundedRectBands(width, height, inset, radius)
	return shape.RectanglesChecked(
		c.XUtil.Conn(),
		shape.SoSet,
		shape.SkBounding,
		xproto.ClipOrderingYXBanded,
		windowID,
		0, 0,
		rects,
	).Check()
}

// RoundedRectBands approximates a rounded rectangle with horizontal bands,
// top to bottom. Rows with the same horizontal extent are merged.
func RoundedRectBands(width, height, inset, radius int) []xproto.Rectangle {
	if inset < 0 {
		inset = 0
	}
	w := width - 2*inset
	h := height - 2*inset
	if w < 1 || h < 1 {
		// Too small to inset: keep the whole window visible.
		return []xproto.Rectangle{{X: 0, Y: 0, Width: uint16(max(width, 1)), Height: uint16(max(height, 1))}}
	}

	r := radius
	if r < 0 {
		r = 0
	}
	r = min(r, min(w/2, h/2))

	offsets := make([]int, r)
	for row := 0; row < r; row++ {
		dy := float64(r) - float64(row) - 0.5
		dx := math.Sqrt(float64(r*r) - dy*dy)
		offsets[row] = int(math.Round(float64(r) - dx))
	}

	var bands []xproto.Rectangle
	add := func(y, rowHeight, xoff int) {
		if rowHeight <= 0 {
			return
		}
		if n := len(bands); n > 0 {
			last := &bands[n-1]
			if int(last.X) == inset+xoff && int(last.Y)+int(last.Height) == y {
				last.Height += uint16(rowHeight)
				return
			}
		}
		bands = append(bands, xproto.Rectangle{
			X:      int16(inset + xoff),
			Y:      int16(y),
			Width:  uint16(w - 2*xoff),
			Height: uint16(rowHeight),
		})
	}

	for row := 0; row < r; row++ {
		add(inset+row, 1, offsets[row])
	}
	add(inset+r, h-2*r, 0)
	for row := r - 1; row >= 0; row-- {
		add(inset+h-1-row, 1, offsets[row])
	}

	return bands
}
