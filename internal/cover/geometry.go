package cover

// Point is a position in either window-local or screen coordinates.
type Point struct {
	X int
	Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect describes the cover window in screen coordinates.
//
// The right and bottom edges are exclusive: a rect at (100,100) with size
// 400x300 has its bottom-right corner at (500,400).
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectFromCorners builds a rect from its top-left and bottom-right points.
// The result may have a negative width or height.
func RectFromCorners(topLeft, bottomRight Point) Rect {
	return Rect{
		X:      topLeft.X,
		Y:      topLeft.Y,
		Width:  bottomRight.X - topLeft.X,
		Height: bottomRight.Y - topLeft.Y,
	}
}

func (r Rect) Origin() Point      { return Point{X: r.X, Y: r.Y} }
func (r Rect) Right() int         { return r.X + r.Width }
func (r Rect) Bottom() int        { return r.Y + r.Height }
func (r Rect) TopLeft() Point     { return Point{X: r.X, Y: r.Y} }
func (r Rect) TopRight() Point    { return Point{X: r.Right(), Y: r.Y} }
func (r Rect) BottomLeft() Point  { return Point{X: r.X, Y: r.Bottom()} }
func (r Rect) BottomRight() Point { return Point{X: r.Right(), Y: r.Bottom()} }

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// WithCorner returns r with the named corner moved to p while the opposite
// corner stays where it is. CornerNone returns r unchanged.
func (r Rect) WithCorner(c Corner, p Point) Rect {
	switch c {
	case CornerTopLeft:
		return RectFromCorners(p, r.BottomRight())
	case CornerTopRight:
		return RectFromCorners(Point{X: r.X, Y: p.Y}, Point{X: p.X, Y: r.Bottom()})
	case CornerBottomLeft:
		return RectFromCorners(Point{X: p.X, Y: r.Y}, Point{X: r.Right(), Y: p.Y})
	case CornerBottomRight:
		return RectFromCorners(r.TopLeft(), p)
	default:
		return r
	}
}

// AtLeast reports whether both dimensions are strictly greater than min.
func (r Rect) AtLeast(min int) bool {
	return r.Width > min && r.Height > min
}
