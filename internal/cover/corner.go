package cover

// Corner names one of the four resize hit zones of the cover.
type Corner int

const (
	CornerNone Corner = iota
	CornerTopLeft
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// String returns the string representation of the corner
func (c Corner) String() string {
	switch c {
	case CornerNone:
		return "none"
	case CornerTopLeft:
		return "top_left"
	case CornerTopRight:
		return "top_right"
	case CornerBottomLeft:
		return "bottom_left"
	case CornerBottomRight:
		return "bottom_right"
	default:
		return "unknown"
	}
}

// ClassifyCorner hit-tests a window-local press position against the four
// cornerSize x cornerSize zones of a width x height window.
//
// Zones are tested in a fixed order (top-left, top-right, bottom-left,
// bottom-right) and the first match wins, so overlapping zones on a window
// smaller than 2*cornerSize resolve deterministically.
func ClassifyCorner(pos Point, width, height, cornerSize int) Corner {
	left := pos.X < cornerSize
	right := pos.X > width-cornerSize
	top := pos.Y < cornerSize
	bottom := pos.Y > height-cornerSize

	switch {
	case left && top:
		return CornerTopLeft
	case right && top:
		return CornerTopRight
	case left && bottom:
		return CornerBottomLeft
	case right && bottom:
		return CornerBottomRight
	default:
		return CornerNone
	}
}
