package cover

import "time"

// DefaultDoubleClickInterval matches common desktop defaults.
const DefaultDoubleClickInterval = 400 * time.Millisecond

// doubleClickSlop is how far (per axis) the second press may drift.
const doubleClickSlop = 4

// ClickTracker recognises double clicks from a stream of presses.
type ClickTracker struct {
	Interval time.Duration

	last     time.Time
	lastPos  Point
	lastBtn  Button
	hasFirst bool
}

// Press records a press and reports whether it completes a double click.
// A completed double click resets the tracker, so a third press starts over.
func (t *ClickTracker) Press(button Button, pos Point, at time.Time) bool {
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultDoubleClickInterval
	}

	if t.hasFirst && button == t.lastBtn && at.Sub(t.last) <= interval && near(pos, t.lastPos) {
		t.hasFirst = false
		return true
	}

	t.last = at
	t.lastPos = pos
	t.lastBtn = button
	t.hasFirst = true
	return false
}

// Reset forgets any pending first click.
func (t *ClickTracker) Reset() {
	t.hasFirst = false
}

func near(a, b Point) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx <= doubleClickSlop && dx >= -doubleClickSlop && dy <= doubleClickSlop && dy >= -doubleClickSlop
}
