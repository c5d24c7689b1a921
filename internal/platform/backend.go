package platform

import (
	"time"

	"github.com/1broseidon/waliboard/internal/cover"
)

// EventHandler receives input and paint events from a Surface. All calls
// happen on the goroutine running Surface.Run.
type EventHandler interface {
	// PointerDown reports a button press. local is relative to the window
	// origin, global is on screen.
	PointerDown(button cover.Button, local, global cover.Point, at time.Time)
	// PointerMove reports motion while at least one button is held.
	PointerMove(held cover.Buttons, local, global cover.Point)
	// PointerUp reports a button release.
	PointerUp(button cover.Button, at time.Time)
	// Paint asks the handler to fill the surface.
	Paint()
}

// Surface is a frameless top-level window the cover lives in.
type Surface interface {
	cover.Host

	// Fill paints the whole (shaped) window with c.
	Fill(c cover.Color)
	// Run dispatches window events to h until the surface is closed.
	Run(h EventHandler) error
	// Disconnect releases the window-system connection.
	Disconnect()
}

// SurfaceOptions describes a new surface.
type SurfaceOptions struct {
	Title string
	Class string
	// Display overrides $DISPLAY when set.
	Display string

	Bounds cover.Rect
	// Centered places the surface in the middle of the monitor under the
	// pointer, ignoring Bounds.X and Bounds.Y.
	Centered bool

	MinSize      int
	Inset        int
	CornerRadius int
	Background   cover.Color
	Opacity      float64
	AlwaysOnTop  bool
}
