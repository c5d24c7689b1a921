package cover

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonMiddle
	ButtonSecondary
)

// Buttons is the set of pointer buttons held during a motion event.
type Buttons uint8

const (
	HeldPrimary Buttons = 1 << iota
	HeldMiddle
	HeldSecondary
)

// Has reports whether b is held.
func (h Buttons) Has(b Button) bool {
	switch b {
	case ButtonPrimary:
		return h&HeldPrimary != 0
	case ButtonMiddle:
		return h&HeldMiddle != 0
	case ButtonSecondary:
		return h&HeldSecondary != 0
	default:
		return false
	}
}

const (
	DefaultCornerSize = 20
	DefaultMinSize    = 50
)

// Host is the window system the controller drives. All calls happen on the
// event loop goroutine.
type Host interface {
	// Geometry returns the current window rect in screen coordinates.
	Geometry() Rect
	SetGeometry(r Rect)
	MoveTo(p Point)
	// MapToScreen converts a window-local point to screen coordinates.
	MapToScreen(p Point) Point
	// RequestRepaint queues a redraw; it does not paint synchronously.
	RequestRepaint()
	Close()
}

// Options tune the controller hit zones and size limit.
type Options struct {
	CornerSize int
	MinSize    int
}

func (o Options) withDefaults() Options {
	if o.CornerSize <= 0 {
		o.CornerSize = DefaultCornerSize
	}
	if o.MinSize <= 0 {
		o.MinSize = DefaultMinSize
	}
	return o
}

// Controller turns pointer events on the cover into moves and resizes.
//
// It is not safe for concurrent use; the host delivers events serially.
type Controller struct {
	host    Host
	opts    Options
	session Session
}

// NewController creates an idle controller for host.
func NewController(host Host, opts Options) *Controller {
	return &Controller{
		host:    host,
		opts:    opts.withDefaults(),
		session: idleSession(),
	}
}

// Session returns the current interaction state.
func (c *Controller) Session() Session {
	return c.session
}

// Options returns the effective options.
func (c *Controller) Options() Options {
	return c.opts
}

// PointerDown starts a session on primary press and closes the cover on
// secondary press. pos is relative to the window origin.
func (c *Controller) PointerDown(button Button, pos Point) {
	switch button {
	case ButtonSecondary:
		c.session = idleSession()
		c.host.Close()
	case ButtonPrimary:
		geom := c.host.Geometry()
		corner := ClassifyCorner(pos, geom.Width, geom.Height, c.opts.CornerSize)
		if corner != CornerNone {
			c.session = resizingSession(corner)
			return
		}
		c.session = movingSession(pos)
	}
}

// PointerMove applies the active session. local is the pointer relative to
// the window, global is the pointer on screen.
func (c *Controller) PointerMove(held Buttons, local, global Point) {
	if !held.Has(ButtonPrimary) {
		return
	}

	switch c.session.Mode {
	case ModeResizing:
		candidate := c.host.Geometry().WithCorner(c.session.Corner, global)
		if !candidate.AtLeast(c.opts.MinSize) {
			return
		}
		c.host.SetGeometry(candidate)
	case ModeMoving:
		c.host.MoveTo(c.host.MapToScreen(local).Sub(c.session.Anchor))
	}
}

// PointerUp ends the session on primary release.
func (c *Controller) PointerUp(button Button) {
	if button == ButtonPrimary {
		c.session = idleSession()
	}
}
