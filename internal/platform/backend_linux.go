//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/waliboard/internal/cover"
	"github.com/1broseidon/waliboard/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// LinuxSurface is an X11 cover window. It caches its geometry so the
// controller can read it without a server round trip.
type LinuxSurface struct {
	conn   *x11.Connection
	win    *xwindow.Window
	opts   SurfaceOptions
	logger *slog.Logger

	geom    cover.Rect
	shaped  bool
	opacity float64
	closed  bool
}

var _ Surface = (*LinuxSurface)(nil)

// NewLinuxSurface connects to the X server and creates the cover window.
// The window is mapped by Run.
func NewLinuxSurface(opts SurfaceOptions, logger *slog.Logger) (*LinuxSurface, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := x11.NewConnection(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	bounds := opts.Bounds
	if opts.Centered {
		mon, err := conn.PointerMonitor()
		if err != nil {
			logger.Warn("monitor lookup failed, placing at origin", "error", err)
		} else {
			bounds.X, bounds.Y = mon.CenteredIn(bounds.Width, bounds.Height)
			logger.Debug("centering cover", "monitor", mon.Name, "x", bounds.X, "y", bounds.Y)
		}
	}

	opacity := opts.Opacity * opts.Background.Alpha()
	win, err := conn.CreateCoverWindow(x11.CoverWindowOptions{
		Title:       opts.Title,
		Class:       opts.Class,
		X:           bounds.X,
		Y:           bounds.Y,
		Width:       bounds.Width,
		Height:      bounds.Height,
		MinSize:     opts.MinSize,
		Background:  pixel(opts.Background),
		Opacity:     opacity,
		AlwaysOnTop: opts.AlwaysOnTop,
	})
	if err != nil {
		conn.Close()
		return nil, err
	}

	s := &LinuxSurface{
		conn:    conn,
		win:     win,
		opts:    opts,
		logger:  logger,
		geom:    bounds,
		opacity: opacity,
	}

	if err := conn.InitShape(); err != nil {
		logger.Warn("SHAPE extension unavailable, corners stay square", "error", err)
	} else {
		s.shaped = true
		s.reshape()
	}

	return s, nil
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (s *LinuxSurface) XUtil() *xgbutil.XUtil {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (s *LinuxSurface) RootWindow() xproto.Window {
	if s == nil || s.conn == nil {
		return 0
	}
	return s.conn.Root
}

// Geometry returns the last known window rectangle.
func (s *LinuxSurface) Geometry() cover.Rect {
	return s.geom
}

// SetGeometry moves and resizes the window in one request.
func (s *LinuxSurface) SetGeometry(r cover.Rect) {
	if s.closed {
		return
	}
	s.geom = r
	s.conn.MoveResizeWindow(s.win.Id, r.X, r.Y, r.Width, r.Height)
}

// MoveTo moves the window keeping its size.
func (s *LinuxSurface) MoveTo(p cover.Point) {
	if s.closed {
		return
	}
	s.geom.X, s.geom.Y = p.X, p.Y
	s.conn.MoveWindow(s.win.Id, p.X, p.Y)
}

// MapToScreen converts a window-relative point to screen coordinates.
func (s *LinuxSurface) MapToScreen(p cover.Point) cover.Point {
	return p.Add(s.geom.Origin())
}

// RequestRepaint schedules an Expose so Paint runs from the event loop.
func (s *LinuxSurface) RequestRepaint() {
	if s.closed {
		return
	}
	s.conn.RequestExpose(s.win.Id)
}

// Close destroys the window and stops Run. It is safe to call twice.
func (s *LinuxSurface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.win.Destroy()
	s.conn.Quit()
}

// Fill sets the window background to c and clears it. The alpha channel
// scales the configured opacity.
func (s *LinuxSurface) Fill(c cover.Color) {
	if s.closed {
		return
	}
	s.conn.SetBackground(s.win.Id, pixel(c))
	s.conn.Clear(s.win.Id)

	opacity := s.opts.Opacity * c.Alpha()
	if opacity != s.opacity {
		if err := s.conn.SetOpacity(s.win.Id, opacity); err != nil {
			s.logger.Warn("failed to set opacity", "opacity", opacity, "error", err)
		}
		s.opacity = opacity
	}
}

// Run maps the window and blocks in the X event loop until Close.
func (s *LinuxSurface) Run(h EventHandler) error {
	if s.closed {
		return fmt.Errorf("surface already closed")
	}

	xu := s.conn.XUtil
	wid := s.win.Id

	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		global := cover.Point{X: int(ev.RootX), Y: int(ev.RootY)}
		local := cover.Point{X: int(ev.EventX), Y: int(ev.EventY)}
		h.PointerDown(buttonFromDetail(ev.Detail), local, global, serverTime(ev.Time))
	}).Connect(xu, wid)

	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		global := cover.Point{X: int(ev.RootX), Y: int(ev.RootY)}
		// Derive local from the cached origin rather than the event, so
		// motion queued before our last move still maps to the same point.
		local := global.Sub(s.geom.Origin())
		h.PointerMove(heldFromState(ev.State), local, global)
	}).Connect(xu, wid)

	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		h.PointerUp(buttonFromDetail(ev.Detail), serverTime(ev.Time))
	}).Connect(xu, wid)

	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			h.Paint()
		}
	}).Connect(xu, wid)

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		s.syncGeometry(int(ev.Width), int(ev.Height))
	}).Connect(xu, wid)

	s.win.WMGracefulClose(func(*xwindow.Window) {
		s.logger.Debug("window manager requested close")
		s.Close()
	})

	s.win.Map()
	if s.opts.AlwaysOnTop {
		if err := s.conn.RaiseAbove(wid); err != nil {
			s.logger.Debug("failed to request always-on-top", "error", err)
		}
	}

	s.conn.EventLoop()
	return nil
}

// Disconnect closes the X connection.
func (s *LinuxSurface) Disconnect() {
	if s != nil && s.conn != nil {
		s.conn.Close()
	}
}

// syncGeometry refreshes the cached rectangle after the server (or the
// window manager) configured the window.
func (s *LinuxSurface) syncGeometry(width, height int) {
	if s.closed {
		return
	}
	x, y, w, h, err := s.conn.WindowRect(s.win.Id)
	if err != nil {
		w, h = width, height
		x, y = s.geom.X, s.geom.Y
	}

	resized := w != s.geom.Width || h != s.geom.Height
	s.geom = cover.Rect{X: x, Y: y, Width: w, Height: h}
	if resized {
		s.reshape()
	}
}

func (s *LinuxSurface) reshape() {
	if !s.shaped {
		return
	}
	err := s.conn.ShapeRoundedRect(s.win.Id, s.geom.Width, s.geom.Height, s.opts.Inset, s.opts.CornerRadius)
	if err != nil {
		s.logger.Warn("failed to shape cover window", "error", err)
	}
}

func buttonFromDetail(detail xproto.Button) cover.Button {
	switch detail {
	case xproto.ButtonIndex1:
		return cover.ButtonPrimary
	case xproto.ButtonIndex2:
		return cover.ButtonMiddle
	case xproto.ButtonIndex3:
		return cover.ButtonSecondary
	default:
		return cover.Button(0)
	}
}

func heldFromState(state uint16) cover.Buttons {
	var held cover.Buttons
	if state&xproto.KeyButMaskButton1 != 0 {
		held |= cover.HeldPrimary
	}
	if state&xproto.KeyButMaskButton2 != 0 {
		held |= cover.HeldMiddle
	}
	if state&xproto.KeyButMaskButton3 != 0 {
		held |= cover.HeldSecondary
	}
	return held
}

// serverTime turns an X timestamp (milliseconds, arbitrary epoch) into a
// time.Time. Only differences between values are meaningful.
func serverTime(t xproto.Timestamp) time.Time {
	return time.UnixMilli(int64(t))
}

// pixel packs c into a 24-bit TrueColor pixel.
func pixel(c cover.Color) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
