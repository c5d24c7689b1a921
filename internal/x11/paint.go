package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
)

// SetBackground changes the window's background pixel. The new color shows
// up on the next clear or expose.
func (c *Connection) SetBackground(windowID xproto.Window, pixel uint32) {
	xproto.ChangeWindowAttributes(
		c.XUtil.Conn(),
		windowID,
		xproto.CwBackPixel,
		[]uint32{pixel},
	)
}

// Clear fills the whole window with its background pixel.
func (c *Connection) Clear(windowID xproto.Window) {
	xproto.ClearArea(c.XUtil.Conn(), false, windowID, 0, 0, 0, 0)
}

// RequestExpose clears the window and asks the server for an Expose event,
// so painting happens from the event loop rather than the caller.
func (c *Connection) RequestExpose(windowID xproto.Window) {
	xproto.ClearArea(c.XUtil.Conn(), true, windowID, 0, 0, 0, 0)
}

// SetOpacity sets _NET_WM_WINDOW_OPACITY. A value of 1 or more removes the
// property so compositors treat the window as opaque.
func (c *Connection) SetOpacity(windowID xproto.Window, opacity float64) error {
	if opacity >= 1 {
		atom, err := xprop.Atm(c.XUtil, "_NET_WM_WINDOW_OPACITY")
		if err != nil {
			return err
		}
		return xproto.DeletePropertyChecked(c.XUtil.Conn(), windowID, atom).Check()
	}
	return ewmh.WmWindowOpacitySet(c.XUtil, windowID, max(opacity, 0))
}

