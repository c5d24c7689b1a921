package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// PointerMonitor returns the monitor under the mouse cursor, clipped to the
// EWMH work area so panels and docks are excluded. Without RandR the whole
// root window is used.
func (c *Connection) PointerMonitor() (Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil || len(monitors) == 0 {
		screen := c.XUtil.Screen()
		return Monitor{
			Name:   "root",
			Width:  int(screen.WidthInPixels),
			Height: int(screen.HeightInPixels),
		}, nil
	}

	active := monitors[0]
	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		for _, mon := range monitors {
			if mon.contains(int(pointer.RootX), int(pointer.RootY)) {
				active = mon
				break
			}
		}
	}

	return clipToWorkArea(c, active), nil
}

func clipToWorkArea(c *Connection, mon Monitor) Monitor {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return mon
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(currentDesktop) < len(workArea) {
		desktopIndex = int(currentDesktop)
	}
	wa := workArea[desktopIndex]

	x1 := max(mon.X, wa.X)
	y1 := max(mon.Y, wa.Y)
	x2 := min(mon.X+mon.Width, wa.X+int(wa.Width))
	y2 := min(mon.Y+mon.Height, wa.Y+int(wa.Height))
	if x2 <= x1 || y2 <= y1 {
		return mon
	}

	mon.X, mon.Y = x1, y1
	mon.Width, mon.Height = x2-x1, y2-y1
	return mon
}

// CenteredIn returns the origin that centers a width x height window in m.
func (m Monitor) CenteredIn(width, height int) (x, y int) {
	return m.X + (m.Width-width)/2, m.Y + (m.Height-height)/2
}
