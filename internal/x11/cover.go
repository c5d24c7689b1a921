package x11

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// CoverEventMask is the set of events the cover window listens to.
const CoverEventMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskButtonMotion |
	xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify

// CoverWindowOptions describes the initial state of a cover window.
type CoverWindowOptions struct {
	Title       string
	Class       string
	X           int
	Y           int
	Width       int
	Height      int
	MinSize     int
	Background  uint32 // 0xRRGGBB pixel on a TrueColor visual
	Opacity     float64
	AlwaysOnTop bool
}

// CreateCoverWindow creates (but does not map) a frameless top-level window.
func (c *Connection) CreateCoverWindow(opts CoverWindowOptions) (*xwindow.Window, error) {
	if opts.Width < 1 || opts.Height < 1 {
		return nil, fmt.Errorf("invalid cover size %dx%d", opts.Width, opts.Height)
	}

	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	// Value list order follows the bit positions of the mask (low → high):
	// CwBackPixel comes before CwEventMask.
	err = win.CreateChecked(
		c.Root,
		opts.X, opts.Y,
		opts.Width, opts.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		opts.Background,
		uint32(CoverEventMask),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cover window: %w", err)
	}

	xu := c.XUtil
	wid := win.Id

	// No title bar or borders.
	if err := motif.WmHintsSet(xu, wid, &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationNone,
	}); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to set motif hints: %w", err)
	}

	// Ask the WM to honour our position and never shrink below MinSize.
	hints := &icccm.NormalHints{
		Flags:  icccm.SizeHintUSPosition | icccm.SizeHintUSSize,
		X:      opts.X,
		Y:      opts.Y,
		Width:  uint(opts.Width),
		Height: uint(opts.Height),
	}
	if opts.MinSize > 0 {
		hints.Flags |= icccm.SizeHintPMinSize
		hints.MinWidth = uint(opts.MinSize)
		hints.MinHeight = uint(opts.MinSize)
	}
	_ = icccm.WmNormalHintsSet(xu, wid, hints)

	if opts.Title != "" {
		_ = icccm.WmNameSet(xu, wid, opts.Title)
		_ = ewmh.WmNameSet(xu, wid, opts.Title)
	}
	if opts.Class != "" {
		_ = icccm.WmClassSet(xu, wid, &icccm.WmClass{Instance: opts.Class, Class: opts.Class})
	}
	_ = ewmh.WmPidSet(xu, wid, uint(os.Getpid()))

	if opts.AlwaysOnTop {
		// Before mapping the property is read directly; after mapping it
		// must be requested through the WM (see RaiseAbove).
		_ = ewmh.WmStateSet(xu, wid, []string{"_NET_WM_STATE_ABOVE"})
	}

	if opts.Opacity > 0 && opts.Opacity < 1 {
		_ = ewmh.WmWindowOpacitySet(xu, wid, opts.Opacity)
	}

	return win, nil
}
