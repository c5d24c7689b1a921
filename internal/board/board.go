// Package board drives a cover surface: pointer input goes to the geometry
// controller, double clicks open the color menu, and paints use the current
// color.
package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/waliboard/internal/cover"
	"github.com/1broseidon/waliboard/internal/platform"
)

// Chooser asks the user for a new color. ok is false when the user backed
// out without choosing.
type Chooser interface {
	Choose(ctx context.Context, current cover.Color) (c cover.Color, ok bool, err error)
}

// Options configures a Board.
type Options struct {
	Controller          cover.Options
	DoubleClickInterval time.Duration
	Background          cover.Color
}

// Board is the event handler behind a cover surface.
type Board struct {
	ctx        context.Context
	surface    platform.Surface
	controller *cover.Controller
	color      *cover.ColorState
	clicks     cover.ClickTracker
	chooser    Chooser
	logger     *slog.Logger

	menuPending bool
	menuOpen    bool
}

var _ platform.EventHandler = (*Board)(nil)

// New creates a board on surface. chooser may be nil, in which case double
// clicks do nothing.
func New(surface platform.Surface, chooser Chooser, opts Options, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	background := opts.Background
	if background == (cover.Color{}) {
		background = cover.DefaultBackground
	}

	return &Board{
		ctx:        context.Background(),
		surface:    surface,
		controller: cover.NewController(surface, opts.Controller),
		color:      cover.NewColorState(surface, background),
		clicks:     cover.ClickTracker{Interval: opts.DoubleClickInterval},
		chooser:    chooser,
		logger:     logger,
	}
}

// Run blocks until the surface closes. ctx bounds helper processes started
// by the color menu.
func (b *Board) Run(ctx context.Context) error {
	b.ctx = ctx
	return b.surface.Run(b)
}

// Session returns the current interaction session.
func (b *Board) Session() cover.Session {
	return b.controller.Session()
}

// Color returns the current background color.
func (b *Board) Color() cover.Color {
	return b.color.Color()
}

// SetColor changes the background color and repaints.
func (b *Board) SetColor(c cover.Color) {
	b.logger.Debug("color changed", "from", b.color.Color(), "to", c)
	b.color.Set(c)
}

// Close closes the surface.
func (b *Board) Close() {
	b.logger.Debug("closing cover")
	b.surface.Close()
}

// OpenMenu shows the color menu and applies the choice. It blocks until the
// menu is dismissed and ignores calls made while a menu is already open.
func (b *Board) OpenMenu() {
	if b.chooser == nil || b.menuOpen {
		return
	}
	b.menuOpen = true
	defer func() { b.menuOpen = false }()

	c, ok, err := b.chooser.Choose(b.ctx, b.color.Color())
	if err != nil {
		b.logger.Warn("color menu failed", "error", err)
		return
	}
	if !ok {
		return
	}
	b.SetColor(c)
}

// PointerDown implements platform.EventHandler.
func (b *Board) PointerDown(button cover.Button, local, global cover.Point, at time.Time) {
	if button == cover.ButtonPrimary && b.clicks.Press(button, global, at) {
		// The second press of a double click never starts a drag. The menu
		// waits for the release so it does not fight the implicit grab.
		b.menuPending = true
		return
	}
	if button != cover.ButtonPrimary {
		b.clicks.Reset()
	}
	b.controller.PointerDown(button, local)
}

// PointerMove implements platform.EventHandler.
func (b *Board) PointerMove(held cover.Buttons, local, global cover.Point) {
	if b.menuPending {
		return
	}
	b.controller.PointerMove(held, local, global)
}

// PointerUp implements platform.EventHandler.
func (b *Board) PointerUp(button cover.Button, at time.Time) {
	b.controller.PointerUp(button)
	if button == cover.ButtonPrimary && b.menuPending {
		b.menuPending = false
		b.OpenMenu()
	}
}

// Paint implements platform.EventHandler.
func (b *Board) Paint() {
	b.surface.Fill(b.color.Color())
}
