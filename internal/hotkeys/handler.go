package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/waliboard/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Actions is what the global shortcuts can trigger on a cover.
type Actions interface {
	OpenMenu()
	Close()
}

// Bindings maps key sequences (e.g. "Mod4-Shift-c") to actions. Empty
// sequences are skipped.
type Bindings struct {
	Menu  string
	Close string
}

// x11Accessor is an optional interface for surfaces that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// ErrUnsupported is returned when the surface does not expose an X11 connection.
var ErrUnsupported = errors.New("global hotkeys need an X11 surface")

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler bound to the surface's display.
func NewHandler(surface platform.Surface, logger *slog.Logger) (*Handler, error) {
	accessor, ok := surface.(x11Accessor)
	if !ok {
		return nil, ErrUnsupported
	}
	if logger == nil {
		logger = slog.Default()
	}
	xu := accessor.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:     xu,
		root:   accessor.RootWindow(),
		logger: logger,
	}, nil
}

// Register grabs every non-empty binding and routes it to actions.
func (h *Handler) Register(b Bindings, actions Actions) error {
	if b.Menu != "" {
		if err := h.RegisterFunc(b.Menu, func() {
			h.logger.Debug("menu hotkey triggered", "keys", b.Menu)
			actions.OpenMenu()
		}); err != nil {
			return fmt.Errorf("failed to register menu hotkey %q: %w", b.Menu, err)
		}
	}
	if b.Close != "" {
		if err := h.RegisterFunc(b.Close, func() {
			h.logger.Debug("close hotkey triggered", "keys", b.Close)
			actions.Close()
		}); err != nil {
			return fmt.Errorf("failed to register close hotkey %q: %w", b.Close, err)
		}
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
