package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/waliboard/internal/board"
	"github.com/1broseidon/waliboard/internal/colormenu"
	"github.com/1broseidon/waliboard/internal/colorpick"
	"github.com/1broseidon/waliboard/internal/config"
	"github.com/1broseidon/waliboard/internal/cover"
	"github.com/1broseidon/waliboard/internal/hotkeys"
	"github.com/1broseidon/waliboard/internal/palette"
	"github.com/1broseidon/waliboard/internal/platform"
	"github.com/1broseidon/waliboard/internal/runtimepath"
	"github.com/1broseidon/waliboard/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runCover(nil))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCover(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "pick":
		os.Exit(runPick(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		if len(os.Args[1]) > 0 && os.Args[1][0] == '-' {
			// Flags without a command start the cover.
			os.Exit(runCover(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: waliboard [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Show a cover panel (default)")
	fmt.Fprintln(w, "  pick                Pick a color in the terminal and print it")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config path         Print the config file location")
	fmt.Fprintln(w, "  config init         Write a config file interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Cover controls:")
	fmt.Fprintln(w, "  drag                Move the cover")
	fmt.Fprintln(w, "  drag a corner       Resize")
	fmt.Fprintln(w, "  double click        Open the color menu")
	fmt.Fprintln(w, "  right click         Close")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'waliboard <command> --help' for command-specific options.")
}

// coverFlags are the command line overrides for a single cover.
type coverFlags struct {
	path     string
	color    string
	x, y     int
	width    int
	height   int
	logLevel string
	set      map[string]bool
}

func parseCoverFlags(args []string, stderr io.Writer) (*coverFlags, error) {
	f := &coverFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.path, "path", "", "Config file path (default: ~/.config/waliboard/config.yaml)")
	fs.StringVar(&f.color, "color", "", "Initial color (#rrggbb, #rrggbbaa, rgba(r,g,b,a))")
	fs.IntVar(&f.x, "x", 0, "Left edge in screen pixels (needs -y)")
	fs.IntVar(&f.y, "y", 0, "Top edge in screen pixels (needs -x)")
	fs.IntVar(&f.width, "width", 0, "Initial width in pixels")
	fs.IntVar(&f.height, "height", 0, "Initial height in pixels")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warning or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: waliboard run [options]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Show a frameless always-on-top cover panel.")
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply layers the flags over cfg and revalidates it.
func (f *coverFlags) apply(cfg *config.Config) error {
	if f.set["color"] {
		cfg.Background = f.color
	}
	if f.set["width"] {
		cfg.Width = f.width
	}
	if f.set["height"] {
		cfg.Height = f.height
	}
	if f.set["x"] != f.set["y"] {
		return fmt.Errorf("-x and -y must be given together")
	}
	if f.set["x"] {
		x, y := f.x, f.y
		cfg.X, cfg.Y = &x, &y
	}
	if f.set["log-level"] {
		cfg.LogLevel = f.logLevel
	}
	return cfg.Validate()
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

func runCover(args []string) int {
	flags, err := parseCoverFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	res, err := loadConfig(flags.path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if err := flags.apply(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	if res.Path != "" {
		logger.Debug("configuration loaded", "path", res.Path, "files", len(res.Files))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	presets := cfg.PresetColors()
	menu := colormenu.New(newPaletteBackend(cfg, logger), colormenu.Options{
		Presets: presets,
		Picker:  newPicker(cfg, presets, logger),
		IconDir: iconDir(logger),
		Logger:  logger,
	})

	bounds, centered := cfg.Bounds()
	surface, err := platform.NewLinuxSurface(platform.SurfaceOptions{
		Title:        "WaliBoard",
		Class:        "waliboard",
		Display:      cfg.Display,
		Bounds:       bounds,
		Centered:     centered,
		MinSize:      cfg.MinSize,
		Inset:        cfg.Inset,
		CornerRadius: cfg.CornerRadius,
		Background:   cfg.BackgroundColor(),
		Opacity:      cfg.Opacity,
		AlwaysOnTop:  cfg.AlwaysOnTop,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create cover: %v", err)
	}
	defer surface.Disconnect()

	b := board.New(surface, menu, board.Options{
		Controller: cover.Options{
			CornerSize: cfg.CornerSize,
			MinSize:    cfg.MinSize,
		},
		DoubleClickInterval: cfg.DoubleClickInterval(),
		Background:          cfg.BackgroundColor(),
	}, logger)

	if cfg.MenuHotkey != "" || cfg.CloseHotkey != "" {
		registerHotkeys(surface, b, cfg, logger)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			surface.Disconnect()
			os.Exit(0)
		case <-done:
		}
	}()

	logger.Info("cover shown",
		"width", bounds.Width, "height", bounds.Height,
		"centered", centered, "color", cfg.BackgroundColor().Hex())
	if err := b.Run(ctx); err != nil {
		logger.Error("cover failed", "error", err)
		return 1
	}
	return 0
}

// newPaletteBackend returns nil when no launcher is usable; the menu then
// falls back to the color picker alone.
func newPaletteBackend(cfg *config.Config, logger *slog.Logger) palette.Backend {
	backend, err := palette.New(palette.Options{
		Name:          cfg.PaletteBackend,
		FuzzyMatching: cfg.PaletteFuzzyMatching,
	})
	if err != nil {
		logger.Warn("color menu unavailable", "error", err)
		return nil
	}
	logger.Debug("palette backend selected", "backend", backend.Name())
	return backend
}

func newPicker(cfg *config.Config, presets []cover.Preset, logger *slog.Logger) colorpick.Picker {
	picker, err := colorpick.New(cfg.ColorPicker, presets)
	if err != nil {
		logger.Warn("color picker unavailable", "error", err)
		return nil
	}
	logger.Debug("color picker selected", "picker", picker.Name())
	return picker
}

func iconDir(logger *slog.Logger) string {
	dir, err := runtimepath.IconDir()
	if err != nil {
		logger.Warn("menu icons disabled", "error", err)
		return ""
	}
	return dir
}

func registerHotkeys(surface platform.Surface, b *board.Board, cfg *config.Config, logger *slog.Logger) {
	h, err := hotkeys.NewHandler(surface, logger)
	if err != nil {
		logger.Warn("hotkeys unavailable", "error", err)
		return
	}
	bindings := hotkeys.Bindings{Menu: cfg.MenuHotkey, Close: cfg.CloseHotkey}
	if err := h.Register(bindings, b); err != nil {
		logger.Warn("failed to register hotkeys", "error", err)
		return
	}
	logger.Info("hotkeys registered", "menu", cfg.MenuHotkey, "close", cfg.CloseHotkey)
}

func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/waliboard/config.yaml)")
	initial := fs.String("color", "", "Starting color (default: configured background)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: waliboard pick [--path PATH] [--color COLOR]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Pick a color in the terminal and print it as hex on stdout.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keys:")
		fmt.Fprintln(os.Stderr, "  ↑/↓, Tab        Select channel")
		fmt.Fprintln(os.Stderr, "  ←/→, h/l        Adjust by 1")
		fmt.Fprintln(os.Stderr, "  Shift+←/→, H/L  Adjust by 16")
		fmt.Fprintln(os.Stderr, "  1-9, [ ]        Presets")
		fmt.Fprintln(os.Stderr, "  r               Reset")
		fmt.Fprintln(os.Stderr, "  Enter           Accept")
		fmt.Fprintln(os.Stderr, "  Esc, q          Cancel")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	start := res.Config.BackgroundColor()
	if *initial != "" {
		start, err = cover.ParseColor(*initial)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The picker draws on stderr so stdout carries only the result.
	c, err := tui.PickColor(ctx, start, res.Config.PresetColors(), os.Stdin, os.Stderr)
	if err != nil {
		if errors.Is(err, tui.ErrCancelled) {
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(c.Hex())
	return 0
}
