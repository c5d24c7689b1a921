package config

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	apply(&cfg.Width, raw.Width)
	apply(&cfg.Height, raw.Height)
	if raw.X != nil {
		x := *raw.X
		cfg.X = &x
	}
	if raw.Y != nil {
		y := *raw.Y
		cfg.Y = &y
	}
	apply(&cfg.CornerSize, raw.CornerSize)
	apply(&cfg.MinSize, raw.MinSize)
	apply(&cfg.CornerRadius, raw.CornerRadius)
	apply(&cfg.Inset, raw.Inset)
	apply(&cfg.Background, raw.Background)
	apply(&cfg.Opacity, raw.Opacity)
	apply(&cfg.AlwaysOnTop, raw.AlwaysOnTop)
	apply(&cfg.DoubleClickMS, raw.DoubleClickMS)
	apply(&cfg.PaletteBackend, raw.PaletteBackend)
	apply(&cfg.PaletteFuzzyMatching, raw.PaletteFuzzyMatching)
	apply(&cfg.ColorPicker, raw.ColorPicker)
	apply(&cfg.MenuHotkey, raw.MenuHotkey)
	apply(&cfg.CloseHotkey, raw.CloseHotkey)
	apply(&cfg.Display, raw.Display)
	apply(&cfg.LogLevel, raw.LogLevel)

	if raw.Presets != nil {
		cfg.Presets = append([]Preset{}, raw.Presets...)
	}

	return cfg
}

func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
