package cover

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGBA color with straight (non-premultiplied) alpha.
type Color struct {
	R, G, B, A uint8
}

// DefaultBackground is the light gray the cover starts with.
var DefaultBackground = Color{R: 245, G: 245, B: 245, A: 255}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Opaque returns c with full alpha.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not fully opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) String() string {
	return c.Hex()
}

// Alpha returns the alpha channel as a fraction in [0,1].
func (c Color) Alpha() float64 {
	return float64(c.A) / 255
}

// FromColorful converts a go-colorful color to an opaque Color.
func FromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: 255}
}

// Colorful returns the RGB part of c as a go-colorful color.
func (c Color) Colorful() colorful.Color {
	cf, _ := colorful.MakeColor(c.Opaque())
	return cf
}

// ParseColor parses #rgb, #rrggbb, #rrggbbaa, rgb(r,g,b) and rgba(r,g,b,a).
// The rgba alpha may be a fraction (0.5) or a byte value (128).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	if strings.HasPrefix(s, "rgb") {
		return parseFunctional(s)
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 6:
		cf, err := colorful.Hex("#" + expandShortHex(hex))
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return FromColorful(cf), nil
	case 8:
		cf, err := colorful.Hex("#" + hex[:6])
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		c := FromColorful(cf)
		c.A = uint8(a)
		return c, nil
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
}

func expandShortHex(hex string) string {
	if len(hex) != 3 {
		return hex
	}
	var sb strings.Builder
	for _, ch := range hex {
		sb.WriteRune(ch)
		sb.WriteRune(ch)
	}
	return sb.String()
}

func parseFunctional(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	name := strings.TrimSpace(s[:open])
	parts := strings.Split(s[open+1:len(s)-1], ",")

	want := 3
	if name == "rgba" {
		want = 4
	} else if name != "rgb" {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("invalid color %q: expected %d components", s, want)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("invalid color %q: component %d out of range", s, i+1)
		}
		channels[i] = uint8(v)
	}

	c := Color{R: channels[0], G: channels[1], B: channels[2], A: 255}
	if want == 4 {
		a, err := parseAlpha(strings.TrimSpace(parts[3]))
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c.A = a
	}
	return c, nil
}

func parseAlpha(s string) (uint8, error) {
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || f > 1 {
			return 0, fmt.Errorf("alpha %q out of range", s)
		}
		return uint8(f*255 + 0.5), nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 255 {
		return 0, fmt.Errorf("alpha %q out of range", s)
	}
	// rgba(...,1) and rgba(...,0) are fractions, not byte values.
	if v == 1 {
		return 255, nil
	}
	return uint8(v), nil
}

// ColorState holds the cover background color.
type ColorState struct {
	host  Host
	color Color
}

// NewColorState creates a color state for host starting at initial.
func NewColorState(host Host, initial Color) *ColorState {
	return &ColorState{host: host, color: initial}
}

// Color returns the current background color.
func (s *ColorState) Color() Color {
	return s.color
}

// Set stores c and queues a repaint, even when c equals the current color.
func (s *ColorState) Set(c Color) {
	s.color = c
	s.host.RequestRepaint()
}
