package colormenu

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/1broseidon/waliboard/internal/cover"
	"golang.org/x/image/vector"
)

// IconSize is the edge length of menu icons in pixels.
const IconSize = 24

var (
	swatchOutline = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	pickerStroke  = color.NRGBA{A: 0xff}
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// addCircle appends a closed circle to z. Clockwise circles add coverage,
// counter-clockwise ones cut a hole out of an enclosing clockwise path.
func addCircle(z *vector.Rasterizer, cx, cy, r float32, clockwise bool) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	if clockwise {
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	} else {
		z.CubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		z.CubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		z.CubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		z.CubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	}
	z.ClosePath()
}

func addRect(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
}

func fill(dst *image.RGBA, z *vector.Rasterizer, c color.Color) {
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// Swatch renders a disc of c (ignoring alpha) with a thin gray outline.
func Swatch(c cover.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	center := float32(IconSize) / 2
	r := center - 2

	z := vector.NewRasterizer(IconSize, IconSize)
	addCircle(z, center, center, r+0.5, true)
	fill(img, z, swatchOutline)

	z.Reset(IconSize, IconSize)
	addCircle(z, center, center, r-0.5, true)
	fill(img, z, c.Opaque())
	return img
}

// PickerIcon renders an empty black ring with a crosshair.
func PickerIcon() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	center := float32(IconSize) / 2
	r := center - 2

	z := vector.NewRasterizer(IconSize, IconSize)
	addCircle(z, center, center, r+1, true)
	addCircle(z, center, center, r-1, false)
	addRect(z, center-1, center-r, center+1, center+r)
	addRect(z, center-r, center-1, center+r, center+1)
	fill(img, z, pickerStroke)
	return img
}

// WriteIcon encodes img as PNG at dir/name unless the file already exists,
// and returns its path.
func WriteIcon(dir, name string, img image.Image) (string, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create icon file: %w", err)
	}
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to encode icon %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write icon %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to install icon %s: %w", name, err)
	}
	return path, nil
}

func swatchName(c cover.Color) string {
	return fmt.Sprintf("swatch-%02x%02x%02x.png", c.R, c.G, c.B)
}

const pickerIconName = "picker.png"
