package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	ColorWhite   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorRed     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	ColorGreen   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	ColorBlue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	ColorYellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	ColorCyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	ColorMagenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	ColorGray    = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseHex parses "#rrggbb" (or "#rgb") into an opaque color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b), nil
}

// MultiplyColor scales a color by intensity (for lighting), saturating at 255.
func MultiplyColor(c Color, intensity float64) Color {
	if intensity < 0 {
		intensity = 0
	}
	return Color{
		R: uint8(math.Min(255, float64(c.R)*intensity)),
		G: uint8(math.Min(255, float64(c.G)*intensity)),
		B: uint8(math.Min(255, float64(c.B)*intensity)),
		A: c.A,
	}
}

// ModulateColor modulates one color by another (texture * tint).
func ModulateColor(a, b Color) Color {
	return Color{
		R: uint8((int(a.R) * int(b.R)) / 255),
		G: uint8((int(a.G) * int(b.G)) / 255),
		B: uint8((int(a.B) * int(b.B)) / 255),
		A: uint8((int(a.A) * int(b.A)) / 255),
	}
}

// BlendColor mixes a and b in CIE-L*a*b* space; t=0 yields a, t=1 yields b.
func BlendColor(a, b Color, t float64) Color {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return RGB(r, g, bl)
}

// Luminance returns the perceptual lightness of c in [0, 1].
func Luminance(c Color) float64 {
	l, _, _ := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Lab()
	return math.Max(0, math.Min(1, l))
}
