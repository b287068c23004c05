package voxel

import (
	gomath "math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with channels in [0,1].
type Color struct {
	R, G, B float64
}

// White is the fallback when neither vertex nor material color exists.
var White = Color{1, 1, 1}

// FromRGB255 converts 0-255 channels to unit range.
func FromRGB255(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// FromArray builds a Color from an RGB triple.
func FromArray(rgb [3]float64) Color {
	return Color{rgb[0], rgb[1], rgb[2]}
}

// RGB255 converts to 0-255 channels with round(c*255), clamping first.
func (c Color) RGB255() (r, g, b uint8) {
	c = c.Clamp()
	return uint8(gomath.Round(c.R * 255)), uint8(gomath.Round(c.G * 255)), uint8(gomath.Round(c.B * 255))
}

// Clamp limits every channel to [0,1]. NaN becomes 0.
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(f float64) float64 {
	if gomath.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Soften rescales the color in HSL space to (h, s*0.8, l*0.8+0.2).
// It keeps parity-sampled voxels from looking oversaturated.
func (c Color) Soften() Color {
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hsl()
	out := colorful.Hsl(h, s*0.8, l*0.8+0.2).Clamped()
	return Color{out.R, out.G, out.B}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	cc := c.Clamp()
	return colorful.Color{R: cc.R, G: cc.G, B: cc.B}.Hex()
}

// ApproxEqual reports whether every channel differs by at most eps.
func (c Color) ApproxEqual(o Color, eps float64) bool {
	return gomath.Abs(c.R-o.R) <= eps && gomath.Abs(c.G-o.G) <= eps && gomath.Abs(c.B-o.B) <= eps
}
