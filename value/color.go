package value

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color wraps go-colorful's Color so the engine's color scalar gets real
// RGB/HSL conversion and mixing arithmetic instead of hand-rolled math
// (color.mix used by gradient/ink properties, per SPEC_FULL.md's domain
// stack table).
type Color struct {
	c colorful.Color
}

// RGB builds a Color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{c: colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}}
}

// ParseColor accepts a "#rrggbb" or "#rgb" hex string.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{c: c}, nil
}

// Hex returns the "#rrggbb" representation.
func (c Color) Hex() string {
	return c.c.Hex()
}

// Mix linearly interpolates between c and o in LAB space at fraction t
// (0 == c, 1 == o), matching the "color.mix" built-in named in the domain
// stack table.
func (c Color) Mix(o Color, t float64) Color {
	return Color{c: c.c.BlendLab(o.c, t)}
}

// Luminance returns the relative luminance (ITU-R BT.709 coefficients),
// useful for show-rule recipes that pick a contrasting foreground.
func (c Color) Luminance() float64 {
	return 0.2126*c.c.R + 0.7152*c.c.G + 0.0722*c.c.B
}
