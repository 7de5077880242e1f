// Package colour provides the concrete colour type, colour value parsing and
// the WCAG luminance and contrast calculations.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
)

// RGBA is a fully resolved colour: three 8-bit channels plus alpha.
// Alpha is carried through resolution but ignored by luminance.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Common colours.
var (
	White = RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = RGBA{R: 0, G: 0, B: 0, A: 255}
)

// New returns an opaque colour.
func New(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// FromColor converts any image/color value to RGBA, undoing alpha premultiplication.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ToColor returns the colour as a non-premultiplied image/color value.
func (c RGBA) ToColor() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Opaque reports whether the colour has full alpha.
func (c RGBA) Opaque() bool {
	return c.A == 255
}

// AlphaFloat returns alpha in the range 0.0-1.0.
func (c RGBA) AlphaFloat() float64 {
	return float64(c.A) / 255.0
}

// WithAlpha returns a copy of the colour with alpha set from a 0.0-1.0 value.
func (c RGBA) WithAlpha(alpha float64) RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(alpha*255.0 + 0.5)
	return c
}

// Hex returns "#rrggbb", or "#rrggbbaa" when the colour is translucent.
func (c RGBA) Hex() string {
	if c.Opaque() {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String returns the colour in CSS functional notation.
func (c RGBA) String() string {
	if c.Opaque() {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B,
		strconv.FormatFloat(roundTo(c.AlphaFloat(), 3), 'f', -1, 64))
}

// RelativeLuminance implements Luminant.
func (c RGBA) RelativeLuminance() float64 {
	return Luminance(c)
}

func roundTo(v float64, places int) float64 {
	p := 1.0
	for i := 0; i < places; i++ {
		p *= 10
	}
	return float64(int64(v*p+0.5)) / p
}
