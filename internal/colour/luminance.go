package colour

import (
	"fmt"
	"math"
)

// Luminant is anything with a WCAG relative luminance: a concrete colour or a
// pre-computed Lum.
type Luminant interface {
	RelativeLuminance() float64
}

// Lum is a pre-computed relative luminance, usable wherever a colour is measured.
type Lum float64

// RelativeLuminance implements Luminant.
func (l Lum) RelativeLuminance() float64 {
	return float64(l)
}

// Validate rejects luminances that cannot come from a colour.
func (l Lum) Validate() error {
	v := float64(l)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: invalid luminance %v", ErrNotAColor, v)
	}
	return nil
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest). Alpha is ignored.
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGBA) float64 {
	r := linearise(float64(c.R) / 255.0)
	g := linearise(float64(c.G) / 255.0)
	b := linearise(float64(c.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// linearise applies the sRGB transfer function to a normalised channel.
func linearise(v float64) float64 {
	if v < 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours or luminances
// according to WCAG 2.0. Returns a value between 1 and 21, where 21 is maximum
// contrast (black vs white). Argument order does not matter.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(a, b Luminant) float64 {
	return ratioOf(a.RelativeLuminance(), b.RelativeLuminance())
}

func ratioOf(l1, l2 float64) float64 {
	// Ensure l1 is the lighter value.
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// IsLight reports whether text on this colour should be dark, using the
// luminance at which black and white give equal contrast.
func IsLight(c Luminant) bool {
	return c.RelativeLuminance() > 0.179
}
