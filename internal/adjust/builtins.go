package adjust

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/supermueller/accoutrement-color/internal/colour"
)

// builtins returns the Sass-compatible primitives.
func builtins() []Definition {
	return []Definition{
		{Name: "lighten", Usage: "lighten <amount%>", Help: "increase HSL lightness by amount", Func: Lighten},
		{Name: "darken", Usage: "darken <amount%>", Help: "decrease HSL lightness by amount", Func: Darken},
		{Name: "saturate", Usage: "saturate <amount%>", Help: "increase HSL saturation by amount", Func: Saturate},
		{Name: "desaturate", Usage: "desaturate <amount%>", Help: "decrease HSL saturation by amount", Func: Desaturate},
		{Name: "adjust-hue", Aliases: []string{"spin"}, Usage: "adjust-hue <degrees>", Help: "rotate the hue", Func: AdjustHue},
		{Name: "complement", Usage: "complement", Help: "rotate the hue by 180 degrees", Func: Complement},
		{Name: "grayscale", Aliases: []string{"greyscale"}, Usage: "grayscale", Help: "remove all saturation", Func: Grayscale},
		{Name: "invert", Usage: "invert [weight%=100%]", Help: "invert the channels, optionally mixed back with the original", Func: Invert},
		{Name: "mix", Usage: "mix <colour> [weight%=50%]", Help: "weighted RGB mix; weight is the share of the current colour", Func: Mix},
		{Name: "blend", Usage: "blend <colour> [weight%=50%]", Help: "perceptual mix in CIE L*a*b*; weight is the share of the current colour", Func: Blend},
		{Name: "tint", Usage: "tint <amount%>", Help: "mix with white; amount is the share of white", Func: Tint},
		{Name: "shade", Usage: "shade <amount%>", Help: "mix with black; amount is the share of black", Func: Shade},
		{Name: "opacify", Aliases: []string{"fade-in"}, Usage: "opacify <amount>", Help: "increase alpha by amount (0-1 or %)", Func: Opacify},
		{Name: "transparentize", Aliases: []string{"fade-out"}, Usage: "transparentize <amount>", Help: "decrease alpha by amount (0-1 or %)", Func: Transparentize},
		{Name: "rgba", Aliases: []string{"alpha"}, Usage: "rgba <alpha>", Help: "set alpha (0-1 or %)", Func: SetAlpha},
	}
}

// withHSL converts c to HSL, applies fn and converts back, keeping alpha.
func withHSL(c colour.RGBA, fn func(h, s, l float64) (float64, float64, float64)) colour.RGBA {
	h, s, l := c.HSL()
	out := colour.FromHSL(fn(h, s, l))
	out.A = c.A
	return out
}

func percentageFunc(op func(h, s, l, amount float64) (float64, float64, float64)) Func {
	return func(c colour.RGBA, args []string) (colour.RGBA, error) {
		if err := expectArgs(args, 1, 1); err != nil {
			return colour.RGBA{}, err
		}
		amount, err := Percentage(args[0])
		if err != nil {
			return colour.RGBA{}, err
		}
		return withHSL(c, func(h, s, l float64) (float64, float64, float64) {
			return op(h, s, l, amount)
		}), nil
	}
}

var (
	// Lighten increases HSL lightness by a percentage.
	Lighten = percentageFunc(func(h, s, l, amount float64) (float64, float64, float64) {
		return h, s, clamp01(l + amount)
	})

	// Darken decreases HSL lightness by a percentage.
	Darken = percentageFunc(func(h, s, l, amount float64) (float64, float64, float64) {
		return h, s, clamp01(l - amount)
	})

	// Saturate increases HSL saturation by a percentage.
	Saturate = percentageFunc(func(h, s, l, amount float64) (float64, float64, float64) {
		return h, clamp01(s + amount), l
	})

	// Desaturate decreases HSL saturation by a percentage.
	Desaturate = percentageFunc(func(h, s, l, amount float64) (float64, float64, float64) {
		return h, clamp01(s - amount), l
	})
)

// AdjustHue rotates the hue by a number of degrees.
func AdjustHue(c colour.RGBA, args []string) (colour.RGBA, error) {
	if err := expectArgs(args, 1, 1); err != nil {
		return colour.RGBA{}, err
	}
	deg, err := Degrees(args[0])
	if err != nil {
		return colour.RGBA{}, err
	}
	return withHSL(c, func(h, s, l float64) (float64, float64, float64) {
		return h + deg, s, l
	}), nil
}

// Complement rotates the hue by 180 degrees.
func Complement(c colour.RGBA, args []string) (colour.RGBA, error) {
	if err := expectArgs(args, 0, 0); err != nil {
		return colour.RGBA{}, err
	}
	return AdjustHue(c, []string{"180"})
}

// Grayscale removes all saturation.
func Grayscale(c colour.RGBA, args []string) (colour.RGBA, error) {
	if err := expectArgs(args, 0, 0); err != nil {
		return colour.RGBA{}, err
	}
	return withHSL(c, func(h, _, l float64) (float64, float64, float64) {
		return h, 0, l
	}), nil
}

// Invert inverts each channel. An optional weight mixes the inverse with the
// original, as Sass does.
func Invert(c colour.RGBA, args []string) (colour.RGBA, error) {
	if err := expectArgs(args, 0, 1); err != nil {
		return colour.RGBA{}, err
	}
	weight := 1.0
	if len(args) == 1 {
		w, err := Percentage(args[0])
		if err != nil {
			return colour.RGBA{}, err
		}
		weight = w
	}
	inverse := colour.RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
	return MixColours(inverse, c, weight), nil
}

// Mix mixes the current colour with another. The optional weight (default
// 50%) is the share of the current colour.
func Mix(c colour.RGBA, args []string) (colour.RGBA, error) {
	other, weight, err := colourAndWeight(args)
	if err != nil {
		return colour.RGBA{}, err
	}
	return MixColours(c, other, weight), nil
}

// Blend mixes like Mix but interpolates in CIE L*a*b*, which keeps
// perceived lightness more even than RGB averaging.
func Blend(c colour.RGBA, args []string) (colour.RGBA, error) {
	other, weight, err := colourAndWeight(args)
	if err != nil {
		return colour.RGBA{}, err
	}
	from, _ := colorful.MakeColor(colour.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.ToColor())
	to, _ := colorful.MakeColor(colour.RGBA{R: other.R, G: other.G, B: other.B, A: 255}.ToColor())

	r, g, b := from.BlendLab(to, 1-weight).Clamped().RGB255()
	alpha := c.AlphaFloat()*weight + other.AlphaFloat()*(1-weight)
	return colour.RGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}, nil
}

// Tint mixes white into the colour; the amount is the share of white.
func Tint(c colour.RGBA, args []string) (colour.RGBA, error) {
	if err := expectArgs(args, 1, 1); err != nil {
		return colour.RGBA{}, err
	}
	amount, err := Percentage(args[0])
	if err != nil {
		return colour.RGBA{}, err
	}
	return MixColours(colour.White, c, amount), nil
}

// Shade mixes black into the colour; the amount is the share of black.
func Shade(c colour.RGBA, args []string) (colour.RGBA, error) {
	if err := expectArgs(args, 1, 1); err != nil {
		return colour.RGBA{}, err
	}
	amount, err := Percentage(args[0])
	if err != nil {
		return colour.RGBA{}, err
	}
	return MixColours(colour.Black, c, amount), nil
}

func alphaFunc(op func(alpha, amount float64) float64) Func {
	return func(c colour.RGBA, args []string) (colour.RGBA, error) {
		if err := expectArgs(args, 1, 1); err != nil {
			return colour.RGBA{}, err
		}
		amount, err := Fraction(args[0])
		if err != nil {
			return colour.RGBA{}, err
		}
		return c.WithAlpha(op(c.AlphaFloat(), amount)), nil
	}
}

var (
	// Opacify increases alpha.
	Opacify = alphaFunc(func(alpha, amount float64) float64 { return alpha + amount })

	// Transparentize decreases alpha.
	Transparentize = alphaFunc(func(alpha, amount float64) float64 { return alpha - amount })

	// SetAlpha replaces alpha.
	SetAlpha = alphaFunc(func(_, amount float64) float64 { return amount })
)

func colourAndWeight(args []string) (colour.RGBA, float64, error) {
	if err := expectArgs(args, 1, 2); err != nil {
		return colour.RGBA{}, 0, err
	}
	other, err := Colour(args[0])
	if err != nil {
		return colour.RGBA{}, 0, err
	}
	weight := 0.5
	if len(args) == 2 {
		if weight, err = Percentage(args[1]); err != nil {
			return colour.RGBA{}, 0, err
		}
	}
	return other, weight, nil
}

// MixColours implements the Sass mix algorithm: weight is the share of c1,
// and the alpha difference shifts the channel weights towards the more
// opaque colour.
func MixColours(c1, c2 colour.RGBA, weight float64) colour.RGBA {
	w := 2*weight - 1
	a := c1.AlphaFloat() - c2.AlphaFloat()

	var w1 float64
	if w*a == -1 {
		w1 = (w + 1) / 2
	} else {
		w1 = ((w+a)/(1+w*a) + 1) / 2
	}
	w2 := 1 - w1

	channel := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*w1 + float64(y)*w2))
	}
	alpha := c1.AlphaFloat()*weight + c2.AlphaFloat()*(1-weight)

	return colour.RGBA{
		R: channel(c1.R, c2.R),
		G: channel(c1.G, c2.G),
		B: channel(c1.B, c2.B),
		A: uint8(math.Round(alpha * 255)),
	}
}
