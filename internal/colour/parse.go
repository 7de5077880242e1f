package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Parse parses a CSS colour value: hex (#rgb, #rgba, #rrggbb, #rrggbbaa),
// rgb()/rgba(), hsl()/hsla(), "transparent" or a CSS named colour.
// Names are case-insensitive and surrounding whitespace is ignored.
// Errors wrap ErrNotAColor.
func Parse(s string) (RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return RGBA{}, fmt.Errorf("%w: empty value", ErrNotAColor)
	}

	if v == "transparent" {
		return RGBA{}, nil
	}
	if hex, ok := namedColours[v]; ok {
		v = hex
	}

	switch {
	case strings.HasPrefix(v, "#"):
		c, ok := parseHex(v[1:])
		if !ok {
			return RGBA{}, fmt.Errorf("%w: invalid hex colour %q", ErrNotAColor, s)
		}
		return c, nil
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunc(v, s)
	case strings.HasPrefix(v, "hsl"):
		return parseHSLFunc(v, s)
	}

	return RGBA{}, fmt.Errorf("%w: %q", ErrNotAColor, s)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) RGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsColour reports whether s parses as a colour value.
func IsColour(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func parseHex(hex string) (RGBA, bool) {
	switch len(hex) {
	case 3, 4:
		expanded := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return RGBA{}, false
	}

	channels := [4]uint8{0, 0, 0, 255}
	for i := 0; i*2 < len(hex); i++ {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGBA{}, false
		}
		channels[i] = uint8(n)
	}
	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, true
}

// functionArgs splits "name(a, b, c)" or "name(a b c / d)" into its arguments.
func functionArgs(v string) (string, []string, bool) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(v[:open])
	body := v[open+1 : len(v)-1]
	body = strings.ReplaceAll(body, "/", " ")
	body = strings.ReplaceAll(body, ",", " ")
	return name, strings.Fields(body), true
}

func parseRGBFunc(v, original string) (RGBA, error) {
	name, args, ok := functionArgs(v)
	if !ok || (name != "rgb" && name != "rgba") || (len(args) != 3 && len(args) != 4) {
		return RGBA{}, fmt.Errorf("%w: invalid rgb() value %q", ErrNotAColor, original)
	}

	var c RGBA
	c.A = 255
	for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
		n, err := parseChannel(args[i])
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q: %v", ErrNotAColor, original, err)
		}
		*dst = n
	}
	if len(args) == 4 {
		a, err := parseAlpha(args[3])
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q: %v", ErrNotAColor, original, err)
		}
		c = c.WithAlpha(a)
	}
	return c, nil
}

func parseHSLFunc(v, original string) (RGBA, error) {
	name, args, ok := functionArgs(v)
	if !ok || (name != "hsl" && name != "hsla") || (len(args) != 3 && len(args) != 4) {
		return RGBA{}, fmt.Errorf("%w: invalid hsl() value %q", ErrNotAColor, original)
	}

	h, err := parseFinite(strings.TrimSuffix(args[0], "deg"))
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: invalid hue", ErrNotAColor, original)
	}
	s, err := parsePercent(args[1])
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: %v", ErrNotAColor, original, err)
	}
	l, err := parsePercent(args[2])
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: %v", ErrNotAColor, original, err)
	}

	c := FromHSL(h, s, l)
	if len(args) == 4 {
		a, err := parseAlpha(args[3])
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q: %v", ErrNotAColor, original, err)
		}
		c = c.WithAlpha(a)
	}
	return c, nil
}

// FromHSL builds an opaque colour from hue (degrees), saturation and lightness (0-1).
func FromHSL(h, s, l float64) RGBA {
	r, g, b := colorful.Hsl(normaliseHue(h), clamp01(s), clamp01(l)).Clamped().RGB255()
	return New(r, g, b)
}

// HSL returns hue (0-360), saturation (0-1) and lightness (0-1) of the colour.
func (c RGBA) HSL() (h, s, l float64) {
	cf, _ := colorful.MakeColor(RGBA{R: c.R, G: c.G, B: c.B, A: 255}.ToColor())
	return cf.Hsl()
}

func parseChannel(s string) (uint8, error) {
	if strings.HasSuffix(s, "%") {
		p, err := parsePercent(s)
		if err != nil {
			return 0, err
		}
		return uint8(p*255 + 0.5), nil
	}
	n, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("invalid channel %q", s)
	}
	if n < 0 {
		n = 0
	} else if n > 255 {
		n = 255
	}
	return uint8(n + 0.5), nil
}

func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	a, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("invalid alpha %q", s)
	}
	return clamp01(a), nil
}

func parsePercent(s string) (float64, error) {
	p, err := parseFinite(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	return clamp01(p / 100), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseFinite parses a float, rejecting NaN and infinities.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

// normaliseHue maps h into [0, 360). Non-finite hues become 0.
func normaliseHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
