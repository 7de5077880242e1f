// Package contrast measures WCAG contrast between palette colours and picks
// accessible foreground and background pairings.
//
// Every entry point resolves its descriptions through a resolve.Resolver
// first; the measurement itself happens on concrete colours in package
// colour.
package contrast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/supermueller/accoutrement-color/internal/colour"
	"github.com/supermueller/accoutrement-color/internal/palette"
	"github.com/supermueller/accoutrement-color/internal/resolve"
)

// Operand is one side of a contrast measurement: a colour description or a
// pre-computed relative luminance.
type Operand struct {
	desc  palette.Description
	lum   colour.Lum
	isLum bool
}

// Of returns an operand for a colour description.
func Of(desc palette.Description) Operand {
	return Operand{desc: desc}
}

// Named returns an operand for a palette key or colour value.
func Named(name string) Operand {
	return Of(palette.Ref(name))
}

// FromLuminance returns an operand for a relative luminance.
func FromLuminance(v float64) Operand {
	return Operand{lum: colour.Lum(v), isLum: true}
}

// ParseOperand reads a CLI operand. A bare number is a luminance; anything
// else is a colour expression.
func ParseOperand(s string) (Operand, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return FromLuminance(v), nil
	}
	desc, err := palette.ParseExpression(s)
	if err != nil {
		return Operand{}, err
	}
	return Of(desc), nil
}

// IsLuminance reports whether the operand holds a luminance value.
func (o Operand) IsLuminance() bool {
	return o.isLum
}

func (o Operand) String() string {
	if o.isLum {
		return strconv.FormatFloat(float64(o.lum), 'g', -1, 64)
	}
	return o.desc.String()
}

// Pair is a background with the foreground chosen for it.
type Pair struct {
	Background colour.RGBA `json:"background"`
	Foreground colour.RGBA `json:"foreground"`
	Ratio      float64     `json:"ratio"`
}

// Engine runs contrast operations against a palette.
type Engine struct {
	resolver *resolve.Resolver
}

// NewEngine creates an Engine. A nil resolver uses the built-in functions.
func NewEngine(r *resolve.Resolver) *Engine {
	if r == nil {
		r = resolve.New(nil)
	}
	return &Engine{resolver: r}
}

// Resolver returns the resolver the engine uses.
func (e *Engine) Resolver() *resolve.Resolver {
	return e.resolver
}

func (e *Engine) luminant(op Operand, p palette.Palette) (colour.Luminant, error) {
	if op.isLum {
		if err := op.lum.Validate(); err != nil {
			return nil, err
		}
		return op.lum, nil
	}
	c, err := e.resolver.Resolve(op.desc, p)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Luminance returns the relative luminance of an operand.
func (e *Engine) Luminance(op Operand, p palette.Palette) (float64, error) {
	l, err := e.luminant(op, p)
	if err != nil {
		return 0, err
	}
	return l.RelativeLuminance(), nil
}

// Ratio measures the contrast between a and b and checks it against req.
// The ratio is always reported; Result.Passes is false when a requirement
// is set and not met.
func (e *Engine) Ratio(a, b Operand, req colour.Requirement, p palette.Palette) (colour.Result, error) {
	la, err := e.luminant(a, p)
	if err != nil {
		return colour.Result{}, err
	}
	lb, err := e.luminant(b, p)
	if err != nil {
		return colour.Result{}, err
	}
	return colour.Check(la, lb, req), nil
}

// DefaultOptions returns the palette's contrast-light and contrast-dark
// entries, falling back to white and black.
func DefaultOptions(p palette.Palette) []palette.Description {
	light, ok := p.Lookup(palette.ContrastLight)
	if !ok {
		light = palette.Literal(colour.White)
	}
	dark, ok := p.Lookup(palette.ContrastDark)
	if !ok {
		dark = palette.Literal(colour.Black)
	}
	return []palette.Description{light, dark}
}

// Select returns the option with the highest contrast against subject.
// No options means DefaultOptions; a single option is an error. Exact ties
// go to the earliest option.
func (e *Engine) Select(subject palette.Description, options []palette.Description, p palette.Palette) (colour.RGBA, error) {
	c, _, err := e.selectBest(subject, options, p)
	return c, err
}

// Contrasted resolves background and pairs it with the best foreground
// among options.
func (e *Engine) Contrasted(background palette.Description, options []palette.Description, p palette.Palette) (Pair, error) {
	bg, err := e.resolver.Resolve(background, p)
	if err != nil {
		return Pair{}, err
	}
	fg, ratio, err := e.selectBest(palette.Literal(bg), options, p)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Background: bg, Foreground: fg, Ratio: ratio}, nil
}

func (e *Engine) selectBest(subject palette.Description, options []palette.Description, p palette.Palette) (colour.RGBA, float64, error) {
	if len(options) == 0 {
		options = DefaultOptions(p)
	}
	if len(options) < colour.MinContrastOptions {
		return colour.RGBA{}, 0, fmt.Errorf("%w: got %d, need at least %d",
			colour.ErrInsufficientContrastOptions, len(options), colour.MinContrastOptions)
	}

	s, err := e.resolver.Resolve(subject, p)
	if err != nil {
		return colour.RGBA{}, 0, err
	}

	candidates := make([]colour.RGBA, len(options))
	for i, opt := range options {
		c, err := e.resolver.Resolve(opt, p)
		if err != nil {
			return colour.RGBA{}, 0, fmt.Errorf("contrast option %d: %w", i+1, err)
		}
		candidates[i] = c
	}

	idx, ratio, err := colour.SelectBest(s, candidates)
	if err != nil {
		return colour.RGBA{}, 0, err
	}
	return candidates[idx], ratio, nil
}
