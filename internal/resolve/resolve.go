// Package resolve turns palette colour descriptions into concrete colours.
//
// Resolution follows references through the palette, parses anything that is
// not a palette key as a colour value, and applies adjustment chains left to
// right. Every top-level call tracks its own set of in-progress names, so a
// Resolver can be shared between goroutines.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/supermueller/accoutrement-color/internal/adjust"
	"github.com/supermueller/accoutrement-color/internal/colour"
	"github.com/supermueller/accoutrement-color/internal/palette"
)

// ErrCyclicColorReference is matched by every *CycleError.
var ErrCyclicColorReference = errors.New("cyclic color reference")

// CycleError reports a reference chain that revisits a name being resolved.
// Chain starts and ends with the repeated name.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicColorReference, strings.Join(e.Chain, " -> "))
}

// Is reports whether target is ErrCyclicColorReference.
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicColorReference
}

// Resolver resolves descriptions against a palette using a function registry.
type Resolver struct {
	registry *adjust.Registry
	logger   hclog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used to trace resolution steps.
func WithLogger(logger hclog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver. A nil registry means the built-in functions.
func New(registry *adjust.Registry, opts ...Option) *Resolver {
	if registry == nil {
		registry = adjust.NewDefault()
	}
	r := &Resolver{
		registry: registry,
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the function registry used for adjustments.
func (r *Resolver) Registry() *adjust.Registry {
	return r.registry
}

// state is the scope of one top-level call.
type state struct {
	palette palette.Palette
	active  map[string]bool
	stack   []string
}

func newState(p palette.Palette) *state {
	return &state{palette: p, active: make(map[string]bool)}
}

func (s *state) push(name string) {
	s.active[name] = true
	s.stack = append(s.stack, name)
}

func (s *state) pop() {
	name := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	delete(s.active, name)
}

func (s *state) cycle(name string) *CycleError {
	chain := []string{name}
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i] == name {
			chain = append(append([]string{}, s.stack[i:]...), name)
			break
		}
	}
	return &CycleError{Chain: chain}
}

// Resolve returns the concrete colour described by desc.
func (r *Resolver) Resolve(desc palette.Description, p palette.Palette) (colour.RGBA, error) {
	return r.resolve(newState(p), desc)
}

// ResolveName resolves a palette key, or parses name as a colour value when
// the palette has no such key.
func (r *Resolver) ResolveName(name string, p palette.Palette) (colour.RGBA, error) {
	return r.resolveName(newState(p), name)
}

// ResolveNames resolves several names in order. Each name is a separate
// top-level call.
func (r *Resolver) ResolveNames(names []string, p palette.Palette) ([]colour.RGBA, error) {
	out := make([]colour.RGBA, 0, len(names))
	for _, name := range names {
		c, err := r.ResolveName(name, p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ResolveAll resolves every palette entry, in name order. The first failure
// is returned.
func (r *Resolver) ResolveAll(p palette.Palette) (map[string]colour.RGBA, error) {
	out := make(map[string]colour.RGBA, p.Len())
	for _, name := range p.Names() {
		c, err := r.ResolveName(name, p)
		if err != nil {
			return nil, err
		}
		out[name] = c
	}
	return out, nil
}

func (r *Resolver) resolve(s *state, d palette.Description) (colour.RGBA, error) {
	if err := d.Validate(); err != nil {
		return colour.RGBA{}, err
	}

	switch d.Kind() {
	case palette.KindLiteral:
		c, _ := d.Literal()
		return c, nil

	case palette.KindReference:
		name, _ := d.Ref()
		return r.resolveName(s, name)

	case palette.KindAdjusted:
		c, err := r.resolve(s, d.Origin())
		if err != nil {
			return colour.RGBA{}, err
		}
		for _, a := range d.Adjustments() {
			args, err := r.resolveArgs(s, a.Args)
			if err != nil {
				return colour.RGBA{}, err
			}
			out, err := r.registry.Apply(a.Func, c, args)
			if err != nil {
				return colour.RGBA{}, err
			}
			r.logger.Trace("applied adjustment", "func", a.Func, "args", args, "from", c.Hex(), "to", out.Hex())
			c = out
		}
		return c, nil
	}

	return colour.RGBA{}, fmt.Errorf("%w: %s", palette.ErrInvalidColorDescription, d.Kind())
}

func (r *Resolver) resolveName(s *state, name string) (colour.RGBA, error) {
	name = strings.TrimSpace(name)

	entry, ok := s.palette.Lookup(name)
	if !ok {
		return colour.Parse(name)
	}
	if s.active[name] {
		return colour.RGBA{}, s.cycle(name)
	}

	r.logger.Trace("resolving reference", "name", name, "depth", len(s.stack))

	s.push(name)
	defer s.pop()

	c, err := r.resolve(s, entry)
	if err != nil {
		var cycle *CycleError
		if errors.As(err, &cycle) {
			return colour.RGBA{}, err
		}
		return colour.RGBA{}, fmt.Errorf("color %q: %w", name, err)
	}
	return c, nil
}

// resolveArgs replaces arguments that name palette entries with the hex
// form of the resolved colour. Other arguments pass through unchanged.
func (r *Resolver) resolveArgs(s *state, args []string) ([]string, error) {
	if len(args) == 0 {
		return args, nil
	}
	out := make([]string, len(args))
	for i, arg := range args {
		if !s.palette.Has(strings.TrimSpace(arg)) {
			out[i] = arg
			continue
		}
		c, err := r.resolveName(s, arg)
		if err != nil {
			return nil, err
		}
		out[i] = c.Hex()
	}
	return out, nil
}
