// Package adjust provides the registry of colour adjustment functions that
// palette descriptions chain by name, and the built-in Sass-style primitives.
package adjust

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/supermueller/accoutrement-color/internal/colour"
)

var (
	// ErrUnknownAdjustmentFunction is returned when a name is not registered.
	ErrUnknownAdjustmentFunction = errors.New("unknown adjustment function")

	// ErrInvalidArgument is returned when a function receives bad arguments.
	ErrInvalidArgument = errors.New("invalid adjustment argument")
)

// Func transforms a colour. Args are the raw strings from the description.
type Func func(c colour.RGBA, args []string) (colour.RGBA, error)

// Source values for Definition.Source.
const (
	SourceBuiltin = "builtin"
)

// Definition describes a registered function.
type Definition struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Usage   string   `json:"usage"`
	Help    string   `json:"help"`
	Source  string   `json:"source"`
	Func    Func     `json:"-"`
}

// Registry maps function names to adjustment functions.
// It is safe for concurrent use; registration is expected to happen before
// resolution starts.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]*Definition
	names map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:  make(map[string]*Definition),
		names: make(map[string]*Definition),
	}
}

// NewDefault returns a registry holding the built-in functions.
func NewDefault() *Registry {
	r := NewRegistry()
	for _, def := range builtins() {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

// Normalise canonicalises a function name: case-insensitive, with "_"
// equivalent to "-".
func Normalise(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// Register adds a function under its name and aliases.
// Registering a name that is already taken is an error.
func (r *Registry) Register(def Definition) error {
	if def.Func == nil {
		return fmt.Errorf("adjustment %q has no function", def.Name)
	}
	name := Normalise(def.Name)
	if name == "" {
		return fmt.Errorf("adjustment function needs a name")
	}
	if def.Source == "" {
		def.Source = SourceBuiltin
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := []string{name}
	for _, alias := range def.Aliases {
		keys = append(keys, Normalise(alias))
	}
	for _, key := range keys {
		if existing, ok := r.names[key]; ok {
			return fmt.Errorf("adjustment %q already registered by %s (%s)", key, existing.Name, existing.Source)
		}
	}

	d := def
	d.Name = name
	r.defs[name] = &d
	for _, key := range keys {
		r.names[key] = &d
	}
	return nil
}

// Lookup returns the function registered under name or one of its aliases.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.names[Normalise(name)]
	if !ok {
		return nil, false
	}
	return def.Func, true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Apply runs the named function on c.
func (r *Registry) Apply(name string, c colour.RGBA, args []string) (colour.RGBA, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return colour.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownAdjustmentFunction, name)
	}
	out, err := fn(c, args)
	if err != nil {
		return colour.RGBA{}, fmt.Errorf("%s(%s): %w", Normalise(name), strings.Join(args, ", "), err)
	}
	return out, nil
}

// Definitions returns all registered functions sorted by name.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the primary names of all registered functions, sorted.
func (r *Registry) Names() []string {
	defs := r.Definitions()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}
