package palette

import (
	"fmt"
	"sort"
)

// Well-known entries consulted by contrast selection when no options are given.
const (
	ContrastLight = "contrast-light"
	ContrastDark  = "contrast-dark"
)

// Palette maps colour names to descriptions.
type Palette map[string]Description

// Lookup returns the entry for name.
func (p Palette) Lookup(name string) (Description, bool) {
	d, ok := p[name]
	return d, ok
}

// Has reports whether name is an entry.
func (p Palette) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Len returns the number of entries.
func (p Palette) Len() int {
	return len(p)
}

// Names returns entry names in sorted order.
func (p Palette) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every entry's structure.
func (p Palette) Validate() error {
	for _, name := range p.Names() {
		if err := p[name].Validate(); err != nil {
			return fmt.Errorf("color %q: %w", name, err)
		}
	}
	return nil
}

// Merge returns the key union of palettes. A key present in several palettes
// takes its value from the last one. The inputs are not modified.
func Merge(palettes ...Palette) Palette {
	size := 0
	for _, p := range palettes {
		size += len(p)
	}

	merged := make(Palette, size)
	for _, p := range palettes {
		for name, d := range p {
			merged[name] = d
		}
	}
	return merged
}

// With returns a copy of p with entries added or replaced.
func (p Palette) With(entries map[string]Description) Palette {
	return Merge(p, Palette(entries))
}
