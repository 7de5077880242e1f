// Package palette defines colour descriptions and the palettes that name them.
//
// A Description is the raw, possibly symbolic form of a colour: a literal
// value, a reference to another palette entry (or a colour expression when
// the name is absent), or an origin followed by an ordered chain of
// adjustments. Palettes are plain maps owned by the caller and are never
// mutated by resolution.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/supermueller/accoutrement-color/internal/colour"
)

// ErrInvalidColorDescription is returned for malformed descriptions.
var ErrInvalidColorDescription = errors.New("invalid color description")

// Kind identifies the variant held by a Description.
type Kind int

const (
	KindInvalid Kind = iota
	KindLiteral
	KindReference
	KindAdjusted
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindReference:
		return "reference"
	case KindAdjusted:
		return "adjusted"
	default:
		return "invalid"
	}
}

// Adjustment is one step of an adjustment chain: a registry function name
// and its arguments, in order.
type Adjustment struct {
	Func string   `json:"func"`
	Args []string `json:"args,omitempty"`
}

// String renders the adjustment as "name(arg, arg)".
func (a Adjustment) String() string {
	return fmt.Sprintf("%s(%s)", a.Func, strings.Join(a.Args, ", "))
}

// Description is a colour before resolution. The zero value is invalid.
type Description struct {
	kind        Kind
	literal     colour.RGBA
	ref         string
	origin      *Description
	adjustments []Adjustment
}

// Literal describes a concrete colour.
func Literal(c colour.RGBA) Description {
	return Description{kind: KindLiteral, literal: c}
}

// Ref describes a palette entry by name, or a colour expression such as
// "#ff0000" or "rebeccapurple" when no entry has that name.
func Ref(name string) Description {
	return Description{kind: KindReference, ref: strings.TrimSpace(name)}
}

// Adjusted describes origin transformed by adjustments, applied left to right.
// The adjustments slice is copied.
func Adjusted(origin Description, adjustments []Adjustment) Description {
	o := origin
	adj := make([]Adjustment, len(adjustments))
	for i, a := range adjustments {
		adj[i] = Adjustment{Func: a.Func, Args: append([]string(nil), a.Args...)}
	}
	return Description{kind: KindAdjusted, origin: &o, adjustments: adj}
}

// Kind returns the variant held by d.
func (d Description) Kind() Kind {
	return d.kind
}

// Literal returns the concrete colour of a literal description.
func (d Description) Literal() (colour.RGBA, bool) {
	return d.literal, d.kind == KindLiteral
}

// Ref returns the referenced name of a reference description.
func (d Description) Ref() (string, bool) {
	return d.ref, d.kind == KindReference
}

// Origin returns the origin of an adjusted description, or d itself otherwise.
func (d Description) Origin() Description {
	if d.kind == KindAdjusted && d.origin != nil {
		return *d.origin
	}
	return d
}

// Adjustments returns a copy of the adjustment chain (empty unless adjusted).
func (d Description) Adjustments() []Adjustment {
	if d.kind != KindAdjusted {
		return nil
	}
	out := make([]Adjustment, len(d.adjustments))
	copy(out, d.adjustments)
	return out
}

// Validate checks the structure of d, recursing into origins.
func (d Description) Validate() error {
	switch d.kind {
	case KindLiteral:
		return nil
	case KindReference:
		if d.ref == "" {
			return fmt.Errorf("%w: empty reference", ErrInvalidColorDescription)
		}
		return nil
	case KindAdjusted:
		if d.origin == nil {
			return fmt.Errorf("%w: adjustments without an origin", ErrInvalidColorDescription)
		}
		if err := d.origin.Validate(); err != nil {
			return err
		}
		for i, a := range d.adjustments {
			if strings.TrimSpace(a.Func) == "" {
				return fmt.Errorf("%w: adjustment %d has no function name", ErrInvalidColorDescription, i)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: empty description", ErrInvalidColorDescription)
	}
}

// String renders d in the palette file list form.
func (d Description) String() string {
	switch d.kind {
	case KindLiteral:
		return d.literal.Hex()
	case KindReference:
		return d.ref
	case KindAdjusted:
		parts := []string{d.Origin().String()}
		for _, a := range d.adjustments {
			parts = append(parts, a.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<invalid>"
	}
}
