package colour

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Standard is a named WCAG minimum contrast ratio.
type Standard struct {
	Name     string  `json:"name"`
	MinRatio float64 `json:"min_ratio"`
}

// WCAG contrast minimums.
const (
	// RatioAALarge is the AA minimum for large text (18pt, or 14pt bold).
	RatioAALarge = 3.0
	// RatioAA is the AA minimum for normal text.
	RatioAA = 4.5
	// RatioAAA is the AAA minimum for normal text.
	RatioAAA = 7.0
)

var standards = map[string]float64{
	"aa-large": RatioAALarge,
	"aa":       RatioAA,
	"aaa":      RatioAAA,
}

var standardNames = map[string]string{
	"aa-large": "AA-large",
	"aa":       "AA",
	"aaa":      "AAA",
}

// Standards returns the named thresholds, weakest first.
func Standards() []Standard {
	out := make([]Standard, 0, len(standards))
	for key, ratio := range standards {
		out = append(out, Standard{Name: standardNames[key], MinRatio: ratio})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinRatio < out[j].MinRatio })
	return out
}

// LookupStandard returns the minimum ratio for a named threshold, ignoring case.
func LookupStandard(name string) (float64, bool) {
	ratio, ok := standards[strings.ToLower(strings.TrimSpace(name))]
	return ratio, ok
}

// Requirement is an optional minimum contrast ratio.
// The zero value imposes no requirement.
type Requirement struct {
	name     string
	minRatio float64
	set      bool
}

// NoRequirement imposes no minimum.
var NoRequirement = Requirement{}

// MinRatio returns a requirement for a raw numeric minimum.
func MinRatio(ratio float64) Requirement {
	return Requirement{minRatio: ratio, set: true}
}

// ParseRequirement accepts a named threshold (AA-large, AA, AAA, any case),
// a numeric minimum such as "4.5", or "", "none" or "false" for no requirement.
// Unknown names fail with ErrUnknownContrastStandard.
func ParseRequirement(s string) (Requirement, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "", "none", "false":
		return NoRequirement, nil
	}

	if ratio, ok := LookupStandard(v); ok {
		return Requirement{name: standardNames[strings.ToLower(v)], minRatio: ratio, set: true}, nil
	}
	if ratio, err := strconv.ParseFloat(v, 64); err == nil {
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 1 {
			return NoRequirement, fmt.Errorf("%w: %q (a numeric minimum must be a finite ratio of at least 1)", ErrUnknownContrastStandard, s)
		}
		return MinRatio(ratio), nil
	}

	return NoRequirement, fmt.Errorf("%w: %q (valid: AA-large, AA, AAA or a number)", ErrUnknownContrastStandard, s)
}

// IsSet reports whether a minimum is in effect.
func (r Requirement) IsSet() bool {
	return r.set
}

// Minimum returns the minimum ratio, or 0 when none is in effect.
func (r Requirement) Minimum() float64 {
	return r.minRatio
}

// String returns the threshold name, the numeric minimum, or "none".
func (r Requirement) String() string {
	if !r.set {
		return "none"
	}
	if r.name != "" {
		return r.name
	}
	return strconv.FormatFloat(r.minRatio, 'f', -1, 64)
}

// Result is a measured contrast ratio and its verdict against a requirement.
type Result struct {
	Ratio    float64 `json:"ratio"`
	Minimum  float64 `json:"minimum,omitempty"`
	Required string  `json:"required,omitempty"`
	Passes   bool    `json:"passes"`
}

// Check measures the contrast between a and b and compares it with req.
// The ratio is always reported; Passes is false only when a minimum is in
// effect and the ratio falls below it.
func Check(a, b Luminant, req Requirement) Result {
	ratio := ContrastRatio(a, b)
	res := Result{Ratio: ratio, Passes: true}
	if req.IsSet() {
		res.Minimum = req.Minimum()
		res.Required = req.String()
		res.Passes = ratio >= req.Minimum()
	}
	return res
}
