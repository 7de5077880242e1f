package colour

import "fmt"

// MinContrastOptions is the fewest candidates a best-contrast selection accepts.
const MinContrastOptions = 2

// SelectBest returns the index and ratio of the candidate with the highest
// contrast against subject.
//
// Only raw ratios are compared, no threshold is applied. When several
// candidates reach the same maximum the earliest one wins, so the result is
// stable under input order.
func SelectBest(subject Luminant, candidates []RGBA) (int, float64, error) {
	if len(candidates) < MinContrastOptions {
		return -1, 0, fmt.Errorf("%w: got %d, need at least %d",
			ErrInsufficientContrastOptions, len(candidates), MinContrastOptions)
	}

	subjectLum := Lum(subject.RelativeLuminance())
	best := -1
	maxContrast := 0.0
	for i, c := range candidates {
		contrast := ContrastRatio(subjectLum, c)
		if best < 0 || contrast > maxContrast {
			maxContrast = contrast
			best = i
		}
	}

	return best, maxContrast, nil
}
