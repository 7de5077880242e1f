package adjust

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/supermueller/accoutrement-color/internal/colour"
)

// expectArgs checks that len(args) is within [minArgs, maxArgs].
func expectArgs(args []string, minArgs, maxArgs int) error {
	if len(args) < minArgs || len(args) > maxArgs {
		if minArgs == maxArgs {
			return fmt.Errorf("%w: want %d argument(s), got %d", ErrInvalidArgument, minArgs, len(args))
		}
		return fmt.Errorf("%w: want %d to %d arguments, got %d", ErrInvalidArgument, minArgs, maxArgs, len(args))
	}
	return nil
}

// Percentage parses "15%" or a unitless "15" as 0.15. Values are clamped
// to [0, 1].
func Percentage(s string) (float64, error) {
	v, err := parseFinite(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a percentage", ErrInvalidArgument, s)
	}
	return clamp01(v / 100), nil
}

// Fraction parses an alpha amount: a unitless "0.3" or a percentage "30%".
func Fraction(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		return Percentage(s)
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, s)
	}
	return clamp01(v), nil
}

// Degrees parses a hue rotation: "30", "30deg", "0.5turn" or "1rad".
func Degrees(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	scale := 1.0
	switch {
	case strings.HasSuffix(s, "deg"):
		s = strings.TrimSuffix(s, "deg")
	case strings.HasSuffix(s, "turn"):
		s = strings.TrimSuffix(s, "turn")
		scale = 360
	case strings.HasSuffix(s, "rad"):
		s = strings.TrimSuffix(s, "rad")
		scale = 180 / math.Pi
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an angle", ErrInvalidArgument, s)
	}
	return v * scale, nil
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

// Colour parses a colour argument.
func Colour(s string) (colour.RGBA, error) {
	c, err := colour.Parse(s)
	if err != nil {
		return colour.RGBA{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return c, nil
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
