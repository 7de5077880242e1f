package colour

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-3

func approx(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		name   string
		colour RGBA
		want   float64
	}{
		{name: "black", colour: Black, want: 0},
		{name: "white", colour: White, want: 1},
		{name: "red", colour: New(255, 0, 0), want: 0.2126},
		{name: "green", colour: New(0, 255, 0), want: 0.7152},
		{name: "blue", colour: New(0, 0, 255), want: 0.0722},
		{name: "dark grey", colour: New(0x33, 0x33, 0x33), want: 0.0331},
		{name: "mid grey", colour: New(0x99, 0x99, 0x99), want: 0.3185},
		{name: "alpha ignored", colour: RGBA{R: 255, G: 255, B: 255, A: 0}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Luminance(tt.colour)
			if !approx(got, tt.want) {
				t.Errorf("Luminance(%s) = %.4f, want %.4f", tt.colour.Hex(), got, tt.want)
			}
		})
	}
}

func TestLuminanceRange(t *testing.T) {
	for v := 0; v <= 255; v += 5 {
		for _, c := range []RGBA{New(uint8(v), 0, 0), New(0, uint8(v), 0), New(0, 0, uint8(v)), New(uint8(v), uint8(v), uint8(v))} {
			l := Luminance(c)
			if l < 0 || l > 1+1e-9 {
				t.Fatalf("Luminance(%s) = %f, outside [0, 1]", c.Hex(), l)
			}
			if l != Luminance(c) {
				t.Fatalf("Luminance(%s) is not deterministic", c.Hex())
			}
		}
	}
}

func TestContrastRatio(t *testing.T) {
	grey := MustParse("#999999")

	if got := ContrastRatio(White, Black); !approx(got, 21) {
		t.Errorf("ContrastRatio(white, black) = %.3f, want 21", got)
	}
	if got := ContrastRatio(grey, grey); !approx(got, 1) {
		t.Errorf("ContrastRatio(grey, grey) = %.3f, want 1", got)
	}
	if got := ContrastRatio(White, grey); !approx(got, 2.849) {
		t.Errorf("ContrastRatio(white, #999) = %.3f, want 2.849", got)
	}
}

func TestContrastRatioSymmetric(t *testing.T) {
	colours := []RGBA{
		White, Black,
		New(255, 0, 0), New(0, 128, 0), New(0x33, 0x66, 0x99),
		RGBA{R: 12, G: 200, B: 77, A: 40},
	}

	for _, a := range colours {
		for _, b := range colours {
			if ContrastRatio(a, b) != ContrastRatio(b, a) {
				t.Errorf("ContrastRatio(%s, %s) is not symmetric", a.Hex(), b.Hex())
			}
			if ContrastRatio(a, b) < 1 {
				t.Errorf("ContrastRatio(%s, %s) < 1", a.Hex(), b.Hex())
			}
		}
	}
}

func TestContrastRatioMixedOperands(t *testing.T) {
	// A colour and its pre-computed luminance are interchangeable.
	c := New(0x44, 0x88, 0xcc)
	lum := Lum(Luminance(c))

	want := ContrastRatio(c, White)
	if got := ContrastRatio(lum, White); got != want {
		t.Errorf("ContrastRatio(lum, white) = %f, want %f", got, want)
	}
	if got := ContrastRatio(Lum(1), lum); got != want {
		t.Errorf("ContrastRatio(1, lum) = %f, want %f", got, want)
	}
}

func TestLumValidate(t *testing.T) {
	tests := []struct {
		name    string
		lum     Lum
		wantErr bool
	}{
		{name: "zero", lum: 0},
		{name: "one", lum: 1},
		{name: "negative", lum: -0.1, wantErr: true},
		{name: "nan", lum: Lum(math.NaN()), wantErr: true},
		{name: "inf", lum: Lum(math.Inf(1)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lum.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrNotAColor) {
				t.Errorf("Validate() error = %v, want ErrNotAColor", err)
			}
		})
	}
}

func TestIsLight(t *testing.T) {
	if !IsLight(White) {
		t.Error("white should be light")
	}
	if IsLight(Black) {
		t.Error("black should not be light")
	}
	if IsLight(MustParse("#333")) {
		t.Error("#333 should not be light")
	}
}
