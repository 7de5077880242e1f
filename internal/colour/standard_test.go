package colour

import (
	"errors"
	"testing"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		input   string
		wantSet bool
		wantMin float64
		wantStr string
		wantErr bool
	}{
		{input: "", wantStr: "none"},
		{input: "none", wantStr: "none"},
		{input: "false", wantStr: "none"},
		{input: "AA-large", wantSet: true, wantMin: 3, wantStr: "AA-large"},
		{input: "aa-LARGE", wantSet: true, wantMin: 3, wantStr: "AA-large"},
		{input: "AA", wantSet: true, wantMin: 4.5, wantStr: "AA"},
		{input: "aa", wantSet: true, wantMin: 4.5, wantStr: "AA"},
		{input: "AAA", wantSet: true, wantMin: 7, wantStr: "AAA"},
		{input: " aaa ", wantSet: true, wantMin: 7, wantStr: "AAA"},
		{input: "5.5", wantSet: true, wantMin: 5.5, wantStr: "5.5"},
		{input: "AAAA", wantErr: true},
		{input: "gold", wantErr: true},
		{input: "1", wantSet: true, wantMin: 1, wantStr: "1"},
		{input: "0.5", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req, err := ParseRequirement(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownContrastStandard) {
					t.Fatalf("ParseRequirement(%q) error = %v, want ErrUnknownContrastStandard", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequirement(%q) unexpected error: %v", tt.input, err)
			}
			if req.IsSet() != tt.wantSet {
				t.Errorf("IsSet() = %v, want %v", req.IsSet(), tt.wantSet)
			}
			if req.Minimum() != tt.wantMin {
				t.Errorf("Minimum() = %v, want %v", req.Minimum(), tt.wantMin)
			}
			if req.String() != tt.wantStr {
				t.Errorf("String() = %q, want %q", req.String(), tt.wantStr)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	grey := MustParse("#999999")
	aaa, _ := ParseRequirement("AAA")

	res := Check(White, grey, aaa)
	if res.Passes {
		t.Errorf("white on #999 should fail AAA, got ratio %.2f", res.Ratio)
	}
	if !approx(res.Ratio, 2.849) {
		t.Errorf("Ratio = %.3f, want 2.849", res.Ratio)
	}
	if res.Minimum != 7 || res.Required != "AAA" {
		t.Errorf("Minimum/Required = %v/%q, want 7/AAA", res.Minimum, res.Required)
	}

	res = Check(White, Black, aaa)
	if !res.Passes || !approx(res.Ratio, 21) {
		t.Errorf("white on black: passes=%v ratio=%.2f, want pass at 21", res.Passes, res.Ratio)
	}

	res = Check(White, grey, NoRequirement)
	if !res.Passes || res.Required != "" {
		t.Errorf("no requirement should always pass, got %+v", res)
	}

	res = Check(White, grey, MinRatio(2.8))
	if !res.Passes {
		t.Errorf("ratio %.3f should meet 2.8", res.Ratio)
	}
}

func TestStandards(t *testing.T) {
	got := Standards()
	want := []Standard{{"AA-large", 3}, {"AA", 4.5}, {"AAA", 7}}
	if len(got) != len(want) {
		t.Fatalf("Standards() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Standards()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSelectBest(t *testing.T) {
	dark := MustParse("#333333")

	tests := []struct {
		name       string
		subject    Luminant
		candidates []RGBA
		want       int
		wantErr    bool
	}{
		{name: "white on dark grey", subject: dark, candidates: []RGBA{White, Black}, want: 0},
		{name: "black on white", subject: White, candidates: []RGBA{White, Black}, want: 1},
		{name: "three options", subject: Black, candidates: []RGBA{MustParse("navy"), White, MustParse("#777")}, want: 1},
		{name: "tie picks first", subject: White, candidates: []RGBA{Black, New(0, 0, 0), MustParse("#000")}, want: 0},
		{name: "luminance subject", subject: Lum(0), candidates: []RGBA{dark, White}, want: 1},
		{name: "one option", subject: dark, candidates: []RGBA{White}, wantErr: true},
		{name: "no options", subject: dark, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ratio, err := SelectBest(tt.subject, tt.candidates)
			if tt.wantErr {
				if !errors.Is(err, ErrInsufficientContrastOptions) {
					t.Fatalf("SelectBest() error = %v, want ErrInsufficientContrastOptions", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectBest() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectBest() = %d, want %d", got, tt.want)
			}
			if ratio != ContrastRatio(tt.subject, tt.candidates[got]) {
				t.Errorf("SelectBest() ratio = %f, does not match winner", ratio)
			}
		})
	}
}
