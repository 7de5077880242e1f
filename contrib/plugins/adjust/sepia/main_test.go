package main

import (
	"context"
	"errors"
	"testing"

	"github.com/supermueller/accoutrement-color/pkg/plugin"
)

func TestSepiaAdjust(t *testing.T) {
	p := &SepiaPlugin{}
	ctx := context.Background()

	tests := []struct {
		name string
		fn   string
		in   plugin.Colour
		args []string
		want plugin.Colour
	}{
		{name: "full sepia of white clamps", fn: "sepia", in: plugin.Colour{R: 255, G: 255, B: 255, A: 255}, want: plugin.Colour{R: 255, G: 255, B: 239, A: 255}},
		{name: "zero amount is identity", fn: "sepia", in: plugin.Colour{R: 10, G: 20, B: 30, A: 40}, args: []string{"0%"}, want: plugin.Colour{R: 10, G: 20, B: 30, A: 40}},
		{name: "black stays black", fn: "sepia", in: plugin.Colour{A: 255}, want: plugin.Colour{A: 255}},
		{name: "warm default", fn: "warm", in: plugin.Colour{R: 0, G: 100, B: 200, A: 255}, want: plugin.Colour{R: 26, G: 100, B: 180, A: 255}},
		{name: "warm fully", fn: "warm", in: plugin.Colour{R: 0, G: 100, B: 200, A: 255}, args: []string{"100"}, want: plugin.Colour{R: 255, G: 100, B: 0, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Adjust(ctx, tt.fn, tt.in, tt.args)
			if err != nil {
				t.Fatalf("Adjust() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Adjust() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSepiaErrors(t *testing.T) {
	p := &SepiaPlugin{}
	ctx := context.Background()

	if _, err := p.Adjust(ctx, "sepia", plugin.Colour{}, []string{"lots"}); !errors.Is(err, plugin.ErrInvalidArgument) {
		t.Errorf("bad amount error = %v, want ErrInvalidArgument", err)
	}
	if _, err := p.Adjust(ctx, "warm", plugin.Colour{}, []string{"1", "2"}); !errors.Is(err, plugin.ErrInvalidArgument) {
		t.Errorf("too many args error = %v, want ErrInvalidArgument", err)
	}
	if _, err := p.Adjust(ctx, "cool", plugin.Colour{}, nil); err == nil {
		t.Error("unknown function should fail")
	}
}

func TestFunctionsMatchAdjust(t *testing.T) {
	p := &SepiaPlugin{}
	for _, fn := range p.Functions() {
		if _, err := p.Adjust(context.Background(), fn.Name, plugin.Colour{A: 255}, nil); err != nil {
			t.Errorf("listed function %q fails: %v", fn.Name, err)
		}
	}
	if err := plugin.CheckCompatible(p.GetMetadata().ProtocolVersion); err != nil {
		t.Errorf("plugin protocol incompatible: %v", err)
	}
}
