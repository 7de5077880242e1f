// sepia - Photographic Tone Adjustments (Accoutrement Adjustment Plugin)
//
// Adds palette adjustment functions for sepia toning and warming.
// Uses the go-plugin RPC protocol, so the functions run out of process.
//
// Functions:
//   sepia [amount%=100%]   Sepia tone, mixed with the original by amount
//   warm  [amount%=10%]    Push the colour towards red and away from blue
//
// Build:
//   go build -o accoutrement-sepia
//
// Usage:
//   accoutrement --plugin ./accoutrement-sepia resolve '[brand, {sepia: 60%}]'
//
// Palette:
//   photo: [brand, {sepia: 80%}, {warm: 5%}]
//
// License: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/supermueller/accoutrement-color/pkg/plugin"
)

// SepiaPlugin implements the plugin.Adjuster interface.
type SepiaPlugin struct{}

// GetMetadata returns plugin metadata.
func (p *SepiaPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            "sepia",
		Version:         "0.1.0",
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Sepia toning and warming adjustments",
	}
}

// Functions lists the provided adjustments.
func (p *SepiaPlugin) Functions() []plugin.FunctionInfo {
	return []plugin.FunctionInfo{
		{Name: "sepia", Usage: "sepia [amount%=100%]", Help: "sepia tone, mixed with the original by amount"},
		{Name: "warm", Usage: "warm [amount%=10%]", Help: "push towards red and away from blue"},
	}
}

// Adjust applies a function.
func (p *SepiaPlugin) Adjust(_ context.Context, name string, c plugin.Colour, args []string) (plugin.Colour, error) {
	switch name {
	case "sepia":
		amount, err := amountArg(args, 1)
		if err != nil {
			return plugin.Colour{}, err
		}
		return sepia(c, amount), nil
	case "warm":
		amount, err := amountArg(args, 0.1)
		if err != nil {
			return plugin.Colour{}, err
		}
		return warm(c, amount), nil
	default:
		return plugin.Colour{}, fmt.Errorf("unknown function %q", name)
	}
}

// amountArg reads an optional percentage argument.
func amountArg(args []string, def float64) (float64, error) {
	switch len(args) {
	case 0:
		return def, nil
	case 1:
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[0]), "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a percentage", plugin.ErrInvalidArgument, args[0])
		}
		return math.Max(0, math.Min(1, v/100)), nil
	default:
		return 0, fmt.Errorf("%w: want at most 1 argument, got %d", plugin.ErrInvalidArgument, len(args))
	}
}

func sepia(c plugin.Colour, amount float64) plugin.Colour {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	sr := 0.393*r + 0.769*g + 0.189*b
	sg := 0.349*r + 0.686*g + 0.168*b
	sb := 0.272*r + 0.534*g + 0.131*b
	return plugin.Colour{
		R: channel(r + (sr-r)*amount),
		G: channel(g + (sg-g)*amount),
		B: channel(b + (sb-b)*amount),
		A: c.A,
	}
}

func warm(c plugin.Colour, amount float64) plugin.Colour {
	r, b := float64(c.R), float64(c.B)
	return plugin.Colour{
		R: channel(r + (255-r)*amount),
		G: c.G,
		B: channel(b * (1 - amount)),
		A: c.A,
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

func main() {
	// Handle --plugin-info flag
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		p := &SepiaPlugin{}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(map[string]any{"info": p.GetMetadata(), "functions": p.Functions()}); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&SepiaPlugin{})
}
