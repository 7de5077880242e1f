package plugin

import "fmt"

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
}

// FunctionInfo describes one adjustment function offered by a plugin.
type FunctionInfo struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Usage   string   `json:"usage"` // e.g. "sepia [amount%=100%]"
	Help    string   `json:"help"`
}

// Colour is an 8-bit RGBA colour for RPC transfer.
type Colour struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Hex returns the colour as #rrggbb, or #rrggbbaa when translucent.
func (c Colour) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// AdjustRequest is the argument of the Adjust RPC.
type AdjustRequest struct {
	Name   string   `json:"name"`
	Colour Colour   `json:"colour"`
	Args   []string `json:"args,omitempty"`
}

// AdjustResponse is the reply of the Adjust RPC. Error is set when the
// function failed; InvalidArgument marks failures caused by the arguments.
type AdjustResponse struct {
	Colour          Colour `json:"colour"`
	Error           string `json:"error,omitempty"`
	InvalidArgument bool   `json:"invalid_argument,omitempty"`
}
