package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/supermueller/accoutrement-color/internal/colour"
	"github.com/supermueller/accoutrement-color/internal/config"
)

// colourView is the printable form of a resolved colour.
type colourView struct {
	Name       string  `json:"name,omitempty"`
	Definition string  `json:"definition,omitempty"`
	Hex        string  `json:"hex"`
	RGB        string  `json:"rgb"`
	Luminance  float64 `json:"luminance"`

	colour colour.RGBA
}

func newColourView(name, definition string, c colour.RGBA) colourView {
	return colourView{
		Name:       name,
		Definition: definition,
		Hex:        c.Hex(),
		RGB:        c.String(),
		Luminance:  colour.Luminance(c),
		colour:     c,
	}
}

// formatColour renders c in the selected text format.
func (a *app) formatColour(c colour.RGBA) string {
	if a.format.String() == config.FormatRGB {
		return c.String()
	}
	return c.Hex()
}

func (a *app) jsonOutput() bool {
	return a.format.String() == config.FormatJSON
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
