package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/supermueller/accoutrement-color/internal/colour"
	"github.com/supermueller/accoutrement-color/internal/palette"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <color>...",
		Short: "Resolve colours to concrete values",
		Long: `Resolve palette names, colour values or adjustment lists to concrete colours.

Examples:
  accoutrement resolve -p palette.yaml focus
  accoutrement resolve -p palette.yaml '[brand, {lighten: 10%}]'
  accoutrement resolve '[#336699, {mix: [white, 25%]}]' rebeccapurple`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			views := make([]colourView, 0, len(args))
			for _, arg := range args {
				desc, err := palette.ParseExpression(arg)
				if err != nil {
					return err
				}
				c, err := a.resolver.Resolve(desc, a.palette)
				if err != nil {
					return err
				}
				views = append(views, newColourView(arg, desc.String(), c))
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				if len(views) == 1 {
					return writeJSON(out, views[0])
				}
				return writeJSON(out, views)
			}
			if len(views) == 1 {
				a.printColour(out, views[0].colour)
				return nil
			}
			a.printColourTable(out, views, false)
			return nil
		}),
	}
}

func newPaletteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "palette [name]...",
		Short: "Resolve and list palette entries",
		Long: `Resolve every entry of the loaded palettes, or only the named ones, and print
them sorted by name with their luminance and definition.`,
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = a.palette.Names()
			}
			if len(names) == 0 {
				return fmt.Errorf("palette is empty: load one with --palette or the config file")
			}
			for _, name := range names {
				if !a.palette.Has(name) {
					return fmt.Errorf("%q is not in the palette", name)
				}
			}

			colours, err := a.resolver.ResolveNames(names, a.palette)
			if err != nil {
				return err
			}

			views := make([]colourView, len(names))
			for i, name := range names {
				desc, _ := a.palette.Lookup(name)
				views[i] = newColourView(name, desc.String(), colours[i])
			}

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), views)
			}
			a.printColourTable(cmd.OutOrStdout(), views, true)
			return nil
		}),
	}
}

// printColour writes a single formatted colour, preceded by a swatch when
// previews are on.
func (a *app) printColour(w io.Writer, c colour.RGBA) {
	if a.previewEnabled(w) {
		fmt.Fprintln(w, a.swatch(a.renderer(w), c, "   "), a.formatColour(c))
		return
	}
	fmt.Fprintln(w, a.formatColour(c))
}

func (a *app) printColourTable(w io.Writer, views []colourView, withDefinition bool) {
	preview := a.previewEnabled(w)
	headers := []string{"NAME", "VALUE", "LUMINANCE"}
	if withDefinition {
		headers = append(headers, "DEFINITION")
	}
	if preview {
		headers = append([]string{""}, headers...)
	}

	table := NewTable(headers...)
	r := a.renderer(w)
	for _, v := range views {
		row := []string{v.Name, a.formatColour(v.colour), fmt.Sprintf("%.4f", v.Luminance)}
		if withDefinition {
			row = append(row, v.Definition)
		}
		if preview {
			row = append([]string{a.swatch(r, v.colour, "   ")}, row...)
		}
		table.AddRow(row...)
	}
	fmt.Fprint(w, table.Render())
}
