package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/supermueller/accoutrement-color/internal/colour"
	"github.com/supermueller/accoutrement-color/internal/contrast"
	"github.com/supermueller/accoutrement-color/internal/palette"
)

// errRequirementNotMet is returned by ratio when a --require check fails.
var errRequirementNotMet = errors.New("contrast requirement not met")

func newLuminanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "luminance <color>...",
		Short: "Print the WCAG relative luminance of colours",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			type row struct {
				Color     string  `json:"color"`
				Luminance float64 `json:"luminance"`
			}
			rows := make([]row, 0, len(args))
			for _, arg := range args {
				op, err := contrast.ParseOperand(arg)
				if err != nil {
					return err
				}
				lum, err := a.engine.Luminance(op, a.palette)
				if err != nil {
					return err
				}
				rows = append(rows, row{Color: arg, Luminance: lum})
			}

			out := cmd.OutOrStdout()
			switch {
			case a.jsonOutput():
				return writeJSON(out, rows)
			case len(rows) == 1:
				fmt.Fprintf(out, "%.4f\n", rows[0].Luminance)
			default:
				table := NewTable("COLOR", "LUMINANCE")
				for _, r := range rows {
					table.AddRow(r.Color, fmt.Sprintf("%.4f", r.Luminance))
				}
				fmt.Fprint(out, table.Render())
			}
			return nil
		}),
	}
}

func newRatioCmd(a *app) *cobra.Command {
	var require string
	cmd := &cobra.Command{
		Use:   "ratio <color> <color>",
		Short: "Print the WCAG contrast ratio between two colours",
		Long: `Print the WCAG contrast ratio between two colours. Either side may be a
palette name, a colour value, an adjustment list or a relative luminance.

With --require the ratio is checked against AA-large (3), AA (4.5), AAA (7)
or a numeric minimum, and the command fails when it falls short.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("require") {
				require = a.cfg.Require
			}
			req, err := colour.ParseRequirement(require)
			if err != nil {
				return err
			}

			ops := make([]contrast.Operand, 2)
			for i, arg := range args {
				if ops[i], err = contrast.ParseOperand(arg); err != nil {
					return err
				}
			}

			res, err := a.engine.Ratio(ops[0], ops[1], req, a.palette)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				line := fmt.Sprintf("%.2f", res.Ratio)
				if req.IsSet() {
					verdict := "passes"
					if !res.Passes {
						verdict = "fails"
					}
					line = fmt.Sprintf("%s %s %s (minimum %g)", line, verdict, res.Required, res.Minimum)
				}
				fmt.Fprintln(out, line)
			}

			if !res.Passes {
				return fmt.Errorf("%w: %.2f < %g", errRequirementNotMet, res.Ratio, res.Minimum)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&require, "require", "", "minimum contrast: AA-large, AA, AAA or a number (default from config)")
	return cmd
}

func newContrastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <color> [option]...",
		Short: "Pick the option with the highest contrast against a colour",
		Long: `Pick the option with the highest contrast against a colour. With no options
the palette's contrast-light and contrast-dark entries are used, falling back
to white and black. A single option is an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			subject, options, err := parseSubjectAndOptions(args)
			if err != nil {
				return err
			}
			c, err := a.engine.Select(subject, options, a.palette)
			if err != nil {
				return err
			}

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), newColourView("", "", c))
			}
			a.printColour(cmd.OutOrStdout(), c)
			return nil
		}),
	}
}

func newContrastedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contrasted <background> [option]...",
		Short: "Pair a background with its most readable foreground",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			bg, options, err := parseSubjectAndOptions(args)
			if err != nil {
				return err
			}
			pair, err := a.engine.Contrasted(bg, options, a.palette)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				return writeJSON(out, map[string]any{
					"background": newColourView("", "", pair.Background),
					"foreground": newColourView("", "", pair.Foreground),
					"ratio":      pair.Ratio,
				})
			}

			line := fmt.Sprintf("background %s  color %s  ratio %.2f",
				a.formatColour(pair.Background), a.formatColour(pair.Foreground), pair.Ratio)
			if a.previewEnabled(out) {
				sample := a.renderer(out).NewStyle().
					Background(lipgloss.Color(colour.New(pair.Background.R, pair.Background.G, pair.Background.B).Hex())).
					Foreground(lipgloss.Color(colour.New(pair.Foreground.R, pair.Foreground.G, pair.Foreground.B).Hex())).
					Padding(0, 1).
					Render("Aa")
				line = sample + " " + line
			}
			fmt.Fprintln(out, line)
			return nil
		}),
	}
}

func parseSubjectAndOptions(args []string) (palette.Description, []palette.Description, error) {
	subject, err := palette.ParseExpression(args[0])
	if err != nil {
		return palette.Description{}, nil, err
	}
	options := make([]palette.Description, 0, len(args)-1)
	for _, arg := range args[1:] {
		opt, err := palette.ParseExpression(arg)
		if err != nil {
			return palette.Description{}, nil, err
		}
		options = append(options, opt)
	}
	return subject, options, nil
}
