// Package cli provides the command-line interface for accoutrement.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/supermueller/accoutrement-color/internal/version"
)

// NewRootCmd builds the accoutrement command tree. Each call returns an
// independent tree, so tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	a := newApp()

	root := &cobra.Command{
		Use:   "accoutrement",
		Short: "Resolve palette colours and check their contrast",
		Long: `accoutrement resolves named palette colours, including references to other
colours and chains of adjustments such as lighten or mix, and measures WCAG
contrast between them.

Palettes are YAML, TOML or JSON files mapping names to colour descriptions:

  brand: "#2b6cb0"
  link: brand
  focus: [link, {darken: 15%}]`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/accoutrement/config.yaml)")
	flags.StringArrayVarP(&a.palettes, "palette", "p", nil, "palette file to load, repeatable; later files win")
	flags.StringArrayVar(&a.sets, "set", nil, "define or override a palette entry as name=expression, repeatable")
	flags.StringArrayVar(&a.plugins, "plugin", nil, "adjustment plugin binary to load, repeatable")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.VarP(a.format, "format", "f", "output format ("+a.format.usage()+")")
	flags.Var(a.preview, "preview", "colour swatches ("+a.preview.usage()+")")

	root.SetVersionTemplate(version.Get().String() + "\n")

	root.AddCommand(
		newResolveCmd(a),
		newPaletteCmd(a),
		newLuminanceCmd(a),
		newRatioCmd(a),
		newContrastCmd(a),
		newContrastedCmd(a),
		newFunctionsCmd(a),
		newVersionCmd(),
	)

	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
