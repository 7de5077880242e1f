package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFunctionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "functions",
		Aliases: []string{"funcs"},
		Short:   "List the adjustment functions usable in palettes",
		Args:    cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, _ []string) error {
			defs := a.registry.Definitions()
			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), defs)
			}

			table := NewTable("NAME", "ALIASES", "USAGE", "SOURCE", "HELP")
			table.SetColumnMaxWidth(4, 48)
			for _, d := range defs {
				table.AddRow(d.Name, strings.Join(d.Aliases, ", "), d.Usage, d.Source, d.Help)
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		}),
	}
}
