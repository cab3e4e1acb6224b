package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/Sena-ops/reportconverter/internal/adapters"
	"github.com/spf13/cobra"
)

func newAnalyzersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyzers",
		Short: "Lista os analisadores suportados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIPO\tNOME\tURL")
			for _, a := range adapters.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.ToolName(), a.Name(), a.URL())
			}
			return w.Flush()
		},
	}
}
