package commands

import (
	"github.com/spf13/cobra"

	"github.com/stratum-mining/sv2-wizard/cmd/sv2wizard/handlers"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
)

// Graph returns the command that prints a wizard's step graph.
func Graph() *cobra.Command {
	var (
		wizard string
		format string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the step graph of a wizard",
		Long: `Print the steps of a wizard and the transitions between them.

Use --format yaml for a machine readable description including every
option, field and default.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Graph(wizard, format)
		},
	}

	cmd.Flags().StringVarP(&wizard, "wizard", "w", string(deploy.FullStack), "Wizard to print")
	cmd.Flags().StringVar(&format, "format", handlers.FormatText, "Output format (text, yaml)")

	return cmd
}
