// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stratum-mining/sv2-wizard/cmd/sv2wizard/handlers"
	"github.com/stratum-mining/sv2-wizard/internal/logging"
)

// Root returns the root command for the sv2wizard CLI.
//
// The persistent pre-run loads an optional .env file from the working
// directory and sets up logging for every subcommand.
func Root() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "sv2wizard",
		Short:         "Generate configuration for a Stratum V2 mining stack",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handlers.SetLogger(logging.New(os.Stderr, verbose))
			return handlers.LoadEnv(handlers.EnvFile)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(Init())
	cmd.AddCommand(Render())
	cmd.AddCommand(Graph())
	cmd.AddCommand(Pools())
	cmd.AddCommand(Serve())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
