package commands

import (
	"github.com/spf13/cobra"

	"github.com/stratum-mining/sv2-wizard/cmd/sv2wizard/handlers"
)

// Render returns the command for generating a configuration from an
// answers file.
//
// Flags:
//
//	--answers, -f: Answers file (required)
//	--output, -o: Output directory
//	--zip: Write config.zip instead of loose files
//	--publish: Upload config.zip to s3://bucket/prefix
func Render() *cobra.Command {
	var opts handlers.RenderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate a configuration from an answers file",
		Long: `Generate a configuration without prompting, by replaying the actions
of a YAML answers file:

  wizard: pool-connection
  actions:
    - select: pool_sri-community
    - select: opt_client_tpl_no
    - submit:
        userIdentity: miner01
    - select: deploy_docker

The answers must lead to a result step. Warnings about placeholders that
could not be filled are printed after the files are written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Render(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Answers, "answers", "f", "", "Answers file")
	_ = cmd.MarkFlagRequired("answers")
	addOutputFlags(cmd, &opts.Output)

	return cmd
}
