package commands

import (
	"github.com/spf13/cobra"

	"github.com/stratum-mining/sv2-wizard/cmd/sv2wizard/handlers"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
)

// Init returns the command for interactively generating a configuration.
//
// Flags:
//
//	--wizard, -w: Wizard to run (full-stack or pool-connection)
//	--output, -o: Output directory (default $SV2WIZARD_OUTPUT or ".")
//	--zip: Write config.zip instead of loose files
//	--publish: Upload config.zip to s3://bucket/prefix
//	--advanced, -a: Show advanced settings without asking
//	--save-answers: Write the given answers to a YAML file for "render"
func Init() *cobra.Command {
	var opts handlers.InitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively generate a mining stack configuration",
		Long: `Interactively generate the configuration of a Stratum V2 mining stack.

Two wizards are available:

  full-stack       Run your own pool, job declarator server, optional
                   job declarator client and translator proxy. Requires
                   a Bitcoin Core node.
  pool-connection  Connect your miners to an existing pool through a
                   translator proxy, optionally constructing your own
                   block templates with a job declarator client.

The generated files are written to a config/ directory below --output.
Use --zip to get a config.zip archive instead, and --publish to upload
the archive to S3 compatible object storage.

Use --save-answers to keep your answers; "sv2wizard render" replays them
without prompting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Wizard, "wizard", "w", string(deploy.FullStack), "Wizard to run (full-stack, pool-connection)")
	addOutputFlags(cmd, &opts.Output)
	cmd.Flags().BoolVarP(&opts.Advanced, "advanced", "a", false, "Show advanced settings without asking")
	cmd.Flags().StringVar(&opts.SaveAnswers, "save-answers", "", "Write the answers to a YAML file")

	return cmd
}

// addOutputFlags binds the flags shared by init and render.
func addOutputFlags(cmd *cobra.Command, opts *handlers.OutputOptions) {
	cmd.Flags().StringVarP(&opts.Dir, "output", "o", "", "Output directory (default $SV2WIZARD_OUTPUT or the current directory)")
	cmd.Flags().BoolVar(&opts.Zip, "zip", false, "Write config.zip instead of individual files")
	cmd.Flags().StringVar(&opts.Publish, "publish", "", "Upload config.zip to s3://bucket/prefix")
}
