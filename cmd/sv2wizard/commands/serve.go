package commands

import (
	"github.com/spf13/cobra"

	"github.com/stratum-mining/sv2-wizard/cmd/sv2wizard/handlers"
	"github.com/stratum-mining/sv2-wizard/internal/server"
)

// Serve returns the command that runs the wizard HTTP API.
func Serve() *cobra.Command {
	var opts handlers.ServeOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve wizard sessions over HTTP",
		Long: `Serve wizard sessions over a JSON HTTP API.

Sessions are kept in memory and expire after --session-ttl. Prometheus
metrics are exposed on /metrics unless --metrics=false.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default $SV2WIZARD_ADDR or "+server.DefaultAddr+")")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", true, "Expose Prometheus metrics on /metrics")
	cmd.Flags().IntVar(&opts.MaxSessions, "max-sessions", server.DefaultMaxSessions, "Maximum number of sessions kept in memory")
	cmd.Flags().DurationVar(&opts.SessionTTL, "session-ttl", server.DefaultSessionTTL, "How long sessions are kept")

	return cmd
}
