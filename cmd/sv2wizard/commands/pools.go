package commands

import (
	"github.com/spf13/cobra"

	"github.com/stratum-mining/sv2-wizard/cmd/sv2wizard/handlers"
	"github.com/stratum-mining/sv2-wizard/internal/util/netutil"
)

// Pools returns the command that lists the known pools.
//
// Flags:
//
//	--check: Dial every pool and JDS endpoint
//	--timeout: Per endpoint dial timeout
func Pools() *cobra.Command {
	var opts handlers.PoolsOptions

	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List the pools the pool-connection wizard offers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Pools(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Check, "check", false, "Check whether each pool accepts connections")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", netutil.DefaultProbeTimeout, "Dial timeout per endpoint")

	return cmd
}
