package handlers

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/util/async"
	"github.com/stratum-mining/sv2-wizard/internal/util/netutil"
)

// PoolsOptions are the flags of the pools command.
type PoolsOptions struct {
	Check   bool
	Timeout time.Duration
}

// probe dials one endpoint. Replaced in tests.
var probe = netutil.Probe

// maxProbes caps concurrent dials.
const maxProbes = 8

// endpoint is one address checked by the pools command.
type endpoint struct {
	label string
	host  string
	port  int
	err   error
}

// Pools prints the pools offered by the pool-connection wizard and,
// with Check, whether their pool and JDS ports accept connections.
// Unreachable pools are reported but do not fail the command.
func Pools(ctx context.Context, opts PoolsOptions) error {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = netutil.DefaultProbeTimeout
	}

	var endpoints []*endpoint
	for _, p := range configgen.Pools {
		endpoints = append(endpoints,
			&endpoint{label: p.ID + " pool", host: p.Address, port: p.Port},
			&endpoint{label: p.ID + " jds", host: p.JDSAddress, port: p.JDSPort},
		)
	}

	if opts.Check {
		tasks := make([]async.Task, 0, len(endpoints))
		for _, ep := range endpoints {
			tasks = append(tasks, async.Task{
				Name: ep.label,
				Func: func(ctx context.Context) error {
					ep.err = probe(ctx, ep.host, ep.port, timeout)
					return ep.err
				},
			})
		}
		if err := async.RunParallel(ctx, tasks, maxProbes); err != nil {
			logger.V(1).Info("some pools are unreachable", "error", err.Error())
		}
		if ctx.Err() != nil {
			return fmt.Errorf("pool check canceled: %w", ctx.Err())
		}
	}

	fmt.Println("Known pools:")
	for i, p := range configgen.Pools {
		fmt.Printf("\n  %s (%s)\n", p.Name, p.ID)
		printEndpoint("Pool", endpoints[2*i], opts.Check)
		printEndpoint("JDS", endpoints[2*i+1], opts.Check)
	}
	return nil
}

func printEndpoint(name string, ep *endpoint, checked bool) {
	addr := net.JoinHostPort(ep.host, strconv.Itoa(ep.port))
	switch {
	case !checked:
		fmt.Printf("    %-5s %s\n", name+":", addr)
	case ep.err != nil:
		fmt.Printf("    %-5s %s  unreachable\n", name+":", addr)
	default:
		fmt.Printf("    %-5s %s  ok\n", name+":", addr)
	}
}
