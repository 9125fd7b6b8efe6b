package handlers

import (
	"context"
	"time"

	"github.com/stratum-mining/sv2-wizard/internal/server"
)

// ServeOptions are the flags of the serve command.
type ServeOptions struct {
	Addr        string
	Metrics     bool
	MaxSessions int
	SessionTTL  time.Duration
}

// runServer starts the API server. Replaced in tests.
var runServer = func(ctx context.Context, s *server.Server, addr string) error {
	return s.Run(ctx, addr)
}

// Serve runs the wizard HTTP API until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	addr := opts.Addr
	if addr == "" {
		addr = envOr(EnvAddr, server.DefaultAddr)
	}

	s, err := server.New(
		server.WithLogger(logger),
		server.WithMetrics(opts.Metrics),
		server.WithMaxSessions(opts.MaxSessions),
		server.WithSessionTTL(opts.SessionTTL),
	)
	if err != nil {
		return err
	}
	return runServer(ctx, s, addr)
}
