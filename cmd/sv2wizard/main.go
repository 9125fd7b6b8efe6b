// Package main is the entry point for the sv2wizard CLI.
//
// sv2wizard walks an operator through the decisions needed to run a
// Stratum V2 mining stack and writes the configuration files for the pool,
// the job declarator server and client, and the translator proxy, together
// with instructions for launching them.
//
// Commands: init, render, graph, pools, serve.
//
// For detailed usage information, run:
//
//	sv2wizard --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stratum-mining/sv2-wizard/cmd/sv2wizard/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
