// Package main is the entry point for the checklist CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"checklist/internal/cli"
	"checklist/internal/commands"
)

func main() {
	// Cancel on interrupt so serve and push can shut down cleanly
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
