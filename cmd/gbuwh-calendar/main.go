package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samwatso/gbuwh-calendar/internal/cli"
)

func main() {
	// Run-level cancellation: a shutdown signal aborts outstanding network
	// calls and skips pending write-backs, which idempotent keys make safe
	// to retry on the next run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
