// Package main provides the entry point for the maimp CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Execute(ctx); err != nil {
		fatal(err)
		stop()
		os.Exit(1)
	}
}
