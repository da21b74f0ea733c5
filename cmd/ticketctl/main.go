// Package main runs the ticket ledger command-line client.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/ticketbooth/internal/cmd/ticketctl"
	"github.com/louisbranch/ticketbooth/internal/platform/config"
)

func main() {
	cfg, err := ticketctl.ParseConfig()
	if err != nil {
		config.ExitWithCode(2, "ticketctl: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ticketctl.Run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		stop()
		if errors.Is(err, ticketctl.ErrUsage) {
			config.ExitWithCode(2, "ticketctl: %v", err)
		}
		config.Exitf("ticketctl: %v", err)
	}
}
