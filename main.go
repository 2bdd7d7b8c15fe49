// Command phrasegen expands phrase templates into every phrase they describe.
//
// See package [github.com/ardnew/phrasegen/cli] for usage.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardnew/phrasegen/cli"
	"github.com/ardnew/phrasegen/log"
)

func main() {
	// Interrupts cancel long-running commands such as build --watch.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		log.ErrorContext(ctx, "run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
