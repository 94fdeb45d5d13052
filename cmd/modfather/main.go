// # cmd/modfather/main.go
package main

import (
	"context"
	"log/slog"
	"modfather/internal/ui/cli"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("modfather failed", "error", err)
		stop()
		os.Exit(1)
	}
}
