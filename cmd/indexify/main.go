// Command indexify is the command line client for an indexify server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"go.uber.org/zap"

	"github.com/tensorlakeai/indexify-cli/internal/cli"
	"github.com/tensorlakeai/indexify-cli/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	rt := logging.New(os.Stderr)
	root := cli.NewRootCommand(rt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logr.NewContext(ctx, rt.Logr())

	err := root.ExecuteContext(ctx)
	if err != nil {
		// Carries the error field, so telemetry reports it.
		zap.L().Debug("command failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := rt.Shutdown(shutdownCtx); serr != nil {
		rt.Console().Debug("failed to flush logs", zap.Error(serr))
	}

	if err != nil {
		cli.RenderError(os.Stderr, err)
		return 1
	}
	return 0
}
