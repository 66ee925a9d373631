// Package shared holds helpers common to all oanquan subcommands.
package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// SetupLogger creates the CLI logger. Debug mode lowers the level and
// adds caller reporting.
func SetupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportCaller(true)
	}
	return logger
}

// SetupSignalHandler returns a context cancelled on SIGINT/SIGTERM.
func SetupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		logger.Info("Received shutdown signal")
		cancel()
	}()

	return ctx
}
