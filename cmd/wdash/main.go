package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lcalzada-xor/wdash/internal/app"
	"github.com/lcalzada-xor/wdash/internal/config"
	"github.com/lcalzada-xor/wdash/internal/telemetry"
)

var version = "dev"

func main() {
	// load config
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "wdash: %v\n", err)
		os.Exit(2)
	}

	// Setup Structured Logging
	logger, closeLog := telemetry.NewLogger(telemetry.LogOptions{
		Debug:      cfg.Debug,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer closeLog.Close()
	slog.SetDefault(logger)

	// Initialize Tracing; spans are only printed in debug mode
	var traceOut io.Writer = io.Discard
	if cfg.Debug {
		traceOut = os.Stdout
	}
	shutdownTracer, err := telemetry.InitTracer(traceOut, version)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				slog.Error("Failed to shutdown tracer", "error", err)
			}
		}()
	}

	telemetry.InitMetrics()

	// Initialize Application
	application, err := app.New(cfg, version)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Root Context with cancellation on Interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("wdash starting", "version", version, "mock", cfg.MockMode, "addr", cfg.Addr)

	// Run Application
	if err := application.Run(ctx); err != nil {
		slog.Error("Application error", "error", err)
		cancel()
	}
}
