// Command demo runs a fixed lending scenario against an in-memory catalog and prints every step to stdout.
//
// Usage:
//
//	go run ./example/demo [-format text|json] [-log-level debug|info|warn|error] [-observability-enabled]
//
// Logs and, when enabled, OpenTelemetry traces, metrics and log records go to stderr.
// The exit status is always 0.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
	"github.com/AntonStoeckl/lending-catalog-go/catalog/report"
)

func main() {
	run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// run never fails the process: problems are logged to stderr and the scenario continues where it can.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		cfg = defaultConfig()
	}

	fallback := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if err != nil {
		fallback.Warn("invalid flags, using defaults", "error", err)
	}

	obsConfig, p, err := newObservabilityConfig(ctx, cfg, stderr)
	if err != nil {
		fallback.Error("failed to set up observability, continuing without it", "error", err)
	}

	if p != nil {
		defer func() {
			if shutdownErr := p.Shutdown(); shutdownErr != nil {
				fallback.Error("failed to shut down observability providers", "error", shutdownErr)
			}
		}()
	}

	printer := newPrinter(cfg.Format, stdout)

	options := append(obsConfig.options(), catalog.WithNoticeHandler(func(notice catalog.Notice) {
		if printErr := printer.Notice(notice); printErr != nil {
			fallback.Error("failed to print notice", "error", printErr)
		}
	}))

	c, err := catalog.NewCatalog(options...)
	if err != nil {
		fallback.Error("failed to create catalog", "error", err)
		return
	}

	if err := runScenario(ctx, c, printer); err != nil {
		fallback.Error("failed to print scenario", "error", err)
	}
}

func newPrinter(format string, w io.Writer) report.Printer {
	if format == formatJSON {
		return report.NewJSONPrinter(w)
	}

	return report.NewTextPrinter(w)
}
