package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	formatText = "text"
	formatJSON = "json"

	defaultLogLevel = "warn"
)

// ErrUnknownFormat is returned for a -format value other than "text" or "json".
var ErrUnknownFormat = errors.New("unknown output format")

// Config holds command-line configuration for the lending demo.
type Config struct {
	Format               string
	LogLevel             slog.Level
	ObservabilityEnabled bool
}

// parseFlags parses args (without the program name). Errors are reported to output by the FlagSet as well.
func parseFlags(args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		format        = fs.String("format", formatText, "Output format: text or json")
		logLevel      = fs.String("log-level", defaultLogLevel, "Log level written to stderr: debug, info, warn or error")
		observability = fs.Bool("observability-enabled", false, "Export OpenTelemetry traces, metrics and logs to stderr")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Format:               strings.ToLower(*format),
		ObservabilityEnabled: *observability,
	}

	if cfg.Format != formatText && cfg.Format != formatJSON {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, *format)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}

	return cfg, nil
}

// defaultConfig is used when the flags cannot be parsed, so the scenario still runs.
func defaultConfig() Config {
	return Config{
		Format:   formatText,
		LogLevel: slog.LevelWarn,
	}
}
