package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/processors/minsev"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
	"github.com/AntonStoeckl/lending-catalog-go/catalog/oteladapters"
)

const (
	serviceName    = "lending-catalog-demo"
	serviceVersion = "demo"

	shutdownTimeout = 5 * time.Second
)

// ObservabilityConfig holds the observability adapters handed to the catalog.
type ObservabilityConfig struct {
	Logger           catalog.Logger
	ContextualLogger catalog.ContextualLogger
	MetricsCollector catalog.MetricsCollector
	TracingCollector catalog.TracingCollector
}

// options converts the configured adapters into catalog options.
func (o ObservabilityConfig) options() []catalog.Option {
	var options []catalog.Option

	if o.Logger != nil {
		options = append(options, catalog.WithLogger(o.Logger))
	}

	if o.ContextualLogger != nil {
		options = append(options, catalog.WithContextualLogger(o.ContextualLogger))
	}

	if o.MetricsCollector != nil {
		options = append(options, catalog.WithMetrics(o.MetricsCollector))
	}

	if o.TracingCollector != nil {
		options = append(options, catalog.WithTracing(o.TracingCollector))
	}

	return options
}

// providers holds the OpenTelemetry SDK providers so they can be flushed at exit.
type providers struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider
}

// newObservabilityConfig always returns a plain slog logger writing to stderr.
// With observability enabled it also installs OpenTelemetry providers exporting to w
// and returns adapters bound to them.
func newObservabilityConfig(ctx context.Context, cfg Config, w io.Writer) (ObservabilityConfig, *providers, error) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if !cfg.ObservabilityEnabled {
		return ObservabilityConfig{Logger: logger}, nil, nil
	}

	p, err := newProviders(ctx, w, cfg.LogLevel)
	if err != nil {
		return ObservabilityConfig{Logger: logger}, nil, err
	}

	return ObservabilityConfig{
		ContextualLogger: oteladapters.NewSlogBridgeLogger(serviceName),
		MetricsCollector: oteladapters.NewMetricsCollector(p.meterProvider.Meter(serviceName)),
		TracingCollector: oteladapters.NewTracingCollector(p.tracerProvider.Tracer(serviceName)),
	}, p, nil
}

func newProviders(ctx context.Context, w io.Writer, level slog.Level) (*providers, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}

	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, err
	}

	logExporter, err := stdoutlog.New(stdoutlog.WithWriter(w))
	if err != nil {
		return nil, err
	}

	p := &providers{
		tracerProvider: sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(traceExporter),
			sdktrace.WithResource(res),
		),
		meterProvider: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
			sdkmetric.WithResource(res),
		),
		loggerProvider: sdklog.NewLoggerProvider(
			sdklog.WithProcessor(minsev.NewLogProcessor(sdklog.NewSimpleProcessor(logExporter), toSeverity(level))),
			sdklog.WithResource(res),
		),
	}

	otel.SetTracerProvider(p.tracerProvider)
	otel.SetMeterProvider(p.meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	global.SetLoggerProvider(p.loggerProvider)

	return p, nil
}

// toSeverity maps the -log-level flag onto the minimum OpenTelemetry log severity.
func toSeverity(level slog.Level) minsev.Severity {
	switch {
	case level < slog.LevelInfo:
		return minsev.SeverityDebug
	case level < slog.LevelWarn:
		return minsev.SeverityInfo
	case level < slog.LevelError:
		return minsev.SeverityWarn
	default:
		return minsev.SeverityError
	}
}

// Shutdown flushes and stops all providers. Metrics are exported once, on shutdown.
func (p *providers) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(
		p.tracerProvider.Shutdown(ctx),
		p.meterProvider.Shutdown(ctx),
		p.loggerProvider.Shutdown(ctx),
	)
}
