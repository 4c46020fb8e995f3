// Package oteladapters implements the catalog observability interfaces on top of OpenTelemetry.
//
//   - MetricsCollector maps durations to histograms, counters to counters and values to gauges.
//   - TracingCollector starts and finishes spans with a trace.Tracer.
//   - SlogBridgeLogger logs through slog, optionally bridged to the OpenTelemetry log pipeline.
//   - OTelLogger emits records through the OpenTelemetry log API directly.
package oteladapters
