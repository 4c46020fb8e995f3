// Package testdoubles provides test doubles (spies) for the catalog observability interfaces:
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures started and finished spans
//   - ContextualLoggerSpy: captures context-aware log calls
//   - LogHandlerSpy: a slog.Handler capturing records, for use with *slog.Logger
//   - NoticeRecorder: captures notices delivered to a catalog.NoticeHandler
//
// These spies make it possible to test instrumentation without a telemetry backend.
package testdoubles
