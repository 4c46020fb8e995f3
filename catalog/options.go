package catalog

import (
	"time"
)

// Option defines a functional option for configuring a Catalog.
type Option func(*Catalog) error

// WithLogger sets the logger for the Catalog.
//
// Debug level: operation start
// Info level: completed and rejected operations with duration and identifiers.
func WithLogger(logger Logger) Option {
	return func(c *Catalog) error {
		c.instrumentation.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Catalog.
// It takes precedence over a logger set with WithLogger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(c *Catalog) error {
		c.instrumentation.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Catalog.
func WithMetrics(collector MetricsCollector) Option {
	return func(c *Catalog) error {
		c.instrumentation.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Catalog.
func WithTracing(collector TracingCollector) Option {
	return func(c *Catalog) error {
		c.instrumentation.tracingCollector = collector
		return nil
	}
}

// WithNoticeHandler sets the handler that receives a Notice for every rejected operation.
// The handler is called after the Catalog's lock is released, so it may call back into the Catalog.
func WithNoticeHandler(handler NoticeHandler) Option {
	return func(c *Catalog) error {
		c.noticeHandler = handler
		return nil
	}
}

// WithClock sets the clock used to timestamp notices.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) error {
		if now == nil {
			return ErrNilClock
		}

		c.now = now

		return nil
	}
}
