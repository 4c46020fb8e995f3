package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	// OperationDurationMetric tracks catalog operation duration (OpenTelemetry-compatible).
	OperationDurationMetric = "catalog_operation_duration_seconds"

	// OperationCallsMetric tracks total catalog operation calls.
	OperationCallsMetric = "catalog_operation_calls_total"

	// OperationRejectionsMetric tracks operations rejected with a notice.
	//
	// Labels:
	//   - operation: LendItem or ReturnItem
	//   - reason: "reader not found" or "item not found"
	OperationRejectionsMetric = "catalog_operation_rejections_total"

	// AvailableItemsMetric is a gauge of the number of items in the available pool.
	AvailableItemsMetric = "catalog_available_items"

	// BorrowedItemsMetric is a gauge of the number of items currently borrowed.
	BorrowedItemsMetric = "catalog_borrowed_items"

	// RegisteredReadersMetric is a gauge of the number of registered readers.
	RegisteredReadersMetric = "catalog_registered_readers"

	// StatusSuccess indicates the operation changed or read state as requested.
	StatusSuccess = "success"

	// StatusRejected indicates the operation was rejected and state is unchanged.
	StatusRejected = "rejected"

	// LogMsgOperationStarted is logged when an operation begins.
	LogMsgOperationStarted = "catalog operation started"

	// LogMsgOperationCompleted is logged when an operation succeeds.
	LogMsgOperationCompleted = "catalog operation completed"

	// LogMsgOperationRejected is logged when an operation is rejected with a notice.
	LogMsgOperationRejected = "catalog operation rejected"

	// LogAttrOperation identifies the operation in logs, metric labels and span attributes.
	LogAttrOperation = "operation"

	// LogAttrStatus indicates the operation status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrReaderID contains the reader ID.
	LogAttrReaderID = "reader_id"

	// LogAttrIdentifier contains the item identifier.
	LogAttrIdentifier = "identifier"

	// LogAttrReason contains the rejection reason.
	LogAttrReason = "reason"

	// LogAttrNoticeID contains the ID of the notice emitted for a rejection.
	LogAttrNoticeID = "notice_id"

	// LogAttrRemoved contains the number of items removed by RemoveByIdentifier.
	LogAttrRemoved = "removed"

	// LogAttrCount contains the number of entries yielded by a listing.
	LogAttrCount = "count"

	// LogAttrError contains error details.
	LogAttrError = "error"

	// SpanNamePrefix prefixes the span name of every operation, e.g. "catalog.LendItem".
	SpanNamePrefix = "catalog."
)

// Logger interface for operational logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
// *slog.Logger satisfies it. When both loggers are configured, the contextual logger is used.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting catalog operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods for trace correlation.
// The Catalog uses the context-aware methods when the configured collector implements them.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting tracing information from catalog operations.
// It is dependency-free, so any tracing backend can be plugged in by implementing it.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// instrumentation bundles the optional observability collaborators. Every one of them may be nil.
type instrumentation struct {
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// operationRun is an operation in flight, started by startOperation.
type operationRun struct {
	ctx       context.Context
	operation string
	span      SpanContext
	startedAt time.Time
}

// inventory is the set of gauge values recorded after a mutating operation.
type inventory struct {
	available int
	borrowed  int
	readers   int
}

func (in instrumentation) startOperation(ctx context.Context, operation string, attrs map[string]string) operationRun {
	run := operationRun{
		ctx:       ctx,
		operation: operation,
		startedAt: time.Now(),
	}

	if in.tracingCollector != nil {
		spanAttrs := map[string]string{LogAttrOperation: operation}
		for k, v := range attrs {
			spanAttrs[k] = v
		}

		run.ctx, run.span = in.tracingCollector.StartSpan(ctx, SpanNamePrefix+operation, spanAttrs)
	}

	in.debug(run.ctx, LogMsgOperationStarted, LogAttrOperation, operation)

	return run
}

func (in instrumentation) completeOperation(run operationRun, args ...any) {
	duration := time.Since(run.startedAt)

	in.recordOperationMetrics(run.ctx, run.operation, StatusSuccess, duration)
	in.finishSpan(run.span, StatusSuccess, duration, nil)

	logArgs := append([]any{
		LogAttrOperation, run.operation,
		LogAttrDurationMS, toMilliseconds(duration),
	}, args...)
	in.info(run.ctx, LogMsgOperationCompleted, logArgs...)
}

func (in instrumentation) rejectOperation(run operationRun, notice Notice) {
	duration := time.Since(run.startedAt)

	in.recordOperationMetrics(run.ctx, run.operation, StatusRejected, duration)
	in.incrementCounter(run.ctx, OperationRejectionsMetric, map[string]string{
		LogAttrOperation: run.operation,
		LogAttrReason:    notice.Reason,
	})
	in.finishSpan(run.span, StatusRejected, duration, notice.Err)

	in.info(
		run.ctx,
		LogMsgOperationRejected,
		LogAttrOperation, run.operation,
		LogAttrReason, notice.Reason,
		LogAttrReaderID, int(notice.ReaderID),
		LogAttrIdentifier, notice.Identifier,
		LogAttrNoticeID, notice.ID.String(),
	)
}

func (in instrumentation) recordInventory(ctx context.Context, inv inventory) {
	if in.metricsCollector == nil {
		return
	}

	in.recordValue(ctx, AvailableItemsMetric, float64(inv.available))
	in.recordValue(ctx, BorrowedItemsMetric, float64(inv.borrowed))
	in.recordValue(ctx, RegisteredReadersMetric, float64(inv.readers))
}

func (in instrumentation) recordOperationMetrics(ctx context.Context, operation string, status string, duration time.Duration) {
	if in.metricsCollector == nil {
		return
	}

	labels := buildOperationLabels(operation, status)

	if contextualCollector, ok := in.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, OperationDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, OperationCallsMetric, labels)

		return
	}

	in.metricsCollector.RecordDuration(OperationDurationMetric, duration, labels)
	in.metricsCollector.IncrementCounter(OperationCallsMetric, labels)
}

func (in instrumentation) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if in.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := in.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	in.metricsCollector.IncrementCounter(metric, labels)
}

func (in instrumentation) recordValue(ctx context.Context, metric string, value float64) {
	if contextualCollector, ok := in.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, nil)
		return
	}

	in.metricsCollector.RecordValue(metric, value, nil)
}

func (in instrumentation) finishSpan(span SpanContext, status string, duration time.Duration, err error) {
	if in.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	in.tracingCollector.FinishSpan(span, status, attrs)
}

func (in instrumentation) debug(ctx context.Context, msg string, args ...any) {
	if in.contextualLogger != nil {
		in.contextualLogger.DebugContext(ctx, msg, args...)
	} else if in.logger != nil {
		in.logger.Debug(msg, args...)
	}
}

func (in instrumentation) info(ctx context.Context, msg string, args ...any) {
	if in.contextualLogger != nil {
		in.contextualLogger.InfoContext(ctx, msg, args...)
	} else if in.logger != nil {
		in.logger.Info(msg, args...)
	}
}

func buildOperationLabels(operation, status string) map[string]string {
	return map[string]string{
		LogAttrOperation: operation,
		LogAttrStatus:    status,
	}
}

func readerIDAttr(id ReaderID) string {
	return strconv.Itoa(int(id))
}

// toMilliseconds converts a time.Duration to float64 milliseconds with precision.
func toMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// formatDurationMS formats duration in milliseconds for span attributes.
func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", toMilliseconds(duration))
}
