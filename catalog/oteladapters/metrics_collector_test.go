package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/lending-catalog-go/catalog"
	"github.com/AntonStoeckl/lending-catalog-go/catalog/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := newMetricsCollector(t)
	labels := map[string]string{
		catalog.LogAttrOperation: catalog.OperationLendItem,
		catalog.LogAttrStatus:    catalog.StatusSuccess,
	}

	// act
	collector.RecordDuration(catalog.OperationDurationMetric, 150*time.Millisecond, labels)

	// assert
	histogram := findHistogramMetric(t, collect(t, reader), catalog.OperationDurationMetric)
	require.Len(t, histogram.DataPoints, 1, "Expected exactly one data point")

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count, "Histogram count should be 1")
	assert.InDelta(t, 0.15, dataPoint.Sum, 0.001, "Histogram sum should be 0.15 seconds")

	expectedAttrs := attribute.NewSet(
		attribute.String(catalog.LogAttrOperation, catalog.OperationLendItem),
		attribute.String(catalog.LogAttrStatus, catalog.StatusSuccess),
	)
	assert.True(t, dataPoint.Attributes.Equals(&expectedAttrs), "Attributes should match")
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	reader, collector := newMetricsCollector(t)
	labels := map[string]string{
		catalog.LogAttrOperation: catalog.OperationReturnItem,
		catalog.LogAttrReason:    "item not found",
	}

	// act
	collector.IncrementCounter(catalog.OperationRejectionsMetric, labels)
	collector.IncrementCounterContext(context.Background(), catalog.OperationRejectionsMetric, labels)
	collector.IncrementCounter(catalog.OperationRejectionsMetric, labels)

	// assert
	counter := findCounterMetric(t, collect(t, reader), catalog.OperationRejectionsMetric)
	require.Len(t, counter.DataPoints, 1, "Expected exactly one data point")
	assert.Equal(t, int64(3), counter.DataPoints[0].Value, "Counter should have been incremented 3 times")
}

func Test_MetricsCollector_RecordValue_KeepsLastValue(t *testing.T) {
	// arrange
	reader, collector := newMetricsCollector(t)

	// act
	collector.RecordValue(catalog.AvailableItemsMetric, 3, nil)
	collector.RecordValueContext(context.Background(), catalog.AvailableItemsMetric, 2, nil)

	// assert
	gauge := findGaugeMetric(t, collect(t, reader), catalog.AvailableItemsMetric)
	require.Len(t, gauge.DataPoints, 1, "Expected exactly one data point")
	assert.Equal(t, float64(2), gauge.DataPoints[0].Value, "Gauge should hold the last recorded value")
}

func Test_MetricsCollector_WiredIntoCatalog(t *testing.T) {
	// arrange
	reader, collector := newMetricsCollector(t)
	c, err := catalog.NewCatalog(catalog.WithMetrics(collector))
	require.NoError(t, err)
	ctx := context.Background()

	c.AddItem(ctx, catalog.BuildItem("Book A", "ISBN1", catalog.ItemKindBook))
	readerID := c.RegisterReader(ctx, "Max")

	// act
	require.NoError(t, c.Lend(ctx, readerID, "ISBN1"))
	_ = c.Lend(ctx, readerID, "ISBN1")

	// assert
	resourceMetrics := collect(t, reader)

	calls := findCounterMetric(t, resourceMetrics, catalog.OperationCallsMetric)
	assert.NotEmpty(t, calls.DataPoints, "Calls counter should have data points")

	rejections := findCounterMetric(t, resourceMetrics, catalog.OperationRejectionsMetric)
	require.Len(t, rejections.DataPoints, 1, "Expected one rejection data point")
	assert.Equal(t, int64(1), rejections.DataPoints[0].Value)

	borrowed := findGaugeMetric(t, resourceMetrics, catalog.BorrowedItemsMetric)
	require.Len(t, borrowed.DataPoints, 1)
	assert.Equal(t, float64(1), borrowed.DataPoints[0].Value, "One item should be borrowed")
}

func newMetricsCollector(t *testing.T) (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("test"))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics), "Failed to collect metrics")

	return resourceMetrics
}

func findMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scopeMetrics := range rm.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %q not found", name)

	return metricdata.Metrics{}
}

func findHistogramMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	histogram, ok := findMetric(t, rm, name).Data.(metricdata.Histogram[float64])
	require.True(t, ok, "Metric %s should be a float64 histogram", name)

	return histogram
}

func findCounterMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	counter, ok := findMetric(t, rm, name).Data.(metricdata.Sum[int64])
	require.True(t, ok, "Metric %s should be an int64 sum", name)

	return counter
}

func findGaugeMetric(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Gauge[float64] {
	t.Helper()

	gauge, ok := findMetric(t, rm, name).Data.(metricdata.Gauge[float64])
	require.True(t, ok, "Metric %s should be a float64 gauge", name)

	return gauge
}
