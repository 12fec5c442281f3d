package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNilMetricsAreNoop(t *testing.T) {
	var m *AppMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordRequest(ctx, "ok")
		m.RecordGeneration(ctx, 0.5)
		m.RecordLookupError(ctx, "restaurant")
		m.RecordFallback(ctx, "attractions")
		m.RecordCacheHit(ctx, "restaurant")
		m.RecordSummaryFallback(ctx, "gemini")
	})
}

func TestNew_RecordsCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := New(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordLookupError(ctx, "museum")
	m.RecordLookupError(ctx, "museum")
	m.RecordRequest(ctx, "ok")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	totals := map[string]int64{}
	for _, md := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
			for _, dp := range sum.DataPoints {
				totals[md.Name] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), totals["place_lookup_errors_total"])
	assert.Equal(t, int64(1), totals["itinerary_requests_total"])
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	if appMetrics != nil {
		t.Skip("metrics already initialized in this process")
	}
	assert.Panics(t, func() { Get() })
}
