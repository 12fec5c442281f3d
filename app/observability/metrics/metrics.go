package metrics

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// A nil *AppMetrics is valid and records nothing.
type AppMetrics struct {
	ItineraryRequestsTotal    metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	PlaceLookupErrorsTotal    metric.Int64Counter
	PlaceFallbacksTotal       metric.Int64Counter
	PlaceCacheHitsTotal       metric.Int64Counter
	SummaryFallbacksTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments once.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TripPlanner")
		m, err := New(meter)
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// New creates the instruments on meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	if m.ItineraryRequestsTotal, err = meter.Int64Counter(
		"itinerary_requests_total",
		metric.WithDescription("Total number of itinerary requests by outcome"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.GenerationDurationSeconds, err = meter.Float64Histogram(
		"itinerary_generation_duration_seconds",
		metric.WithDescription("Duration of itinerary synthesis in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.PlaceLookupErrorsTotal, err = meter.Int64Counter(
		"place_lookup_errors_total",
		metric.WithDescription("Place lookups that failed or timed out"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}
	if m.PlaceFallbacksTotal, err = meter.Int64Counter(
		"place_fallbacks_total",
		metric.WithDescription("Schedules built from placeholder places"),
	); err != nil {
		return nil, err
	}
	if m.PlaceCacheHitsTotal, err = meter.Int64Counter(
		"place_cache_hits_total",
		metric.WithDescription("Place lookups served from cache"),
	); err != nil {
		return nil, err
	}
	if m.SummaryFallbacksTotal, err = meter.Int64Counter(
		"summary_fallbacks_total",
		metric.WithDescription("Summaries that fell back to the template"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

func (m *AppMetrics) RecordRequest(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.ItineraryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AppMetrics) RecordGeneration(ctx context.Context, seconds float64) {
	if m == nil {
		return
	}
	m.GenerationDurationSeconds.Record(ctx, seconds)
}

func (m *AppMetrics) RecordLookupError(ctx context.Context, category string) {
	if m == nil {
		return
	}
	m.PlaceLookupErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

func (m *AppMetrics) RecordFallback(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.PlaceFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *AppMetrics) RecordCacheHit(ctx context.Context, category string) {
	if m == nil {
		return
	}
	m.PlaceCacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

func (m *AppMetrics) RecordSummaryFallback(ctx context.Context, provider string) {
	if m == nil {
		return
	}
	m.SummaryFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider)))
}
