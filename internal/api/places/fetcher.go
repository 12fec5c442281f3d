package places

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type Request struct {
	Category   string
	MaxResults int
}

type Result struct {
	Category string
	Places   []types.Place
	Err      error
}

// Results holds the places found per category. Missing or failed
// categories are simply absent.
type Results map[string][]types.Place

// Fetcher runs one lookup per category concurrently and joins them under a
// shared deadline. A failed or late branch contributes nothing.
type Fetcher struct {
	lookup      Lookup
	deadline    time.Duration
	concurrency int
	logger      *slog.Logger
	metrics     *metrics.AppMetrics
}

func NewFetcher(lookup Lookup, deadline time.Duration, concurrency int, logger *slog.Logger, m *metrics.AppMetrics) *Fetcher {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Fetcher{
		lookup:      lookup,
		deadline:    deadline,
		concurrency: concurrency,
		logger:      logger,
		metrics:     m,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, city string, reqs []Request) Results {
	ctx, span := otel.Tracer("PlacesFetcher").Start(ctx, "Fetch", trace.WithAttributes(
		attribute.String("city", city),
		attribute.Int("categories", len(reqs)),
	))
	defer span.End()

	if f.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.deadline)
		defer cancel()
	}

	results := make([]Result, len(reqs))
	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = f.fetchOne(ctx, city, req)
			return nil
		})
	}
	_ = g.Wait()

	out := make(Results, len(reqs))
	for _, r := range results {
		if r.Err != nil {
			f.metrics.RecordLookupError(ctx, r.Category)
			f.logger.WarnContext(ctx, "Place lookup failed, continuing without it",
				slog.String("city", city),
				slog.String("category", r.Category),
				slog.Any("error", r.Err))
			continue
		}
		if len(r.Places) > 0 {
			out[r.Category] = r.Places
		}
	}
	span.SetAttributes(attribute.Int("categories.found", len(out)))
	return out
}

// fetchOne stops waiting at the deadline even if the lookup itself does not.
func (f *Fetcher) fetchOne(ctx context.Context, city string, req Request) Result {
	if err := ctx.Err(); err != nil {
		return Result{Category: req.Category, Err: err}
	}
	done := make(chan Result, 1)
	go func() {
		places, err := f.lookup.Lookup(ctx, city, req.Category, req.MaxResults)
		done <- Result{Category: req.Category, Places: places, Err: err}
	}()
	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		return Result{Category: req.Category, Err: ctx.Err()}
	}
}
