package places

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"googlemaps.github.io/maps"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Lookup = (*GoogleLookup)(nil)

const defaultVicinity = "City Center"

type GoogleOptions struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Radius         uint
	MinRating      float64
	GeocodeTimeout time.Duration
}

// GoogleLookup resolves the city with the Geocoding API and then runs a
// Places nearby search around it.
type GoogleLookup struct {
	client         *maps.Client
	radius         uint
	minRating      float64
	geocodeTimeout time.Duration
	logger         *slog.Logger

	geocodes singleflight.Group
	coords   *cache.Cache
}

func NewGoogleLookup(opts GoogleOptions, logger *slog.Logger) (*GoogleLookup, error) {
	clientOpts := []maps.ClientOption{maps.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, maps.WithHTTPClient(opts.HTTPClient))
	}
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	if opts.Radius == 0 {
		opts.Radius = 5000
	}
	if opts.GeocodeTimeout <= 0 {
		opts.GeocodeTimeout = 3 * time.Second
	}
	return &GoogleLookup{
		client:         client,
		radius:         opts.Radius,
		minRating:      opts.MinRating,
		geocodeTimeout: opts.GeocodeTimeout,
		logger:         logger,
		coords:         cache.New(24*time.Hour, 1*time.Hour),
	}, nil
}

func (g *GoogleLookup) Lookup(ctx context.Context, city, category string, maxResults int) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesLookup").Start(ctx, "GoogleLookup", trace.WithAttributes(
		attribute.String("city", city),
		attribute.String("category", category),
		attribute.Int("max_results", maxResults),
	))
	defer span.End()

	loc, err := g.geocode(ctx, city)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Geocoding failed")
		return nil, err
	}

	resp, err := g.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: loc,
		Radius:   g.radius,
		Type:     maps.PlaceType(category),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Nearby search failed")
		return nil, fmt.Errorf("nearby search for %s in %s: %w", category, city, err)
	}

	found := make([]types.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		vicinity := r.Vicinity
		if vicinity == "" {
			vicinity = defaultVicinity
		}
		categories := r.Types
		if !slices.Contains(categories, category) {
			categories = append(slices.Clone(categories), category)
		}
		found = append(found, types.Place{
			Name:       r.Name,
			Location:   vicinity,
			Rating:     math.Round(float64(r.Rating)*10) / 10,
			Categories: categories,
		})
	}

	ranked := Rank(found, g.minRating, maxResults)
	span.SetAttributes(attribute.Int("places.count", len(ranked)))
	g.logger.DebugContext(ctx, "Nearby search completed",
		slog.String("city", city),
		slog.String("category", category),
		slog.Int("raw", len(resp.Results)),
		slog.Int("kept", len(ranked)))
	return ranked, nil
}

// geocode resolves city once per process. Concurrent callers for the same
// city share a single request.
func (g *GoogleLookup) geocode(ctx context.Context, city string) (*maps.LatLng, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	if v, found := g.coords.Get(key); found {
		return v.(*maps.LatLng), nil
	}

	ch := g.geocodes.DoChan(key, func() (interface{}, error) {
		gctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.geocodeTimeout)
		defer cancel()

		results, err := g.client.Geocode(gctx, &maps.GeocodingRequest{Address: city})
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", city, err)
		}
		if len(results) == 0 {
			return nil, fmt.Errorf("geocode %q: %w", city, types.ErrCityNotFound)
		}
		loc := results[0].Geometry.Location
		g.coords.Set(key, &loc, cache.DefaultExpiration)
		return &loc, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		loc, ok := res.Val.(*maps.LatLng)
		if !ok {
			return nil, errors.New("geocode: unexpected result type")
		}
		return loc, nil
	}
}
