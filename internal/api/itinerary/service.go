package itinerary

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/api/landmarks"
	"github.com/FACorreiaa/go-trip-planner/internal/api/places"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for itinerary generation.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.ItineraryDocument, error)
}

// PlaceFetcher looks up several categories for a city at once.
type PlaceFetcher interface {
	Fetch(ctx context.Context, city string, reqs []places.Request) places.Results
}

// Narrator writes the free-text summary of a trip. budget is already
// formatted for display.
type Narrator interface {
	Narrate(ctx context.Context, req types.TripRequest, interests []string, budget string) (string, error)
	Name() string
}

// interestCategories are the extra place categories fetched for an interest.
var interestCategories = map[string]string{
	types.InterestCultureHistory: types.CategoryMuseum,
	types.InterestArtMuseums:     types.CategoryMuseum,
	types.InterestNightlife:      types.CategoryNightClub,
	types.InterestFoodDining:     types.CategoryCafe,
	types.InterestNatureOutdoors: types.CategoryPark,
	types.InterestShopping:       types.CategoryShoppingMall,
}

var defaultLimits = map[string]int{
	types.CategoryAttraction: 6,
	types.CategoryRestaurant: 4,
}

type Options struct {
	Bounds         Bounds
	Currency       Currency
	Limits         map[string]int
	MinRating      float64
	NarrateTimeout time.Duration
	Random         RandomSource
	Catalog        *landmarks.Catalog
}

type ServiceImpl struct {
	fetcher   PlaceFetcher
	narrator  Narrator
	generator *ScheduleGenerator
	random    RandomSource
	opts      Options
	logger    *slog.Logger
	metrics   *metrics.AppMetrics
}

// NewServiceImpl wires the synthesizer. fetcher and narrator may be nil, in
// which case placeholders and the template summary are used.
func NewServiceImpl(fetcher PlaceFetcher, narrator Narrator, opts Options, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	if opts.Bounds == (Bounds{}) {
		opts.Bounds = DefaultBounds
	}
	if opts.Currency == (Currency{}) {
		opts.Currency = DefaultCurrency
	}
	if opts.MinRating <= 0 {
		opts.MinRating = 3.5
	}
	if opts.NarrateTimeout <= 0 {
		opts.NarrateTimeout = 8 * time.Second
	}
	if opts.Random == nil {
		opts.Random = globalRandom{}
	}
	return &ServiceImpl{
		fetcher:   fetcher,
		narrator:  narrator,
		generator: NewScheduleGenerator(opts.Random, opts.Catalog),
		random:    opts.Random,
		opts:      opts,
		logger:    logger,
		metrics:   m,
	}
}

type narration struct {
	text string
	err  error
}

func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.ItineraryDocument, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("city", req.City),
		attribute.Int("days", req.Days),
		attribute.Int("travelers", req.Travelers),
		attribute.String("accommodation", string(req.Accommodation)),
	))
	defer span.End()
	start := time.Now()

	if err := ValidateTripRequest(req, s.opts.Bounds); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip request")
		return nil, err
	}

	req.City = strings.TrimSpace(req.City)
	interests := normalizeInterests(req.Interests)
	budget := s.opts.Currency.Convert(req.Budget)
	alloc := AllocateBudget(budget, req.Days, req.Accommodation)
	displayBudget := s.opts.Currency.Format(budget)

	// The summary is written while places are looked up.
	var narrated chan narration
	if s.narrator != nil {
		narrCtx, cancel := context.WithTimeout(ctx, s.opts.NarrateTimeout)
		defer cancel()
		narrated = make(chan narration, 1)
		go func() {
			text, err := s.narrator.Narrate(narrCtx, req, interests, displayBudget)
			narrated <- narration{text: text, err: err}
		}()
	}

	src := s.sources(ctx, req.City, interests)

	days := make([]types.DayPlan, 0, req.Days)
	for d := 1; d <= req.Days; d++ {
		sched := s.generator.Generate(d, req.City, interests, src)
		days = append(days, types.DayPlan{
			Day:           d,
			Activities:    sched.Activities,
			Meals:         sched.Meals,
			Accommodation: AccommodationNote(d, req.Days, req.Accommodation, req.City),
			EstimatedCost: alloc.DayCost(s.random),
		})
	}

	summary := TemplateSummary(req, interests, budget, s.opts.Currency)
	if narrated != nil {
		summary = s.awaitSummary(ctx, narrated, summary)
	}

	doc := &types.ItineraryDocument{
		ID:                uuid.New(),
		City:              req.City,
		Summary:           summary,
		TotalBudget:       alloc.Total,
		Currency:          s.opts.Currency.Code,
		Days:              days,
		Tips:              GenerateTips(req.City, interests),
		EmergencyContacts: EmergencyContacts(req.City),
	}

	elapsed := time.Since(start)
	s.metrics.RecordGeneration(ctx, elapsed.Seconds())
	span.SetAttributes(attribute.String("itinerary.id", doc.ID.String()))
	s.logger.InfoContext(ctx, "Itinerary generated",
		slog.String("itinerary_id", doc.ID.String()),
		slog.String("city", req.City),
		slog.Int("days", req.Days),
		slog.Float64("total_budget", alloc.Total),
		slog.Duration("elapsed", elapsed))
	return doc, nil
}

// sources fetches real places and ranks them. Categories that come back
// empty are left empty so the generator substitutes placeholders.
func (s *ServiceImpl) sources(ctx context.Context, city string, interests []string) Sources {
	var src Sources
	if s.fetcher != nil {
		reqs := s.categoryRequests(interests)
		found := s.fetcher.Fetch(ctx, city, reqs)
		for _, r := range reqs {
			ranked := places.Rank(found[r.Category], s.opts.MinRating, r.MaxResults)
			switch r.Category {
			case types.CategoryAttraction:
				src.Attractions = ranked
			case types.CategoryRestaurant:
				src.Restaurants = ranked
			default:
				src.Extras = append(src.Extras, ranked...)
			}
		}
	}

	if len(src.Attractions) == 0 {
		s.metrics.RecordFallback(ctx, "attractions")
		s.logger.DebugContext(ctx, "Using placeholder attractions", slog.String("city", city))
	}
	if len(src.Restaurants) == 0 {
		s.metrics.RecordFallback(ctx, "restaurants")
		s.logger.DebugContext(ctx, "Using placeholder restaurants", slog.String("city", city))
	}
	return src
}

func (s *ServiceImpl) categoryRequests(interests []string) []places.Request {
	categories := []string{types.CategoryAttraction, types.CategoryRestaurant}
	for _, i := range interests {
		if c, ok := interestCategories[i]; ok && !slices.Contains(categories, c) {
			categories = append(categories, c)
		}
	}

	reqs := make([]places.Request, 0, len(categories))
	for _, c := range categories {
		reqs = append(reqs, places.Request{Category: c, MaxResults: s.limit(c)})
	}
	return reqs
}

func (s *ServiceImpl) limit(category string) int {
	if n, ok := s.opts.Limits[category]; ok && n > 0 {
		return n
	}
	if n, ok := defaultLimits[category]; ok {
		return n
	}
	return 3
}

func (s *ServiceImpl) awaitSummary(ctx context.Context, narrated <-chan narration, fallback string) string {
	var n narration
	select {
	case n = <-narrated:
	case <-time.After(s.opts.NarrateTimeout):
		n.err = context.DeadlineExceeded
	}
	text := strings.TrimSpace(n.text)
	if n.err == nil && text != "" {
		return text
	}

	s.metrics.RecordSummaryFallback(ctx, s.narrator.Name())
	l := s.logger.With(slog.String("narrator", s.narrator.Name()))
	if n.err != nil {
		l.WarnContext(ctx, "Summary generation failed, using template", slog.Any("error", n.err))
	} else {
		l.WarnContext(ctx, "Summary generation returned nothing, using template")
	}
	return fallback
}
