package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/config"
	generativeAI "github.com/FACorreiaa/go-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/landmarks"
	"github.com/FACorreiaa/go-trip-planner/internal/api/places"
)

const redisPingTimeout = 2 * time.Second

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Lookup           places.Lookup
	Narrator         itinerary.Narrator
	Fetcher          *places.Fetcher
	ServiceOptions   itinerary.Options
	ItineraryService *itinerary.ServiceImpl
	ItineraryHandler *itinerary.HandlerImpl

	redis *redis.Client
}

// NewContainer wires the itinerary service from configuration. Missing
// provider keys degrade to placeholders and the template summary instead of
// failing startup.
func NewContainer(ctx context.Context, cfg *config.Config, secrets config.Secrets, logger *slog.Logger, m *metrics.AppMetrics) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	lookup, err := c.newLookup(secrets)
	if err != nil {
		return nil, err
	}
	c.Lookup = c.withCache(ctx, lookup, secrets, m)

	narrator, err := c.newNarrator(ctx, secrets)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Narrator = narrator

	c.Fetcher = places.NewFetcher(c.Lookup, cfg.Places.LookupDeadline, cfg.Places.Concurrency, logger, m)

	cur := cfg.Itinerary.Currency
	c.ServiceOptions = itinerary.Options{
		Bounds: itinerary.Bounds{
			MaxDays:      cfg.Itinerary.MaxDays,
			MaxTravelers: cfg.Itinerary.MaxTravelers,
		},
		Currency: itinerary.Currency{
			Code:   cur.Code,
			Symbol: cur.Symbol,
			Locale: cur.Locale,
			Rate:   cur.ConversionRate,
		},
		Limits:         cfg.Places.Limits,
		MinRating:      cfg.Places.MinRating,
		NarrateTimeout: cfg.AI.Timeout,
		Catalog:        landmarks.Default(),
	}
	c.ItineraryService = itinerary.NewServiceImpl(c.Fetcher, narrator, c.ServiceOptions, logger, m)
	c.ItineraryHandler = itinerary.NewHandlerImpl(c.ItineraryService, logger, m)

	logger.Info("Container initialized",
		slog.String("places_provider", cfg.Places.Provider),
		slog.String("cache_backend", cfg.Cache.Backend),
		slog.String("ai_provider", cfg.AI.Provider))
	return c, nil
}

func (c *Container) newLookup(secrets config.Secrets) (places.Lookup, error) {
	switch c.Config.Places.Provider {
	case "", "none":
		c.Logger.Info("Place lookups disabled, itineraries use placeholders")
		return places.Disabled{}, nil
	case "google":
		if secrets.GoogleMapsAPIKey == "" {
			c.Logger.Warn("GOOGLE_MAPS_API_KEY is not set, itineraries use placeholders")
			return places.Disabled{}, nil
		}
		lookup, err := places.NewGoogleLookup(places.GoogleOptions{
			APIKey:         secrets.GoogleMapsAPIKey,
			BaseURL:        c.Config.Places.BaseURL,
			Radius:         c.Config.Places.Radius,
			MinRating:      c.Config.Places.MinRating,
			GeocodeTimeout: c.Config.Places.GeocodeTimeout,
		}, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create google lookup: %w", err)
		}
		return lookup, nil
	default:
		return nil, fmt.Errorf("unknown places provider %q", c.Config.Places.Provider)
	}
}

// withCache wraps lookup in the configured cache. An unreachable Redis
// falls back to the in-process cache.
func (c *Container) withCache(ctx context.Context, lookup places.Lookup, secrets config.Secrets, m *metrics.AppMetrics) places.Lookup {
	if _, disabled := lookup.(places.Disabled); disabled {
		return lookup
	}

	cfg := c.Config.Cache
	switch cfg.Backend {
	case "none":
		return lookup
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: secrets.RedisPassword,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			c.Logger.Warn("Redis unavailable, using in-memory cache",
				slog.String("addr", cfg.Redis.Addr),
				slog.Any("error", err))
			_ = client.Close()
			break
		}
		c.redis = client
		return places.NewCachedLookup(lookup, places.NewRedisCache(client, cfg.TTL, c.Logger), m)
	}
	return places.NewCachedLookup(lookup, places.NewMemoryCache(cfg.TTL, cfg.CleanupInterval), m)
}

func (c *Container) newNarrator(ctx context.Context, secrets config.Secrets) (itinerary.Narrator, error) {
	ai := c.Config.AI
	opts := generativeAI.Options{
		Model:       ai.Model,
		BaseURL:     ai.BaseURL,
		Temperature: ai.Temperature,
	}

	var err error
	switch ai.Provider {
	case "", "none":
		return nil, nil
	case "gemini":
		opts.APIKey = secrets.GeminiAPIKey
		var n *generativeAI.GeminiNarrator
		if n, err = generativeAI.NewGeminiNarrator(ctx, opts, c.Logger); err == nil {
			return n, nil
		}
	case "perplexity":
		opts.APIKey = secrets.PerplexityAPIKey
		var n *generativeAI.ChatCompletionNarrator
		if n, err = generativeAI.NewChatCompletionNarrator(opts, c.Logger); err == nil {
			return n, nil
		}
	default:
		return nil, fmt.Errorf("unknown ai provider %q", ai.Provider)
	}

	if errors.Is(err, generativeAI.ErrMissingAPIKey) {
		c.Logger.Warn("AI provider configured without an API key, using template summaries",
			slog.String("provider", ai.Provider))
		return nil, nil
	}
	return nil, fmt.Errorf("failed to create %s narrator: %w", ai.Provider, err)
}

func (c *Container) Close() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.Logger.Error("Failed to close redis client", slog.Any("error", err))
		}
	}
}
