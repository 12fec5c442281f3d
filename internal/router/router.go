package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	appMiddleware "github.com/FACorreiaa/go-trip-planner/app/middleware"
	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler *itinerary.HandlerImpl
	CORS             appMiddleware.CORSOptions
	RateLimit        int
	RateLimitWindow  time.Duration
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(appMiddleware.CORS(cfg.CORS))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow, func(w http.ResponseWriter, r *http.Request) {
			api.ErrorResponse(w, r, http.StatusTooManyRequests, "Too many requests")
		}))
		r.Post(itinerary.Route, cfg.ItineraryHandler.GenerateItinerary)
	})
	r.Options(itinerary.Route, cfg.ItineraryHandler.Preflight)

	r.MethodNotAllowed(cfg.ItineraryHandler.MethodNotAllowed)

	return r
}
