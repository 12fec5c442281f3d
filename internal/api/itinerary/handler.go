package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const Route = "/api/generate-itinerary"

const (
	msgInvalidInput     = "Invalid input parameters"
	msgInternal         = "Internal server error"
	msgMethodNotAllowed = "Method not allowed"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewHandlerImpl(service Service, logger *slog.Logger, m *metrics.AppMetrics) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
		metrics: m,
	}
}

// GenerateItinerary builds an itinerary from the posted trip form.
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(Route),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		h.metrics.RecordRequest(ctx, "error")
		api.ErrorResponse(w, r, http.StatusInternalServerError, msgInternal)
		return
	}
	l = l.With(slog.String("city", req.City), slog.Int("days", req.Days))

	doc, err := h.service.GenerateItinerary(ctx, req)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, types.ErrInvalidTripRequest) {
			l.WarnContext(ctx, "Rejected trip request", slog.Any("error", err))
			span.SetStatus(codes.Error, "Invalid input")
			h.metrics.RecordRequest(ctx, "invalid")
			api.ErrorResponse(w, r, http.StatusBadRequest, msgInvalidInput)
			return
		}
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		span.SetStatus(codes.Error, "Generation failed")
		h.metrics.RecordRequest(ctx, "error")
		api.ErrorResponse(w, r, http.StatusInternalServerError, msgInternal)
		return
	}

	h.metrics.RecordRequest(ctx, "ok")
	l.InfoContext(ctx, "Itinerary generated successfully", slog.String("itinerary_id", doc.ID.String()))
	api.WriteJSONResponse(w, r, http.StatusOK, doc)
}

// Preflight answers bare OPTIONS requests. Browser preflights with an
// Access-Control-Request-Method header are answered by the CORS middleware.
func (h *HandlerImpl) Preflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "POST, OPTIONS")
	w.WriteHeader(http.StatusOK)
}

func (h *HandlerImpl) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Method not allowed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	w.Header().Set("Allow", "POST, OPTIONS")
	api.ErrorResponse(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
