package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const defaultGeminiModel = "gemini-2.0-flash"

var ErrMissingAPIKey = errors.New("generative ai: api key is required")

// Options configure a narrator. BaseURL and HTTPClient are only set in tests
// or when talking to a proxy.
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	HTTPClient  *http.Client
}

func (o Options) temperature() float32 {
	if o.Temperature <= 0 {
		return defaultTemperature
	}
	return o.Temperature
}

// GeminiNarrator writes trip summaries with the Gemini API.
type GeminiNarrator struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

func NewGeminiNarrator(ctx context.Context, opts Options, logger *slog.Logger) (*GeminiNarrator, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiNarrator{
		client:      client,
		model:       model,
		temperature: opts.temperature(),
		logger:      logger,
	}, nil
}

func (g *GeminiNarrator) Name() string { return "gemini" }

func (g *GeminiNarrator) Narrate(ctx context.Context, req types.TripRequest, interests []string, budget string) (string, error) {
	ctx, span := otel.Tracer("GeminiNarrator").Start(ctx, "Narrate", trace.WithAttributes(
		attribute.String("city", req.City),
		attribute.String("model", g.model),
	))
	defer span.End()

	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](g.temperature)}
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(SummaryPrompt(req, interests, budget)), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	summary := parseSummary(result.Text())
	g.logger.DebugContext(ctx, "Gemini summary received",
		slog.String("city", req.City),
		slog.Int("length", len(summary)))
	return summary, nil
}
