package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	defaultPerplexityURL   = "https://api.perplexity.ai"
	defaultPerplexityModel = "sonar"
	summaryMaxTokens       = 400
)

var errEmptyCompletion = errors.New("generative ai: completion has no choices")

// ChatCompletionNarrator writes trip summaries with any OpenAI compatible
// chat completion API. Perplexity is the default endpoint.
type ChatCompletionNarrator struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

func NewChatCompletionNarrator(opts Options, logger *slog.Logger) (*ChatCompletionNarrator, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPerplexityURL
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}

	model := opts.Model
	if model == "" {
		model = defaultPerplexityModel
	}
	return &ChatCompletionNarrator{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: opts.temperature(),
		logger:      logger,
	}, nil
}

func (c *ChatCompletionNarrator) Name() string { return "perplexity" }

func (c *ChatCompletionNarrator) Narrate(ctx context.Context, req types.TripRequest, interests []string, budget string) (string, error) {
	ctx, span := otel.Tracer("ChatCompletionNarrator").Start(ctx, "Narrate", trace.WithAttributes(
		attribute.String("city", req.City),
		attribute.String("model", c.model),
	))
	defer span.End()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   summaryMaxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: SummaryPrompt(req, interests, budget)},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Chat completion failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		span.SetStatus(codes.Error, "Empty completion")
		return "", errEmptyCompletion
	}

	summary := parseSummary(resp.Choices[0].Message.Content)
	c.logger.DebugContext(ctx, "Chat completion summary received",
		slog.String("city", req.City),
		slog.String("completion_id", resp.ID),
		slog.Int("length", len(summary)))
	return summary, nil
}
