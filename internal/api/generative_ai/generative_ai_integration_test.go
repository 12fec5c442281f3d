//go:build integration

package generativeAI

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiNarrator_Integration(t *testing.T) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GOOGLE_GEMINI_API_KEY not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := NewGeminiNarrator(ctx, Options{APIKey: apiKey}, quietLogger())
	require.NoError(t, err)

	summary, err := n.Narrate(ctx, tripRequest, []string{"Culture & History"}, "₹50,000")
	require.NoError(t, err)
	assert.NotEmpty(t, summary)
	assert.NotContains(t, summary, "```")
}

func TestChatCompletionNarrator_Integration(t *testing.T) {
	apiKey := os.Getenv("PERPLEXITY_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: PERPLEXITY_API_KEY not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := NewChatCompletionNarrator(Options{APIKey: apiKey}, quietLogger())
	require.NoError(t, err)

	summary, err := n.Narrate(ctx, tripRequest, []string{"Food & Dining"}, "₹50,000")
	require.NoError(t, err)
	assert.NotEmpty(t, summary)
}
