package places

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// MockLookup is a mock implementation of Lookup
type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) Lookup(ctx context.Context, city, category string, maxResults int) ([]types.Place, error) {
	args := m.Called(ctx, city, category, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Place), args.Error(1)
}

var samplePlaces = []types.Place{
	{Name: "Louvre", Location: "Rue de Rivoli", Rating: 4.7, Categories: []string{"museum"}},
	{Name: "Orsay", Location: "Left Bank", Rating: 4.6, Categories: []string{"museum"}},
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "k", samplePlaces)
	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, samplePlaces, got)

	got[0].Categories[0] = "mutated"
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, "museum", again[0].Categories[0])
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewRedisCache(client, time.Hour, logger)
	ctx := context.Background()

	_, ok := c.Get(ctx, "places:paris:museum:3")
	assert.False(t, ok)

	c.Set(ctx, "places:paris:museum:3", samplePlaces)
	assert.True(t, mr.Exists("trip:places:paris:museum:3"))

	got, ok := c.Get(ctx, "places:paris:museum:3")
	require.True(t, ok)
	assert.Equal(t, samplePlaces, got)

	mr.FastForward(2 * time.Hour)
	_, ok = c.Get(ctx, "places:paris:museum:3")
	assert.False(t, ok, "entry expires after ttl")

	require.NoError(t, mr.Set("trip:corrupt", "{not json"))
	_, ok = c.Get(ctx, "corrupt")
	assert.False(t, ok)
}

func TestRedisCache_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	c := NewRedisCache(client, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	assert.NotPanics(t, func() { c.Set(ctx, "k", samplePlaces) })
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestCachedLookup(t *testing.T) {
	ctx := context.Background()
	next := new(MockLookup)
	next.On("Lookup", mock.Anything, "Paris", "museum", 3).Return(samplePlaces, nil).Once()
	next.On("Lookup", mock.Anything, "Paris", "park", 3).Return([]types.Place{}, nil).Twice()
	next.On("Lookup", mock.Anything, "Paris", "cafe", 3).Return(nil, errors.New("quota")).Twice()

	l := NewCachedLookup(next, NewMemoryCache(time.Minute, time.Minute), nil)

	for i := 0; i < 3; i++ {
		got, err := l.Lookup(ctx, "Paris", "museum", 3)
		require.NoError(t, err)
		assert.Equal(t, samplePlaces, got)
	}
	for i := 0; i < 2; i++ {
		got, err := l.Lookup(ctx, "Paris", "park", 3)
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = l.Lookup(ctx, "Paris", "cafe", 3)
		assert.Error(t, err)
	}

	next.AssertExpectations(t)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "places:new_delhi:museum:3", CacheKey("  New  Delhi ", "museum", 3))
}
