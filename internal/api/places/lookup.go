// Package places finds real points of interest for a destination.
package places

import (
	"cmp"
	"context"
	"slices"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Lookup returns up to maxResults places of category near city, best rated first.
// An error means "no results" to callers.
type Lookup interface {
	Lookup(ctx context.Context, city, category string, maxResults int) ([]types.Place, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, city, category string, maxResults int) ([]types.Place, error)

func (f LookupFunc) Lookup(ctx context.Context, city, category string, maxResults int) ([]types.Place, error) {
	return f(ctx, city, category, maxResults)
}

// Disabled is used when no provider is configured. It never finds anything.
type Disabled struct{}

func (Disabled) Lookup(context.Context, string, string, int) ([]types.Place, error) {
	return nil, nil
}

// Rank drops places rated below minRating, orders the rest by rating
// descending and keeps at most maxResults.
func Rank(places []types.Place, minRating float64, maxResults int) []types.Place {
	out := make([]types.Place, 0, len(places))
	for _, p := range places {
		if p.Rating >= minRating {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b types.Place) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}
