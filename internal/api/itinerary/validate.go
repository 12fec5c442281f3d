package itinerary

import (
	"fmt"
	"math"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type Bounds struct {
	MaxDays      int
	MaxTravelers int
}

var DefaultBounds = Bounds{MaxDays: 30, MaxTravelers: 10}

// ValidateTripRequest rejects requests that cannot produce an itinerary.
// Every returned error wraps types.ErrInvalidTripRequest.
func ValidateTripRequest(req types.TripRequest, b Bounds) error {
	switch {
	case strings.TrimSpace(req.City) == "":
		return fmt.Errorf("%w: city is required", types.ErrInvalidTripRequest)
	case math.IsNaN(req.Budget) || math.IsInf(req.Budget, 0) || req.Budget <= 0:
		return fmt.Errorf("%w: budget must be positive", types.ErrInvalidTripRequest)
	case req.Days <= 0:
		return fmt.Errorf("%w: days must be positive", types.ErrInvalidTripRequest)
	case req.Travelers <= 0:
		return fmt.Errorf("%w: travelers must be positive", types.ErrInvalidTripRequest)
	case b.MaxDays > 0 && req.Days > b.MaxDays:
		return fmt.Errorf("%w: at most %d days", types.ErrInvalidTripRequest, b.MaxDays)
	case b.MaxTravelers > 0 && req.Travelers > b.MaxTravelers:
		return fmt.Errorf("%w: at most %d travelers", types.ErrInvalidTripRequest, b.MaxTravelers)
	}
	return nil
}

// normalizeInterests trims tags, drops blanks and duplicates, and defaults
// to local experiences.
func normalizeInterests(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, i := range in {
		i = strings.TrimSpace(i)
		if i == "" || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	if len(out) == 0 {
		return []string{types.InterestLocalExperiences}
	}
	return out
}
