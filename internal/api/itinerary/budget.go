package itinerary

import (
	"math"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// tierMultipliers is the share of the daily budget spent per accommodation tier.
var tierMultipliers = map[types.Accommodation]float64{
	types.AccommodationBudget:    0.3,
	types.AccommodationHotel:     0.4,
	types.AccommodationLuxury:    0.5,
	types.AccommodationApartment: 0.35,
	types.AccommodationCamping:   0.2,
}

// TierMultiplier returns the multiplier for acc. Unknown tiers cost as much as a hotel.
func TierMultiplier(acc types.Accommodation) float64 {
	if m, ok := tierMultipliers[types.Accommodation(strings.ToLower(strings.TrimSpace(string(acc))))]; ok {
		return m
	}
	return tierMultipliers[types.AccommodationHotel]
}

type Allocation struct {
	MaxDaily float64
	PerDay   float64
	Total    float64
}

// AllocateBudget splits budget over days. Callers must reject days <= 0 and
// budget <= 0 first.
func AllocateBudget(budget float64, days int, acc types.Accommodation) Allocation {
	maxDaily := math.Floor(budget / float64(days))
	perDay := math.Min(maxDaily*TierMultiplier(acc), maxDaily)
	return Allocation{
		MaxDaily: maxDaily,
		PerDay:   perDay,
		Total:    math.Min(perDay*float64(days), budget),
	}
}

// DayCost applies the random variance of 98% to 102% to the per-day
// allocation, never exceeding the daily maximum.
func (a Allocation) DayCost(r RandomSource) float64 {
	cost := math.Round(a.PerDay * (0.98 + r.Float64()*0.04))
	return math.Max(0, math.Min(cost, a.MaxDaily))
}
