package itinerary

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func TestTierMultiplier(t *testing.T) {
	assert.Equal(t, 0.3, TierMultiplier(types.AccommodationBudget))
	assert.Equal(t, 0.4, TierMultiplier(types.AccommodationHotel))
	assert.Equal(t, 0.5, TierMultiplier(types.AccommodationLuxury))
	assert.Equal(t, 0.35, TierMultiplier(types.AccommodationApartment))
	assert.Equal(t, 0.2, TierMultiplier(types.AccommodationCamping))
	assert.Equal(t, 0.5, TierMultiplier(" Luxury "))
	assert.Equal(t, 0.4, TierMultiplier("treehouse"), "unknown tiers cost as much as a hotel")
	assert.Equal(t, 0.4, TierMultiplier(""))
}

func TestTierMultiplier_Ordering(t *testing.T) {
	order := []types.Accommodation{
		types.AccommodationLuxury,
		types.AccommodationHotel,
		types.AccommodationApartment,
		types.AccommodationBudget,
		types.AccommodationCamping,
	}
	for i := 1; i < len(order); i++ {
		assert.GreaterOrEqual(t, TierMultiplier(order[i-1]), TierMultiplier(order[i]),
			"%s should cost at least as much as %s", order[i-1], order[i])
	}
}

func TestAllocateBudget(t *testing.T) {
	a := AllocateBudget(50000, 3, types.AccommodationHotel)
	assert.Equal(t, 16666.0, a.MaxDaily)
	assert.InDelta(t, 6666.4, a.PerDay, 1e-9)
	assert.InDelta(t, 19999.2, a.Total, 1e-9)

	tiny := AllocateBudget(2, 5, types.AccommodationLuxury)
	assert.Equal(t, 0.0, tiny.MaxDaily)
	assert.Equal(t, 0.0, tiny.Total)
}

func TestAllocateBudget_NeverExceedsBudget(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	tiers := []types.Accommodation{"budget", "hotel", "luxury", "apartment", "camping", "castle"}

	for i := 0; i < 5000; i++ {
		budget := r.Float64()*1_000_000 + 0.01
		days := r.IntN(30) + 1
		acc := tiers[r.IntN(len(tiers))]

		a := AllocateBudget(budget, days, acc)
		assert.LessOrEqual(t, a.Total, budget)
		assert.LessOrEqual(t, a.PerDay, a.MaxDaily)

		var spent float64
		for d := 0; d < days; d++ {
			cost := a.DayCost(r)
			assert.GreaterOrEqual(t, cost, 0.0)
			assert.LessOrEqual(t, cost, a.MaxDaily)
			spent += cost
		}
		assert.LessOrEqual(t, spent, budget)
	}
}

func TestDayCost_Variance(t *testing.T) {
	a := AllocateBudget(100000, 10, types.AccommodationHotel)

	assert.Equal(t, 3920.0, a.DayCost(fixedRandom(0)))
	assert.Equal(t, 4080.0, a.DayCost(fixedRandom(1)))
	assert.Equal(t, 4000.0, a.DayCost(fixedRandom(0.5)))
}
