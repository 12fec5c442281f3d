package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func TestGenerateTips(t *testing.T) {
	tips := GenerateTips("Paris", []string{types.InterestFoodDining})

	require.Len(t, tips, 8)
	assert.Equal(t, "Research local customs and etiquette before visiting Paris", tips[0])
	assert.Equal(t, "Try local specialties and ask locals for restaurant recommendations in Paris", tips[7])
}

func TestGenerateTips_CappedAtEight(t *testing.T) {
	tips := GenerateTips("Agra", []string{
		types.InterestCultureHistory,
		types.InterestNatureOutdoors,
		types.InterestShopping,
	})

	require.Len(t, tips, maxTips)
	assert.Contains(t, tips[7], "festivals")
}

func TestGenerateTips_UnknownInterest(t *testing.T) {
	tips := GenerateTips(" Lisbon ", []string{"Street Art"})

	assert.Equal(t, "Research street art opportunities specific to Lisbon", tips[len(tips)-1])
}

func TestGenerateTips_NoInterests(t *testing.T) {
	tips := GenerateTips("Rome", nil)

	assert.Len(t, tips, 7)
}

func TestEmergencyContacts(t *testing.T) {
	contacts := EmergencyContacts("Paris")

	require.Len(t, contacts, 8)
	assert.Contains(t, contacts, "Paris Tourism Board: Visit official tourism website")
	assert.Equal(t, "Emergency Services: 911 (or local equivalent)", contacts[0])

	other := EmergencyContacts("Agra")
	assert.Contains(t, other, "Agra Tourism Board: Visit official tourism website")
	assert.NotContains(t, EmergencyContacts("Paris"), "Agra Tourism Board: Visit official tourism website")
}
