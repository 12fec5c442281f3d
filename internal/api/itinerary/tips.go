package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const maxTips = 8

var generalTips = []string{
	"Keep emergency numbers handy and know embassy locations",
	"Learn basic phrases in the local language",
	"Always carry copies of important documents",
	"Be aware of local scams and tourist traps",
	"Respect local dress codes and cultural norms",
	"Keep valuables secure and be mindful of pickpockets",
}

// interestTips are formatted with the city name.
var interestTips = map[string]string{
	types.InterestFoodDining:       "Try local specialties and ask locals for restaurant recommendations in %s",
	types.InterestCultureHistory:   "Visit %s during local festivals for authentic cultural experiences",
	types.InterestNatureOutdoors:   "Check weather conditions and pack appropriate gear for outdoor activities in %s",
	types.InterestShopping:         "Visit local markets early in the morning for the best selection and prices in %s",
	types.InterestAdventureSports:  "Ensure you have proper safety equipment and local guides for adventure activities in %s",
	types.InterestArtMuseums:       "Check opening days and free-entry hours for museums and galleries in %s",
	types.InterestNightlife:        "Plan your ride back to your accommodation before heading out at night in %s",
	types.InterestRelaxation:       "Book spa or wellness sessions a few days ahead in %s",
	types.InterestPhotography:      "Scout viewpoints in %s around sunrise and sunset for the best light",
	types.InterestLocalExperiences: "Join a neighbourhood walking tour led by residents of %s",
}

var emergencyContacts = []string{
	"Emergency Services: 911 (or local equivalent)",
	"Local Police: Check with your hotel for nearest station",
	"Hospital: Ask your hotel for nearest medical facility",
	"Your Country's Embassy: Check embassy website",
	"Hotel Front Desk: Available 24/7 for assistance",
	"Tourist Information Center: Usually in city center",
	"%s Tourism Board: Visit official tourism website",
	"Local Emergency: Ask hotel staff for local emergency numbers",
}

// GenerateTips returns the general travel tips followed by one tip per
// interest, at most eight in total.
func GenerateTips(city string, interests []string) []string {
	city = strings.TrimSpace(city)
	tips := make([]string, 0, maxTips)
	tips = append(tips, fmt.Sprintf("Research local customs and etiquette before visiting %s", city))
	tips = append(tips, generalTips...)

	for _, interest := range interests {
		if len(tips) >= maxTips {
			break
		}
		if tmpl, ok := interestTips[interest]; ok {
			tips = append(tips, fmt.Sprintf(tmpl, city))
			continue
		}
		tips = append(tips, fmt.Sprintf("Research %s opportunities specific to %s", strings.ToLower(strings.TrimSpace(interest)), city))
	}
	return tips
}

func EmergencyContacts(city string) []string {
	out := make([]string, len(emergencyContacts))
	for i, c := range emergencyContacts {
		if strings.Contains(c, "%s") {
			c = fmt.Sprintf(c, strings.TrimSpace(city))
		}
		out[i] = c
	}
	return out
}
