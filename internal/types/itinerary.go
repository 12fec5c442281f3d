package types

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidTripRequest = errors.New("invalid trip request")
	ErrNoPlaces           = errors.New("no places found")
	ErrCityNotFound       = errors.New("city could not be geocoded")
)

type Accommodation string

const (
	AccommodationBudget    Accommodation = "budget"
	AccommodationHotel     Accommodation = "hotel"
	AccommodationLuxury    Accommodation = "luxury"
	AccommodationApartment Accommodation = "apartment"
	AccommodationCamping   Accommodation = "camping"
)

// Form interests that change scheduling or tips.
const (
	InterestCultureHistory   = "Culture & History"
	InterestFoodDining       = "Food & Dining"
	InterestNatureOutdoors   = "Nature & Outdoors"
	InterestShopping         = "Shopping"
	InterestAdventureSports  = "Adventure Sports"
	InterestArtMuseums       = "Art & Museums"
	InterestNightlife        = "Nightlife"
	InterestRelaxation       = "Relaxation"
	InterestPhotography      = "Photography"
	InterestLocalExperiences = "Local Experiences"
)

// Place categories understood by the lookup provider.
const (
	CategoryAttraction   = "tourist_attraction"
	CategoryRestaurant   = "restaurant"
	CategoryMuseum       = "museum"
	CategoryNightClub    = "night_club"
	CategoryCafe         = "cafe"
	CategoryPark         = "park"
	CategoryShoppingMall = "shopping_mall"
)

// TripRequest is the decoded form submission.
type TripRequest struct {
	City           string        `json:"city"`
	Budget         float64       `json:"budget"`
	Days           int           `json:"days"`
	Travelers      int           `json:"travelers"`
	Interests      []string      `json:"interests"`
	Accommodation  Accommodation `json:"accommodation"`
	Transportation string        `json:"transportation"`
}

// Place is a point of interest returned by a lookup or synthesized as a placeholder.
type Place struct {
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Rating     float64  `json:"rating"`
	Categories []string `json:"categories,omitempty"`
}

// HasCategory reports whether one of the place's categories, or one of its
// underscore separated words, equals one of tags. "art_gallery" matches "art"
// but "department_store" does not.
func (p Place) HasCategory(tags ...string) bool {
	for _, c := range p.Categories {
		c = strings.ToLower(c)
		if slices.Contains(tags, c) {
			return true
		}
		for _, word := range strings.Split(c, "_") {
			if slices.Contains(tags, word) {
				return true
			}
		}
	}
	return false
}

type DayPlan struct {
	Day           int      `json:"day"`
	Activities    []string `json:"activities"`
	Meals         []string `json:"meals"`
	Accommodation string   `json:"accommodation"`
	EstimatedCost float64  `json:"estimatedCost"`
}

type ItineraryDocument struct {
	ID                uuid.UUID `json:"id"`
	City              string    `json:"city"`
	Summary           string    `json:"summary"`
	TotalBudget       float64   `json:"totalBudget"`
	Currency          string    `json:"currency"`
	Days              []DayPlan `json:"days"`
	Tips              []string  `json:"tips"`
	EmergencyContacts []string  `json:"emergencyContacts"`
}
