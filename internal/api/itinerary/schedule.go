package itinerary

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/go-trip-planner/internal/api/landmarks"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	placesPerDay       = 4
	mealsPerDay        = 3
	defaultActivityCap = 4
)

// interestRule schedules one extra activity for a traveler interest at a
// time that varies with the day.
type interestRule struct {
	Tags     []string
	Times    [3]string
	Duration time.Duration
}

var interestRules = map[string]interestRule{
	types.InterestFoodDining: {
		Tags:     []string{"food", "restaurant", "cafe", "bar"},
		Times:    [3]string{"5:00 PM", "6:00 PM", "5:30 PM"},
		Duration: 90 * time.Minute,
	},
	types.InterestNightlife: {
		Tags:     []string{"nightlife", "bar", "club", "entertainment"},
		Times:    [3]string{"9:00 PM", "10:00 PM", "9:30 PM"},
		Duration: 2 * time.Hour,
	},
	types.InterestCultureHistory: {
		Tags:     []string{"museum", "art", "cultural", "historical"},
		Times:    [3]string{"2:00 PM", "3:00 PM", "4:00 PM"},
		Duration: 2 * time.Hour,
	},
}

type themeRule struct {
	Tags     []string
	Start    string
	Duration time.Duration
}

// dayThemes gives the first three days a flavour: orientation, local life, shopping.
var dayThemes = map[int]themeRule{
	1: {Tags: []string{types.CategoryAttraction, "landmark", "monument"}, Start: "11:00 AM", Duration: time.Hour},
	2: {Tags: []string{"park", "garden", "market"}, Start: "2:30 PM", Duration: 90 * time.Minute},
	3: {Tags: []string{"shopping", "mall", "store"}, Start: "4:00 PM", Duration: 2 * time.Hour},
}

// Sources are the candidate places for one trip. Empty attraction or
// restaurant lists are replaced with placeholders for the city.
type Sources struct {
	Attractions []types.Place
	Extras      []types.Place
	Restaurants []types.Place
}

type Schedule struct {
	Activities []string
	Meals      []string
}

type ScheduleGenerator struct {
	random        RandomSource
	catalog       *landmarks.Catalog
	maxActivities int
}

func NewScheduleGenerator(r RandomSource, catalog *landmarks.Catalog) *ScheduleGenerator {
	if r == nil {
		r = globalRandom{}
	}
	if catalog == nil {
		catalog = landmarks.Default()
	}
	return &ScheduleGenerator{random: r, catalog: catalog, maxActivities: defaultActivityCap}
}

type activity struct {
	place    types.Place
	start    string
	duration string
	window   window
}

// Generate builds the activities and meals for day. It never fails: missing
// places are replaced with city placeholders.
func (g *ScheduleGenerator) Generate(day int, city string, interests []string, src Sources) Schedule {
	attractions := src.Attractions
	extras := src.Extras
	if len(attractions) == 0 {
		attractions = g.catalog.Landmarks(city)
		extras = nil
	}
	restaurants := src.Restaurants
	if len(restaurants) == 0 {
		restaurants = g.catalog.Restaurants(city)
	}

	return Schedule{
		Activities: g.activities(day, interests, rotate(uniqueByName(attractions, extras), (day-1)*placesPerDay)),
		Meals:      meals(day, city, rotate(uniqueByName(restaurants), (day-1)*mealsPerDay)),
	}
}

func (g *ScheduleGenerator) activities(day int, interests []string, pool []types.Place) []string {
	used := make(map[string]bool, len(pool))
	var picked []activity

	conflicts := func(w window) bool {
		return slices.ContainsFunc(picked, func(a activity) bool { return a.window.overlaps(w) })
	}
	next := func(tags []string) (types.Place, bool) {
		for _, p := range pool {
			if used[p.Name] {
				continue
			}
			if tags == nil || p.HasCategory(tags...) {
				return p, true
			}
		}
		return types.Place{}, false
	}
	add := func(p types.Place, start string, length time.Duration, w window) {
		used[p.Name] = true
		picked = append(picked, activity{place: p, start: start, duration: formatDuration(length), window: w})
	}

	// Interest matches first, in the order the traveler listed them.
	for _, interest := range interests {
		if len(picked) >= g.maxActivities {
			break
		}
		rule, ok := interestRules[interest]
		if !ok {
			continue
		}
		start := rule.Times[(day-1)%len(rule.Times)]
		w := newWindow(start, rule.Duration)
		if conflicts(w) {
			continue
		}
		if p, ok := next(rule.Tags); ok {
			add(p, start, rule.Duration, w)
		}
	}

	if theme, ok := dayThemes[day]; ok && len(picked) < g.maxActivities {
		w := newWindow(theme.Start, theme.Duration)
		if !conflicts(w) {
			if p, ok := next(theme.Tags); ok {
				add(p, theme.Start, theme.Duration, w)
			}
		}
	}

	for i, slot := range SlotPatternFor(day) {
		if len(picked) >= g.maxActivities {
			break
		}
		w := slotWindow(slot)
		if conflicts(w) {
			continue
		}
		p, ok := next(nil)
		if !ok {
			break
		}
		length := 2 * time.Hour
		switch {
		case day == 1 && i == 0:
			length = 150 * time.Minute
		case g.random.Float64() <= 0.5:
			length = 90 * time.Minute
		}
		add(p, slot.Start, length, w)
	}

	slices.SortStableFunc(picked, func(a, b activity) int {
		return cmp.Compare(a.window.from, b.window.from)
	})
	out := make([]string, 0, len(picked))
	for _, a := range picked {
		out = append(out, fmt.Sprintf("%s - %s (%s) - %s", a.start, a.place.Name, a.duration, a.place.Location))
	}
	return out
}

func meals(day int, city string, restaurants []types.Place) []string {
	times := mealTimesFor(day)
	slots := [mealsPerDay]struct{ at, meal string }{
		{times.Breakfast, "Breakfast"},
		{times.Lunch, "Lunch"},
		{times.Dinner, "Dinner"},
	}
	out := make([]string, 0, mealsPerDay)
	for i, s := range slots {
		if i < len(restaurants) {
			out = append(out, formatMeal(s.at, s.meal, restaurants[i]))
			continue
		}
		out = append(out, fmt.Sprintf("%s - %s at local restaurant in %s", s.at, s.meal, strings.TrimSpace(city)))
	}
	return out
}

func formatMeal(at, meal string, p types.Place) string {
	line := fmt.Sprintf("%s - %s at %s - %s", at, meal, p.Name, p.Location)
	if p.Rating > 0 {
		line += fmt.Sprintf(" (Rating: %s/5)", strconv.FormatFloat(p.Rating, 'f', -1, 64))
	}
	return line
}

// AccommodationNote describes where the traveler sleeps on day.
func AccommodationNote(day, totalDays int, acc types.Accommodation, city string) string {
	stay := stayLabel(acc)
	city = strings.TrimSpace(city)
	switch {
	case day == 1 && totalDays == 1:
		return fmt.Sprintf("Check-in at your %s in %s (final night of your stay)", stay, city)
	case day == 1:
		return fmt.Sprintf("Check-in at your %s in %s", stay, city)
	case day == totalDays:
		return fmt.Sprintf("Final night at your %s in %s", stay, city)
	default:
		return fmt.Sprintf("Continue your stay at %s in %s", stay, city)
	}
}

func formatDuration(d time.Duration) string {
	h := d.Hours()
	if h == 1 {
		return "1 hour"
	}
	return strconv.FormatFloat(h, 'f', -1, 64) + " hours"
}

// uniqueByName concatenates lists, keeping the first place of each name.
func uniqueByName(lists ...[]types.Place) []types.Place {
	seen := make(map[string]bool)
	var out []types.Place
	for _, list := range lists {
		for _, p := range list {
			key := strings.ToLower(strings.TrimSpace(p.Name))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, p)
		}
	}
	return out
}

// rotate returns places starting at offset, wrapping around.
func rotate(places []types.Place, offset int) []types.Place {
	if len(places) == 0 {
		return nil
	}
	offset %= len(places)
	out := make([]types.Place, 0, len(places))
	out = append(out, places[offset:]...)
	return append(out, places[:offset]...)
}
