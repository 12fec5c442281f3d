package itinerary

import (
	"time"
)

const clockLayout = "3:04 PM"

type Slot struct {
	Start string
	End   string
	Label string
}

type SlotPattern []Slot

var slotPatterns = map[int]SlotPattern{
	1: {
		{Start: "8:00 AM", End: "10:00 AM", Label: "Early Morning"},
		{Start: "10:30 AM", End: "12:30 PM", Label: "Late Morning"},
		{Start: "2:00 PM", End: "4:00 PM", Label: "Afternoon"},
		{Start: "4:30 PM", End: "6:30 PM", Label: "Late Afternoon"},
		{Start: "7:00 PM", End: "9:00 PM", Label: "Evening"},
	},
	2: {
		{Start: "9:30 AM", End: "11:30 AM", Label: "Morning"},
		{Start: "12:00 PM", End: "2:00 PM", Label: "Midday"},
		{Start: "3:00 PM", End: "5:00 PM", Label: "Afternoon"},
		{Start: "5:30 PM", End: "7:30 PM", Label: "Evening"},
		{Start: "8:00 PM", End: "10:00 PM", Label: "Night"},
	},
	3: {
		{Start: "10:00 AM", End: "12:00 PM", Label: "Late Morning"},
		{Start: "1:00 PM", End: "3:00 PM", Label: "Early Afternoon"},
		{Start: "4:00 PM", End: "6:00 PM", Label: "Late Afternoon"},
		{Start: "6:30 PM", End: "8:30 PM", Label: "Evening"},
		{Start: "9:00 PM", End: "11:00 PM", Label: "Late Night"},
	},
}

// SlotPatternFor returns the time slots for day. Days past the third reuse
// the first day's pattern.
func SlotPatternFor(day int) SlotPattern {
	if p, ok := slotPatterns[day]; ok {
		return p
	}
	return slotPatterns[1]
}

type mealTimes struct {
	Breakfast string
	Lunch     string
	Dinner    string
}

var mealSchedule = [3]mealTimes{
	{Breakfast: "7:30 AM", Lunch: "12:30 PM", Dinner: "7:30 PM"},
	{Breakfast: "8:30 AM", Lunch: "1:30 PM", Dinner: "8:00 PM"},
	{Breakfast: "8:00 AM", Lunch: "1:00 PM", Dinner: "7:00 PM"},
}

func mealTimesFor(day int) mealTimes {
	return mealSchedule[(day-1)%len(mealSchedule)]
}

// minutes converts a "3:04 PM" clock reading to minutes past midnight.
// Table values are fixed, so a parse failure sorts last.
func minutes(clock string) int {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 24 * 60
	}
	return t.Hour()*60 + t.Minute()
}

type window struct {
	from, to int
}

func newWindow(start string, length time.Duration) window {
	from := minutes(start)
	return window{from: from, to: from + int(length.Minutes())}
}

func slotWindow(s Slot) window {
	return window{from: minutes(s.Start), to: minutes(s.End)}
}

func (w window) overlaps(o window) bool {
	return w.from < o.to && o.from < w.to
}
