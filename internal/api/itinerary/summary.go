package itinerary

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Currency is the display policy for budgets. Incoming budgets are
// multiplied by Rate before any allocation happens.
type Currency struct {
	Code   string
	Symbol string
	Locale string
	Rate   float64
}

var DefaultCurrency = Currency{Code: "INR", Symbol: "₹", Locale: "en-IN", Rate: 1}

func (c Currency) Convert(amount float64) float64 {
	if c.Rate <= 0 {
		return amount
	}
	return amount * c.Rate
}

// Format renders amount with the locale's digit grouping.
func (c Currency) Format(amount float64) string {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return c.Symbol + p.Sprint(number.Decimal(amount, number.MaxFractionDigits(2)))
}

func stayLabel(acc types.Accommodation) string {
	if s := strings.ToLower(strings.TrimSpace(string(acc))); s != "" {
		return s
	}
	return string(types.AccommodationHotel)
}

// TemplateSummary is the summary used when no narrator is configured or the
// narrator fails.
func TemplateSummary(req types.TripRequest, interests []string, budget float64, cur Currency) string {
	transport := strings.TrimSpace(req.Transportation)
	if transport == "" {
		transport = "local"
	}
	return fmt.Sprintf(
		"Experience the magic of %s with this carefully crafted %d-day itinerary! Discover %s while enjoying %s accommodations and %s transportation. Your adventure is perfectly planned to fit within your %s budget.",
		strings.TrimSpace(req.City), req.Days, strings.Join(interests, ", "), stayLabel(req.Accommodation), transport, cur.Format(budget),
	)
}
