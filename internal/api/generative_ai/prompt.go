package generativeAI

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const defaultTemperature float32 = 0.7

// SummaryPrompt asks for a short trip overview as a JSON object with a
// single "summary" field.
func SummaryPrompt(req types.TripRequest, interests []string, budget string) string {
	travelers := "traveler"
	if req.Travelers > 1 {
		travelers = "travelers"
	}
	transport := strings.TrimSpace(req.Transportation)
	if transport == "" {
		transport = "local"
	}
	accommodation := strings.ToLower(strings.TrimSpace(string(req.Accommodation)))
	if accommodation == "" {
		accommodation = string(types.AccommodationHotel)
	}

	return fmt.Sprintf(`Write a short, upbeat overview of a %d-day trip to %s.

Budget: %s total for %d %s
Accommodation preference: %s
Transportation preference: %s
Interests: %s

Use two or three sentences. Mention the city and the interests, do not list a daily schedule and do not invent prices.
Respond only with a JSON object of the form {"summary": "..."}.`,
		req.Days, strings.TrimSpace(req.City), budget, req.Travelers, travelers,
		accommodation, transport, strings.Join(interests, ", "))
}

// parseSummary extracts the summary field from a model reply. Replies that
// are not the requested JSON are used as plain text.
func parseSummary(reply string) string {
	cleaned := cleanJSONResponse(reply)

	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(cleaned), &out); err == nil {
		return strings.TrimSpace(out.Summary)
	}
	return cleaned
}

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	// Remove markdown code block markers
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}
	lastBrace := strings.LastIndex(response, "}")
	if lastBrace <= firstBrace {
		return response
	}
	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}
