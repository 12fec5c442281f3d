package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/container"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	parisGeocode = `{"results":[{"geometry":{"location":{"lat":48.8566,"lng":2.3522}}}],"status":"OK"}`
	noResults    = `{"results":[],"status":"ZERO_RESULTS"}`
)

var parisNearby = map[string]string{
	"tourist_attraction": `{"status":"OK","results":[
		{"name":"Eiffel Tower","vicinity":"Champ de Mars","rating":4.7,"types":["tourist_attraction"]},
		{"name":"Louvre Museum","vicinity":"Rue de Rivoli","rating":4.8,"types":["museum","tourist_attraction"]},
		{"name":"Jardin du Luxembourg","vicinity":"6th arrondissement","rating":4.7,"types":["park"]},
		{"name":"Gloomy Car Park","vicinity":"Périphérique","rating":2.0,"types":["parking"]}
	]}`,
	"restaurant": `{"status":"OK","results":[
		{"name":"Le Comptoir","vicinity":"Odéon","rating":4.5,"types":["restaurant","food"]},
		{"name":"Bouillon Chartier","vicinity":"Grands Boulevards","rating":4.3,"types":["restaurant"]}
	]}`,
	"cafe": `{"status":"OK","results":[
		{"name":"Café de Flore","vicinity":"Saint-Germain","rating":4.2,"types":["cafe","food"]}
	]}`,
}

// ItineraryE2ETestSuite runs the full HTTP stack against fake place and AI providers.
type ItineraryE2ETestSuite struct {
	suite.Suite
	server    *httptest.Server
	mapsSrv   *httptest.Server
	aiSrv     *httptest.Server
	container *container.Container

	geocodeCalls atomic.Int32
	nearbyCalls  atomic.Int32
	aiCalls      atomic.Int32
}

func (s *ItineraryE2ETestSuite) SetupSuite() {
	logger := slog.New(slog.DiscardHandler)

	mapsMux := http.NewServeMux()
	mapsMux.HandleFunc("/maps/api/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		s.geocodeCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(strings.ToLower(r.URL.Query().Get("address")), "paris") {
			_, _ = io.WriteString(w, parisGeocode)
			return
		}
		_, _ = io.WriteString(w, noResults)
	})
	mapsMux.HandleFunc("/maps/api/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		s.nearbyCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		body, ok := parisNearby[r.URL.Query().Get("type")]
		if !ok {
			body = noResults
		}
		_, _ = io.WriteString(w, body)
	})
	s.mapsSrv = httptest.NewServer(mapsMux)

	s.aiSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.aiCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"cmpl-e2e","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"summary\": \"Paris on a plate, from bistro to boulevard.\"}"},"finish_reason":"stop"}]}`)
	}))

	cfg := config.Default()
	cfg.Places.Provider = "google"
	cfg.Places.BaseURL = s.mapsSrv.URL
	cfg.Cache.Backend = "memory"
	cfg.AI.Provider = "perplexity"
	cfg.AI.BaseURL = s.aiSrv.URL
	cfg.AI.Timeout = 2 * time.Second
	cfg.Server.RateLimit.Requests = 0
	secrets := config.Secrets{GoogleMapsAPIKey: "AIza-e2e", PerplexityAPIKey: "pplx-e2e"}

	c, err := container.NewContainer(context.Background(), &cfg, secrets, logger, nil)
	s.Require().NoError(err)
	s.container = c
	s.server = httptest.NewServer(newHTTPHandler(&cfg, c, logger))
}

func (s *ItineraryE2ETestSuite) TearDownSuite() {
	s.server.Close()
	s.container.Close()
	s.aiSrv.Close()
	s.mapsSrv.Close()
}

func (s *ItineraryE2ETestSuite) post(body interface{}) *http.Response {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		s.Require().NoError(json.NewEncoder(&buf).Encode(b))
	}
	resp, err := s.server.Client().Post(s.server.URL+itinerary.Route, "application/json", &buf)
	s.Require().NoError(err)
	return resp
}

func (s *ItineraryE2ETestSuite) decodeDoc(resp *http.Response) types.ItineraryDocument {
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var doc types.ItineraryDocument
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&doc))
	return doc
}

func (s *ItineraryE2ETestSuite) TestGenerateItineraryWorkflow() {
	doc := s.decodeDoc(s.post(types.TripRequest{
		City:           "Paris",
		Budget:         50000,
		Days:           3,
		Travelers:      2,
		Interests:      []string{types.InterestFoodDining},
		Accommodation:  types.AccommodationHotel,
		Transportation: "metro",
	}))

	s.Equal("Paris", doc.City)
	s.Equal("INR", doc.Currency)
	s.Equal("Paris on a plate, from bistro to boulevard.", doc.Summary)
	s.InDelta(19999.2, doc.TotalBudget, 1e-6)
	s.Require().Len(doc.Days, 3)
	s.Contains(doc.Days[0].Accommodation, "Check-in")
	s.Contains(doc.Days[2].Accommodation, "Final night")
	s.Len(doc.EmergencyContacts, 8)
	s.LessOrEqual(len(doc.Tips), 8)

	var activities []string
	for _, d := range doc.Days {
		s.Len(d.Meals, 3)
		s.LessOrEqual(d.EstimatedCost, 16666.0)
		activities = append(activities, d.Activities...)
	}
	joined := strings.Join(activities, "\n")
	s.Contains(joined, "Eiffel Tower")
	s.Contains(joined, "Café de Flore")
	s.NotContains(joined, "Gloomy Car Park")
	s.Contains(doc.Days[0].Meals[0], "Le Comptoir")
}

func (s *ItineraryE2ETestSuite) TestRepeatRequestsUseCache() {
	req := types.TripRequest{City: "Paris", Budget: 10000, Days: 1, Travelers: 1, Interests: []string{types.InterestFoodDining}}

	s.decodeDoc(s.post(req))
	afterFirst := s.nearbyCalls.Load()
	s.decodeDoc(s.post(req))

	s.Equal(afterFirst, s.nearbyCalls.Load(), "second request should be served from cache")
}

func (s *ItineraryE2ETestSuite) TestUnknownCityUsesPlaceholders() {
	doc := s.decodeDoc(s.post(types.TripRequest{City: "Agra", Budget: 30000, Days: 2, Travelers: 2}))

	s.Require().Len(doc.Days, 2)
	for _, d := range doc.Days {
		s.NotEmpty(d.Activities)
		for _, a := range d.Activities {
			s.Contains(a, "Agra")
		}
		s.Len(d.Meals, 3)
	}
}

func (s *ItineraryE2ETestSuite) TestErrorHandlingWorkflow() {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantError  string
	}{
		{"missing city", http.MethodPost, `{"budget":100,"days":1,"travelers":1}`, http.StatusBadRequest, "Invalid input parameters"},
		{"negative budget", http.MethodPost, `{"city":"Paris","budget":-1,"days":1,"travelers":1}`, http.StatusBadRequest, "Invalid input parameters"},
		{"too many days", http.MethodPost, `{"city":"Paris","budget":100,"days":31,"travelers":1}`, http.StatusBadRequest, "Invalid input parameters"},
		{"malformed json", http.MethodPost, `{"city":`, http.StatusInternalServerError, "Internal server error"},
		{"get", http.MethodGet, "", http.StatusMethodNotAllowed, "Method not allowed"},
		{"put", http.MethodPut, `{}`, http.StatusMethodNotAllowed, "Method not allowed"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req, err := http.NewRequest(tt.method, s.server.URL+itinerary.Route, strings.NewReader(tt.body))
			s.Require().NoError(err)
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.server.Client().Do(req)
			s.Require().NoError(err)
			defer resp.Body.Close()

			s.Equal(tt.wantStatus, resp.StatusCode)
			var body map[string]interface{}
			s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
			s.Equal(tt.wantError, body["error"])
			s.Equal(false, body["success"])
			s.NotEmpty(body["request_id"])
		})
	}
}

func (s *ItineraryE2ETestSuite) TestPreflightAndHealth() {
	req, err := http.NewRequest(http.MethodOptions, s.server.URL+itinerary.Route, nil)
	s.Require().NoError(err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal("http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = s.server.Client().Get(s.server.URL + "/ping")
	s.Require().NoError(err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("pong", string(body))
}

func (s *ItineraryE2ETestSuite) TestConcurrentRequests() {
	const n = 20
	var wg sync.WaitGroup
	ids := make(chan string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			city := "Paris"
			if i%2 == 1 {
				city = "Rome"
			}
			body, _ := json.Marshal(types.TripRequest{City: city, Budget: 20000, Days: 1 + i%4, Travelers: 1})
			resp, err := s.server.Client().Post(s.server.URL+itinerary.Route, "application/json", bytes.NewReader(body))
			if !assert.NoError(s.T(), err) {
				return
			}
			defer resp.Body.Close()
			var doc types.ItineraryDocument
			if assert.Equal(s.T(), http.StatusOK, resp.StatusCode) && assert.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&doc)) {
				assert.Equal(s.T(), city, doc.City)
				assert.Len(s.T(), doc.Days, 1+i%4)
				ids <- doc.ID.String()
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		s.False(seen[id], "duplicate itinerary id %s", id)
		seen[id] = true
	}
	s.Len(seen, n)
}

func TestE2E(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping end-to-end tests in short mode")
	}
	suite.Run(t, new(ItineraryE2ETestSuite))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]string{"city": "Café & Co"}))
	assert.Equal(t, "{\n  \"city\": \"Café & Co\"\n}\n", buf.String())
}
