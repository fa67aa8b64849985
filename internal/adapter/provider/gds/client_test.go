package gds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripnest/offer-engine/internal/domain"
	"github.com/tripnest/offer-engine/internal/infrastructure/logger"
)

// newTestClient points a client at the given test server with fast retries.
func newTestClient(serverURL string) *Client {
	c := NewClient(Config{BaseURL: serverURL, Timeout: 2 * time.Second}, logger.Nop())
	c.retryCfg.InitialDelay = time.Millisecond
	c.retryCfg.MaxDelay = 2 * time.Millisecond
	return c
}

func testQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Origin:        "DAC",
		Destination:   "CXB",
		DepartureDate: "2026-03-15",
		TripType:      domain.TripOneWay,
		Travellers:    domain.TravellerCounts{Adults: 1, Class: "economy"},
	}
}

// searchEnvelope wraps itineraries in the provider's response shape.
func searchEnvelope(itineraries ...any) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"OTA_AirLowFareSearchRS": map[string]any{
				"PricedItineraries": map[string]any{
					"PricedItinerary": itineraries,
				},
			},
		},
	}
}

func minimalItinerary(carrier string, amount float64) map[string]any {
	return map[string]any{
		"AirItinerary": map[string]any{
			"OriginDestinationOptions": map[string]any{
				"OriginDestinationOption": []any{
					map[string]any{
						"ElapsedTime": 65,
						"FlightSegment": []any{
							map[string]any{
								"DepartureAirport":  map[string]any{"LocationCode": "DAC"},
								"ArrivalAirport":    map[string]any{"LocationCode": "CXB"},
								"DepartureDateTime": "2026-03-15T08:00:00",
								"ArrivalDateTime":   "2026-03-15T09:05:00",
								"MarketingAirline":  map[string]any{"Code": carrier},
								"FlightNumber":      "141",
							},
						},
					},
				},
			},
		},
		"AirItineraryPricingInfo": map[string]any{
			"ItinTotalFare": map[string]any{
				"TotalFare": map[string]any{"Amount": amount, "CurrencyCode": "BDT"},
			},
		},
	}
}

func TestClient_Search_Success(t *testing.T) {
	var gotBody searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flights/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(searchEnvelope(
			minimalItinerary("BG", 5400),
			minimalItinerary("BS", 4800),
		))
	}))
	defer server.Close()

	offers, err := newTestClient(server.URL).Search(context.Background(), testQuery())
	require.NoError(t, err)

	assert.Len(t, offers, 2)
	assert.Equal(t, "BG", offers[0].PrimaryAirline())
	assert.Equal(t, 4800.0, offers[1].Pricing.TotalFare)

	assert.Equal(t, "DAC", gotBody.Origin)
	assert.Equal(t, "oneway", gotBody.TripType)
	assert.Equal(t, 1, gotBody.Travellers.Adults)
}

func TestClient_Search_EmptyResultIsNoFlights(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchEnvelope())
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), testQuery())
	assert.ErrorIs(t, err, domain.ErrNoFlightsFound)
}

func TestClient_Search_MissingItinerariesIsNoFlights(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), testQuery())
	assert.ErrorIs(t, err, domain.ErrNoFlightsFound)
}

func TestClient_Search_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(searchEnvelope(minimalItinerary("BG", 5400)))
	}))
	defer server.Close()

	offers, err := newTestClient(server.URL).Search(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Search_SurfacesProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "route not supported"},
		})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), testQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route not supported")
	assert.False(t, domain.IsRetryable(err))
}

func TestClient_Search_TransportFailureIsRetryableProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Search(context.Background(), testQuery())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestClient_MonthFares(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fares/calendar", r.URL.Path)

		var q domain.CalendarQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, "2026-03", q.Month)

		json.NewEncoder(w).Encode(map[string]any{
			"fares": []map[string]any{
				{"date": "2026-03-01", "amount": 5200, "currency": "BDT"},
				{"date": "2026-03-02", "amount": 4900, "currency": "BDT"},
			},
		})
	}))
	defer server.Close()

	fares, err := newTestClient(server.URL).MonthFares(context.Background(), domain.CalendarQuery{
		Origin: "DAC", Destination: "CXB", Month: "2026-03", Adults: 1, Cabin: "economy",
	})
	require.NoError(t, err)

	require.Len(t, fares, 2)
	assert.Equal(t, "2026-03-01", fares[0].Date)
	assert.Equal(t, 4900.0, fares[1].Amount)
}

func TestClient_Baggage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flights/baggage", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"baggage": map[string]any{"checkin": "20 Kg", "cabin": "7 Kg"},
		})
	}))
	defer server.Close()

	baggage, err := newTestClient(server.URL).Baggage(context.Background(), map[string]any{"fare": "x"})
	require.NoError(t, err)

	require.NotNil(t, baggage.Checkin)
	assert.Equal(t, "20 Kg", *baggage.Checkin)
}

func TestClient_FareRules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flights/rules", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"rules": map[string]any{
				"cancellation": "BDT 2000 before departure",
				"dateChange":   "BDT 1500 plus fare difference",
				"noShow":       "Non-refundable",
			},
		})
	}))
	defer server.Close()

	rules, err := newTestClient(server.URL).FareRules(context.Background(), map[string]any{"fare": "x"})
	require.NoError(t, err)

	assert.Equal(t, "BDT 2000 before departure", rules.Cancellation)
	assert.Equal(t, "Non-refundable", rules.NoShow)
}

func TestClient_Name(t *testing.T) {
	assert.Equal(t, ProviderName, newTestClient("http://unused").Name())
}
