package gds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripnest/offer-engine/internal/domain"
)

// decodeItinerary parses a JSON itinerary into the generic map form the
// normalizer consumes.
func decodeItinerary(t *testing.T, doc string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &raw))
	return raw
}

// fullItinerary is a two-segment one-way itinerary with an array-form
// pricing block and a complete tax breakdown.
const fullItinerary = `{
	"AirItinerary": {
		"OriginDestinationOptions": {
			"OriginDestinationOption": [
				{
					"ElapsedTime": 330,
					"FlightSegment": [
						{
							"DepartureAirport": {"LocationCode": "DAC"},
							"ArrivalAirport": {"LocationCode": "CCU"},
							"DepartureDateTime": "2026-03-15T08:00:00",
							"ArrivalDateTime": "2026-03-15T09:10:00",
							"MarketingAirline": {"Code": "BG"},
							"OperatingAirline": {"Code": "BG"},
							"FlightNumber": "395",
							"ResBookDesigCode": "Y",
							"Equipment": {"AirEquipType": "738"},
							"TPA_Extensions": {"SeatsRemaining": {"Number": 4}}
						},
						{
							"DepartureAirport": {"LocationCode": "CCU"},
							"ArrivalAirport": {"LocationCode": "DEL"},
							"DepartureDateTime": "2026-03-15T11:25:00",
							"ArrivalDateTime": "2026-03-15T13:30:00",
							"MarketingAirline": {"Code": "BG"},
							"FlightNumber": "397"
						}
					]
				}
			]
		}
	},
	"AirItineraryPricingInfo": [
		{
			"ItinTotalFare": {
				"BaseFare": {"Amount": 9500, "CurrencyCode": "BDT"},
				"Taxes": {
					"TotalTax": {"Amount": 2100, "CurrencyCode": "BDT"},
					"Tax": [
						{"TaxCode": "BD", "Amount": 500, "CurrencyCode": "BDT", "TaxName": "Embarkation fee"},
						{"TaxCode": "UT", "Amount": 300},
						{"TaxCode": "E5", "Amount": 200},
						{"TaxCode": "OW", "Amount": 1100},
						{"TaxCode": "XX", "Amount": 0}
					]
				},
				"TotalFare": {"Amount": 11600, "CurrencyCode": "BDT"}
			},
			"TPA_Extensions": {
				"BaggageAllowance": {"Checkin": "20 Kg", "Cabin": "7 Kg"},
				"Refundable": true
			},
			"FareInfos": {
				"FareInfo": [{"TPA_Extensions": {"FareBrandName": "Economy Saver", "Cabin": {"Cabin": "Y"}}}]
			}
		}
	]
}`

func TestNormalizeItinerary_Full(t *testing.T) {
	offer, err := normalizeItinerary(decodeItinerary(t, fullItinerary))
	require.NoError(t, err)

	require.Len(t, offer.Legs, 1)
	require.Len(t, offer.Legs[0].Segments, 2)
	assert.Equal(t, 1, offer.StopCount())
	assert.Equal(t, 330, offer.ElapsedMinutes())
	assert.Equal(t, "BG", offer.PrimaryAirline())
	assert.Equal(t, "2h 15m at CCU", offer.Legs[0].LayoverLabel())

	assert.Equal(t, "BDT", offer.Pricing.Currency)
	assert.Equal(t, 9500.0, offer.Pricing.BaseFare)
	assert.Equal(t, 2100.0, offer.Pricing.TaxTotal)
	assert.Equal(t, 11600.0, offer.Pricing.TotalFare)
	assert.Equal(t, "Economy Saver", offer.Pricing.FareBrand)
	assert.Equal(t, "Y", offer.Pricing.CabinCode)
	require.NotNil(t, offer.Pricing.Refundable)
	assert.True(t, *offer.Pricing.Refundable)

	// The zero-amount XX line is dropped; the rest map in order.
	require.Len(t, offer.Pricing.Taxes, 4)
	assert.Equal(t, "BD", offer.Pricing.Taxes[0].Code)
	assert.Equal(t, 500.0, offer.Pricing.Taxes[0].Amount)
	assert.Equal(t, "Embarkation fee", offer.Pricing.Taxes[0].Description)
	// Line without its own currency inherits the tax-total currency.
	assert.Equal(t, "BDT", offer.Pricing.Taxes[1].Currency)

	// Segment-level seats win.
	require.NotNil(t, offer.SeatsRemaining)
	assert.Equal(t, 4, *offer.SeatsRemaining)

	require.NotNil(t, offer.Pricing.Baggage.Checkin)
	require.NotNil(t, offer.Pricing.Baggage.Cabin)
	assert.Equal(t, "20 Kg • 7 Kg", offer.Pricing.Baggage.Label())

	assert.NotNil(t, offer.RawPricing)
}

func TestNormalizeItinerary_SingleObjectPricingInfo(t *testing.T) {
	raw := decodeItinerary(t, `{
		"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": {
			"ElapsedTime": 65,
			"FlightSegment": {
				"DepartureAirport": {"LocationCode": "DAC"},
				"ArrivalAirport": {"LocationCode": "CXB"},
				"DepartureDateTime": "2026-03-15T08:00:00",
				"ArrivalDateTime": "2026-03-15T09:05:00",
				"MarketingAirline": {"Code": "BS"},
				"FlightNumber": "141"
			}
		}}},
		"AirItineraryPricingInfo": {
			"ItinTotalFare": {"TotalFare": {"Amount": 5400, "CurrencyCode": "BDT"}}
		}
	}`)

	offer, err := normalizeItinerary(raw)
	require.NoError(t, err)

	assert.Equal(t, 0, offer.StopCount())
	assert.Equal(t, "Direct", offer.Legs[0].LayoverLabel())
	assert.Equal(t, "BS", offer.PrimaryAirline())
	assert.Equal(t, 5400.0, offer.Pricing.TotalFare)
	assert.Nil(t, offer.SeatsRemaining)
}

func TestNormalizeItinerary_MissingPricingExcluded(t *testing.T) {
	raw := decodeItinerary(t, `{
		"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [{
			"FlightSegment": [{"DepartureAirport": {"LocationCode": "DAC"}, "ArrivalAirport": {"LocationCode": "CXB"}}]
		}]}}
	}`)

	_, err := normalizeItinerary(raw)
	assert.ErrorIs(t, err, domain.ErrMissingPricing)
}

func TestNormalizeItinerary_ZeroFareExcluded(t *testing.T) {
	raw := decodeItinerary(t, `{
		"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [{
			"FlightSegment": [{"DepartureAirport": {"LocationCode": "DAC"}, "ArrivalAirport": {"LocationCode": "CXB"}}]
		}]}},
		"AirItineraryPricingInfo": {"ItinTotalFare": {"TotalFare": {"Amount": 0}}}
	}`)

	_, err := normalizeItinerary(raw)
	assert.ErrorIs(t, err, domain.ErrMissingPricing)
}

func TestNormalizeItinerary_NoSegmentsExcluded(t *testing.T) {
	raw := decodeItinerary(t, `{
		"AirItineraryPricingInfo": {"ItinTotalFare": {"TotalFare": {"Amount": 5000}}}
	}`)

	_, err := normalizeItinerary(raw)
	assert.Error(t, err)
}

func TestNormalizeItinerary_SeatsFallbackOrder(t *testing.T) {
	t.Run("fare-info extension when segments carry none", func(t *testing.T) {
		raw := decodeItinerary(t, `{
			"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [{
				"FlightSegment": [{"DepartureAirport": {"LocationCode": "DAC"}, "ArrivalAirport": {"LocationCode": "CXB"}}]
			}]}},
			"AirItineraryPricingInfo": {
				"ItinTotalFare": {"TotalFare": {"Amount": 5000}},
				"FareInfos": {"FareInfo": [{"TPA_Extensions": {"SeatsRemaining": {"Number": 7}}}]}
			}
		}`)

		offer, err := normalizeItinerary(raw)
		require.NoError(t, err)
		require.NotNil(t, offer.SeatsRemaining)
		assert.Equal(t, 7, *offer.SeatsRemaining)
	})

	t.Run("fare-breakdown extension as last resort", func(t *testing.T) {
		raw := decodeItinerary(t, `{
			"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [{
				"FlightSegment": [{"DepartureAirport": {"LocationCode": "DAC"}, "ArrivalAirport": {"LocationCode": "CXB"}}]
			}]}},
			"AirItineraryPricingInfo": {
				"ItinTotalFare": {"TotalFare": {"Amount": 5000}},
				"PTC_FareBreakdowns": {"PTC_FareBreakdown": [{"TPA_Extensions": {"SeatsRemaining": {"Number": 2}}}]}
			}
		}`)

		offer, err := normalizeItinerary(raw)
		require.NoError(t, err)
		require.NotNil(t, offer.SeatsRemaining)
		assert.Equal(t, 2, *offer.SeatsRemaining)
	})
}

func TestNormalizeItinerary_BaggageSegmentFallback(t *testing.T) {
	// Baggage data lives only in the segment-level extension; every
	// higher-priority location is absent.
	raw := decodeItinerary(t, `{
		"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [{
			"FlightSegment": [
				{"DepartureAirport": {"LocationCode": "DAC"}, "ArrivalAirport": {"LocationCode": "CCU"}},
				{
					"DepartureAirport": {"LocationCode": "CCU"},
					"ArrivalAirport": {"LocationCode": "DEL"},
					"TPA_Extensions": {"Baggage": {"Checkin": "30 Kg", "Cabin": "7 Kg"}}
				}
			]
		}]}},
		"AirItineraryPricingInfo": {"ItinTotalFare": {"TotalFare": {"Amount": 9000}}}
	}`)

	offer, err := normalizeItinerary(raw)
	require.NoError(t, err)

	require.NotNil(t, offer.Pricing.Baggage.Checkin)
	require.NotNil(t, offer.Pricing.Baggage.Cabin)
	assert.Equal(t, "30 Kg", *offer.Pricing.Baggage.Checkin)
	assert.Equal(t, "7 Kg", *offer.Pricing.Baggage.Cabin)
}

func TestNormalizeItinerary_BaggageItemizedFallback(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  string
	}{
		{name: "pieces win", block: `{"Allowance": {"Pieces": 2, "Weight": 40}}`, want: "2 Pc"},
		{name: "weight next", block: `{"Allowance": {"Weight": 25}}`, want: "25 Kg"},
		{name: "description last", block: `{"Allowance": {"Description": "As per fare rules"}}`, want: "As per fare rules"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decodeItinerary(t, `{
				"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [{
					"FlightSegment": [{"DepartureAirport": {"LocationCode": "DAC"}, "ArrivalAirport": {"LocationCode": "CXB"}}]
				}]}},
				"AirItineraryPricingInfo": {
					"ItinTotalFare": {"TotalFare": {"Amount": 5000}},
					"TPA_Extensions": {"BaggageInformationList": {"BaggageInformation": [`+tt.block+`]}}
				}
			}`)

			offer, err := normalizeItinerary(raw)
			require.NoError(t, err)
			require.NotNil(t, offer.Pricing.Baggage.Checkin)
			assert.Equal(t, tt.want, *offer.Pricing.Baggage.Checkin)
		})
	}
}

func TestNormalizeItinerary_TaxSingleObject(t *testing.T) {
	raw := decodeItinerary(t, `{
		"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [{
			"FlightSegment": [{"DepartureAirport": {"LocationCode": "DAC"}, "ArrivalAirport": {"LocationCode": "CXB"}}]
		}]}},
		"AirItineraryPricingInfo": {
			"ItinTotalFare": {
				"TotalFare": {"Amount": 5000},
				"Taxes": {"Tax": {"TaxCode": "BD", "Amount": 725}}
			}
		}
	}`)

	offer, err := normalizeItinerary(raw)
	require.NoError(t, err)

	require.Len(t, offer.Pricing.Taxes, 1)
	assert.Equal(t, "BD", offer.Pricing.Taxes[0].Code)
	assert.Equal(t, 725.0, offer.Pricing.Taxes[0].Amount)
	// No currency anywhere in the chain falls back to BDT.
	assert.Equal(t, "BDT", offer.Pricing.Taxes[0].Currency)
}

func TestNormalizeItinerary_Deterministic(t *testing.T) {
	raw := decodeItinerary(t, fullItinerary)

	first, err := normalizeItinerary(raw)
	require.NoError(t, err)
	second, err := normalizeItinerary(raw)
	require.NoError(t, err)

	// IDs are freshly generated; everything else must match structurally.
	first.ID, second.ID = "", ""
	assert.Equal(t, first, second)
}

func TestNormalize_SkipsBrokenItineraries(t *testing.T) {
	good := decodeItinerary(t, fullItinerary)
	noPricing := decodeItinerary(t, `{
		"AirItinerary": {"OriginDestinationOptions": {"OriginDestinationOption": [{
			"FlightSegment": [{"DepartureAirport": {"LocationCode": "DAC"}, "ArrivalAirport": {"LocationCode": "CXB"}}]
		}]}}
	}`)

	offers := normalize([]any{good, noPricing, "not an object", nil})
	assert.Len(t, offers, 1)
}
