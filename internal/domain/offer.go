// Package domain contains the core business entities and rules for the flight
// offer engine. These entities are provider-agnostic and form the foundation
// upon which all other components are built.
package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Segment is a single flown flight number between two airports.
type Segment struct {
	// Origin is the IATA code of the departure airport (e.g., "DAC")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "CXB")
	Destination string `json:"destination"`

	// Departure is the scheduled departure time
	Departure time.Time `json:"departure"`

	// Arrival is the scheduled arrival time
	Arrival time.Time `json:"arrival"`

	// MarketingCarrier is the IATA code of the selling airline (e.g., "BG")
	MarketingCarrier string `json:"marketingCarrier"`

	// OperatingCarrier is the IATA code of the airline flying the aircraft.
	// Often equal to MarketingCarrier; empty when the provider omits it.
	OperatingCarrier string `json:"operatingCarrier,omitempty"`

	// FlightNumber is the airline's flight number (e.g., "435")
	FlightNumber string `json:"flightNumber"`

	// BookingClass is the reservation booking designator (e.g., "Y")
	BookingClass string `json:"bookingClass,omitempty"`

	// Equipment is the aircraft type code (e.g., "738")
	Equipment string `json:"equipment,omitempty"`

	// SeatsRemaining is the number of seats left at this fare on this
	// segment. Nil when the provider does not report it.
	SeatsRemaining *int `json:"seatsRemaining,omitempty"`
}

// Leg is one directional portion of a trip (outbound, return, or one
// multi-city hop), composed of one or more segments flown in order.
type Leg struct {
	// Segments is the ordered sequence of flown segments
	Segments []Segment `json:"segments"`

	// ElapsedMinutes is the provider-declared elapsed time for the whole
	// leg, including layovers. Zero when unknown.
	ElapsedMinutes int `json:"elapsedMinutes"`
}

// Stops returns the number of intermediate stops on this leg.
// A leg with a missing or empty segment list contributes zero.
func (l Leg) Stops() int {
	if len(l.Segments) <= 1 {
		return 0
	}
	return len(l.Segments) - 1
}

// LayoverLabel describes every layover on the leg as
// "{hours}h {minutes}m at {airport}", joined with ", ". Both components are
// always present ("2h 0m at DAC", never "2h at DAC").
// A leg with fewer than two segments yields "Direct".
func (l Leg) LayoverLabel() string {
	if len(l.Segments) < 2 {
		return "Direct"
	}

	parts := make([]string, 0, len(l.Segments)-1)
	for i := 0; i < len(l.Segments)-1; i++ {
		cur := l.Segments[i]
		next := l.Segments[i+1]

		minutes := int(next.Departure.Sub(cur.Arrival).Round(time.Minute) / time.Minute)
		if minutes < 0 {
			minutes = 0
		}
		label := strconv.Itoa(minutes/60) + "h " + strconv.Itoa(minutes%60) + "m"
		parts = append(parts, label+" at "+cur.Destination)
	}
	return strings.Join(parts, ", ")
}

// TaxLine is one entry of a passenger fare's tax breakdown.
// Codes are not guaranteed unique; duplicates must be summed where used.
type TaxLine struct {
	// Code is the tax code (e.g., "BD", "UT", "E5")
	Code string `json:"code"`

	// Amount is the tax amount, always non-negative
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code of the amount
	Currency string `json:"currency"`

	// Description is an optional human-readable explanation
	Description string `json:"description,omitempty"`
}

// BaggageAllowance holds the checked-in and cabin baggage allowances as
// free-text provider values (e.g., "20 Kg", "2 Pc"). Nil means unknown.
type BaggageAllowance struct {
	Checkin *string `json:"checkin"`
	Cabin   *string `json:"cabin"`
}

// Label returns the combined display label: "{checkin} • {cabin}" when both
// sides are present, the single present value otherwise, or "" when neither
// is known.
func (b BaggageAllowance) Label() string {
	switch {
	case b.Checkin != nil && b.Cabin != nil:
		return *b.Checkin + " • " + *b.Cabin
	case b.Checkin != nil:
		return *b.Checkin
	case b.Cabin != nil:
		return *b.Cabin
	default:
		return ""
	}
}

// PricingInfo contains all pricing data attached to one offer.
type PricingInfo struct {
	// Currency is the ISO 4217 currency code for all amounts
	Currency string `json:"currency"`

	// BaseFare is the fare amount before taxes
	BaseFare float64 `json:"baseFare"`

	// TaxTotal is the total tax amount
	TaxTotal float64 `json:"taxTotal"`

	// TotalFare is the grand total (base fare + taxes)
	TotalFare float64 `json:"totalFare"`

	// Taxes is the ordered tax breakdown
	Taxes []TaxLine `json:"taxes,omitempty"`

	// Baggage is the resolved baggage allowance
	Baggage BaggageAllowance `json:"baggage"`

	// Refundable is nil when the provider does not say either way
	Refundable *bool `json:"refundable,omitempty"`

	// FareBrand is the branded fare name (e.g., "Economy Saver")
	FareBrand string `json:"fareBrand,omitempty"`

	// CabinCode is the cabin class code (e.g., "Y", "C")
	CabinCode string `json:"cabinCode,omitempty"`
}

// FlightOffer is one priced, bookable flight option returned by the search
// provider, normalized into canonical form. Stop count, elapsed time, and
// airline code are always derived from the legs, never stored.
type FlightOffer struct {
	// ID is a unique identifier for this offer (generated internally)
	ID string `json:"id"`

	// Legs is the ordered list of directional journeys. Length 1 for
	// one-way, 2 for round-trip, more for multi-city.
	Legs []Leg `json:"legs"`

	// Pricing contains all fare, tax, and baggage data
	Pricing PricingInfo `json:"pricing"`

	// SeatsRemaining is the lowest seats-remaining figure the provider
	// reports for this offer; nil when no source carries one.
	SeatsRemaining *int `json:"seatsRemaining,omitempty"`

	// RawPricing preserves the provider's pricing block verbatim. Clients
	// post it back for lazy detail lookups (baggage, fare rules), so it
	// must survive serialization, including the result-cache round trip.
	RawPricing map[string]any `json:"rawPricing,omitempty"`
}

// Valid reports whether the offer is structurally usable: at least one leg,
// and every leg has at least one segment.
func (o FlightOffer) Valid() bool {
	if len(o.Legs) == 0 {
		return false
	}
	for _, leg := range o.Legs {
		if len(leg.Segments) == 0 {
			return false
		}
	}
	return true
}

// StopCount returns the total number of intermediate stops across all legs.
func (o FlightOffer) StopCount() int {
	total := 0
	for _, leg := range o.Legs {
		total += leg.Stops()
	}
	return total
}

// ElapsedMinutes returns the total declared elapsed time across all legs.
// Legs with unknown elapsed time contribute zero.
func (o FlightOffer) ElapsedMinutes() int {
	total := 0
	for _, leg := range o.Legs {
		total += leg.ElapsedMinutes
	}
	return total
}

// PrimaryAirline returns the marketing carrier of the first segment of the
// first leg, or "" when the offer has no segments.
func (o FlightOffer) PrimaryAirline() string {
	if len(o.Legs) == 0 || len(o.Legs[0].Segments) == 0 {
		return ""
	}
	return o.Legs[0].Segments[0].MarketingCarrier
}

// FormatDuration formats a minute count as "Xh Ym", "Xh", or "Ym".
func FormatDuration(totalMinutes int) string {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	switch {
	case hours > 0 && mins > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
	case hours > 0:
		return strconv.Itoa(hours) + "h"
	default:
		return strconv.Itoa(mins) + "m"
	}
}

// CompactAmount renders a fare amount for tight spaces such as calendar
// cells: values of at least one million as "{n}m", at least one thousand as
// "{n}k", everything else as a plain integer.
func CompactAmount(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return strconv.Itoa(int(math.Round(amount/1_000_000))) + "m"
	case amount >= 1_000:
		return strconv.Itoa(int(math.Round(amount/1_000))) + "k"
	default:
		return strconv.Itoa(int(math.Round(amount)))
	}
}
