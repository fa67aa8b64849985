// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tripnest/offer-engine/internal/domain"
)

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// OfferBuilder assembles domain.FlightOffer values for tests.
type OfferBuilder struct {
	offer domain.FlightOffer
}

// NewOffer starts a builder with a fresh ID, one empty leg, and BDT pricing.
func NewOffer() *OfferBuilder {
	return &OfferBuilder{offer: domain.FlightOffer{
		ID:      uuid.New().String(),
		Legs:    []domain.Leg{{}},
		Pricing: domain.PricingInfo{Currency: "BDT"},
	}}
}

// WithSegment appends a segment to the first leg.
func (b *OfferBuilder) WithSegment(origin, destination, carrier string) *OfferBuilder {
	b.offer.Legs[0].Segments = append(b.offer.Legs[0].Segments, domain.Segment{
		Origin:           origin,
		Destination:      destination,
		MarketingCarrier: carrier,
	})
	return b
}

// WithElapsed sets the first leg's duration in minutes.
func (b *OfferBuilder) WithElapsed(minutes int) *OfferBuilder {
	b.offer.Legs[0].ElapsedMinutes = minutes
	return b
}

// WithFare sets the total fare.
func (b *OfferBuilder) WithFare(amount float64) *OfferBuilder {
	b.offer.Pricing.TotalFare = amount
	return b
}

// WithTax appends one tax line.
func (b *OfferBuilder) WithTax(code string, amount float64) *OfferBuilder {
	b.offer.Pricing.Taxes = append(b.offer.Pricing.Taxes, domain.TaxLine{Code: code, Amount: amount})
	return b
}

// WithSeats sets the remaining-seat count.
func (b *OfferBuilder) WithSeats(seats int) *OfferBuilder {
	b.offer.SeatsRemaining = &seats
	return b
}

// WithBaggage sets the checked-in and cabin allowances.
func (b *OfferBuilder) WithBaggage(checkin, cabin string) *OfferBuilder {
	b.offer.Pricing.Baggage = domain.BaggageAllowance{Checkin: &checkin, Cabin: &cabin}
	return b
}

// WithRawPricing attaches the provider's raw pricing block.
func (b *OfferBuilder) WithRawPricing(raw map[string]any) *OfferBuilder {
	b.offer.RawPricing = raw
	return b
}

// Build returns the assembled offer.
func (b *OfferBuilder) Build() domain.FlightOffer {
	return b.offer
}
