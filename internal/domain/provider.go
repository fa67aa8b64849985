package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// OfferProvider is the upstream GDS-style search provider.
// Implementations must be safe for concurrent use.
type OfferProvider interface {
	// Name returns the provider's unique identifier.
	Name() string

	// Search runs a flight search and returns normalized offers.
	// A successful call with zero itineraries returns ErrNoFlightsFound;
	// transport failures return a *ProviderError.
	Search(ctx context.Context, query SearchQuery) ([]FlightOffer, error)

	// MonthFares returns the per-day minimum fares for one calendar month.
	MonthFares(ctx context.Context, query CalendarQuery) ([]FareCalendarEntry, error)

	// Baggage lazily fetches the baggage allowance for one offer's raw
	// pricing block, used when the normalized offer carries none.
	Baggage(ctx context.Context, pricing map[string]any) (*BaggageAllowance, error)

	// FareRules lazily fetches cancellation and change penalties for one
	// offer's raw pricing block.
	FareRules(ctx context.Context, pricing map[string]any) (*FareRules, error)
}
