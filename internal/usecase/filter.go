package usecase

import "github.com/tripnest/offer-engine/internal/domain"

// ApplyFilters returns the offers that pass every criterion in opts. The
// input slice is never mutated; a nil opts passes everything through.
func ApplyFilters(offers []domain.FlightOffer, opts *domain.FilterOptions) []domain.FlightOffer {
	if opts == nil {
		return offers
	}

	filtered := make([]domain.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if opts.MatchesOffer(offer) {
			filtered = append(filtered, offer)
		}
	}
	return filtered
}

// AvailableAirlines returns the distinct marketing carriers present in the
// offers, in first-seen order, for building filter controls.
func AvailableAirlines(offers []domain.FlightOffer) []string {
	seen := make(map[string]struct{})
	var airlines []string
	for _, offer := range offers {
		code := offer.PrimaryAirline()
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		airlines = append(airlines, code)
	}
	return airlines
}
