package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tripnest/offer-engine/internal/domain"
)

// AlternateDayFare is the cheapest total fare found for a date near the
// searched one. Amount is nil when that day's search failed or came back
// empty; the caller renders such days without a price.
type AlternateDayFare struct {
	// Date is the shifted departure date (YYYY-MM-DD)
	Date string `json:"date"`

	// OffsetDays is the shift relative to the searched date (-1 or +1)
	OffsetDays int `json:"offsetDays"`

	// Amount is the minimum quoted total fare, nil when unknown
	Amount *float64 `json:"amount"`

	// Currency accompanies Amount and is empty when Amount is nil
	Currency string `json:"currency,omitempty"`
}

// AlternateDayUseCase prefetches fares for the days around a search.
type AlternateDayUseCase interface {
	// NearbyFares searches one day before and one day after the query's
	// dates concurrently. Each branch reduces to its own minimum total
	// fare; a failed branch yields a nil amount and never disturbs the
	// other.
	NearbyFares(ctx context.Context, query domain.SearchQuery) []AlternateDayFare
}

type alternateDay struct {
	provider domain.OfferProvider
	log      zerolog.Logger
}

// NewAlternateDay creates the alternate-day prefetcher.
func NewAlternateDay(provider domain.OfferProvider, log zerolog.Logger) AlternateDayUseCase {
	return &alternateDay{
		provider: provider,
		log:      log.With().Str("usecase", "alternate_day").Logger(),
	}
}

// NearbyFares implements AlternateDayUseCase.
func (uc *alternateDay) NearbyFares(ctx context.Context, query domain.SearchQuery) []AlternateDayFare {
	offsets := []int{-1, 1}
	fares := make([]AlternateDayFare, len(offsets))

	var wg sync.WaitGroup
	for i, offset := range offsets {
		shifted := query.Shifted(offset)
		fares[i] = AlternateDayFare{
			Date:       shifted.DepartureDate,
			OffsetDays: offset,
		}

		wg.Add(1)
		go func(i int, q domain.SearchQuery) {
			defer wg.Done()
			amount, currency, ok := uc.minFare(ctx, q)
			if !ok {
				return
			}
			fares[i].Amount = &amount
			fares[i].Currency = currency
		}(i, shifted)
	}
	wg.Wait()

	return fares
}

// minFare searches one shifted day and reduces to the cheapest quoted total
// fare. Failures are logged and swallowed; alternate days are an
// enhancement, never an error surface.
func (uc *alternateDay) minFare(ctx context.Context, query domain.SearchQuery) (float64, string, bool) {
	offers, err := uc.provider.Search(ctx, query)
	if err != nil {
		uc.log.Debug().Err(err).Str("date", query.DepartureDate).Msg("alternate-day search failed")
		return 0, "", false
	}
	if len(offers) == 0 {
		return 0, "", false
	}

	min := offers[0].Pricing.TotalFare
	currency := offers[0].Pricing.Currency
	for _, offer := range offers[1:] {
		if offer.Pricing.TotalFare < min {
			min = offer.Pricing.TotalFare
			currency = offer.Pricing.Currency
		}
	}
	return min, currency, true
}

var _ AlternateDayUseCase = (*alternateDay)(nil)
