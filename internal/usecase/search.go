package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripnest/offer-engine/internal/cache"
	"github.com/tripnest/offer-engine/internal/domain"
)

// DefaultSearchTimeout bounds one upstream search.
const DefaultSearchTimeout = 30 * time.Second

// SearchMetadata describes how a result set was produced.
type SearchMetadata struct {
	// TotalResults counts offers before filtering
	TotalResults int `json:"totalResults"`

	// FilteredResults counts offers after filtering
	FilteredResults int `json:"filteredResults"`

	// SearchDurationMs is the wall time of the whole operation
	SearchDurationMs int64 `json:"searchDurationMs"`

	// CacheHit reports whether offers came from the result cache
	CacheHit bool `json:"cacheHit"`

	// Provider names the upstream that produced the offers
	Provider string `json:"provider"`
}

// SearchResult is the outcome of one offer search: the filtered, sorted
// offers plus the unfiltered stats used for badges.
type SearchResult struct {
	Offers   []domain.FlightOffer
	Stats    RankingStats
	Airlines []string
	Metadata SearchMetadata
}

// OfferSearchUseCase defines the search operation exposed to transports.
type OfferSearchUseCase interface {
	// Search normalizes a query, resolves offers (cache first, provider on
	// miss), and returns them filtered and sorted per opts.
	Search(ctx context.Context, query domain.SearchQuery, opts SearchOptions) (*SearchResult, error)
}

type offerSearch struct {
	provider domain.OfferProvider
	results  cache.ResultCache
	timeout  time.Duration
	log      zerolog.Logger
}

// NewOfferSearch creates the search use case. A nil results cache disables
// caching; a non-positive timeout falls back to DefaultSearchTimeout.
func NewOfferSearch(provider domain.OfferProvider, results cache.ResultCache, timeout time.Duration, log zerolog.Logger) OfferSearchUseCase {
	if results == nil {
		results = cache.NewNoOpCache()
	}
	if timeout <= 0 {
		timeout = DefaultSearchTimeout
	}
	return &offerSearch{
		provider: provider,
		results:  results,
		timeout:  timeout,
		log:      log.With().Str("usecase", "offer_search").Logger(),
	}
}

// Search implements OfferSearchUseCase.
func (uc *offerSearch) Search(ctx context.Context, query domain.SearchQuery, opts SearchOptions) (*SearchResult, error) {
	start := time.Now()

	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	offers, cacheHit := uc.results.Get(ctx, query)
	if !cacheHit {
		var err error
		offers, err = uc.provider.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		if err := uc.results.Set(ctx, query, offers); err != nil {
			uc.log.Warn().Err(err).Msg("failed to cache search results")
		}
	}

	// Badges and sort-control stats come from the unfiltered set, so a
	// stop or airline filter never relabels a pricier offer as cheapest.
	stats := ComputeStats(offers)
	airlines := AvailableAirlines(offers)

	filtered := ApplyFilters(offers, opts.Filters)
	sorted := make([]domain.FlightOffer, len(filtered))
	copy(sorted, filtered)
	SortOffers(sorted, opts.SortBy)

	uc.log.Debug().
		Int("total", len(offers)).
		Int("filtered", len(sorted)).
		Bool("cache_hit", cacheHit).
		Msg("search completed")

	return &SearchResult{
		Offers:   sorted,
		Stats:    stats,
		Airlines: airlines,
		Metadata: SearchMetadata{
			TotalResults:     len(offers),
			FilteredResults:  len(sorted),
			SearchDurationMs: time.Since(start).Milliseconds(),
			CacheHit:         cacheHit,
			Provider:         uc.provider.Name(),
		},
	}, nil
}

var _ OfferSearchUseCase = (*offerSearch)(nil)
