// Package http provides the HTTP handler layer for the offer engine API.
package http

import (
	"strings"

	"github.com/tripnest/offer-engine/internal/domain"
	"github.com/tripnest/offer-engine/internal/usecase"
)

// ToDomainQuery converts a SearchOffersRequest to a domain.SearchQuery.
func ToDomainQuery(req *SearchOffersRequest) domain.SearchQuery {
	query := domain.SearchQuery{
		TripType:      domain.TripType(strings.ToLower(req.TripType)),
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
	}

	for _, seg := range req.Segments {
		query.Segments = append(query.Segments, domain.TripSegment{
			Origin:        strings.ToUpper(seg.Origin),
			Destination:   strings.ToUpper(seg.Destination),
			DepartureDate: seg.Date,
		})
	}

	if req.Travellers != nil {
		query.Travellers = domain.TravellerCounts{
			Adults:   req.Travellers.Adults,
			Children: req.Travellers.Children,
			Kids:     req.Travellers.Kids,
			Infants:  req.Travellers.Infants,
		}
	}
	query.Travellers.Class = strings.ToLower(req.Class)

	query.SetDefaults()
	return query
}

// ToDomainFilters converts a FilterDTO to domain.FilterOptions.
func ToDomainFilters(dto *FilterDTO) *domain.FilterOptions {
	if dto == nil {
		return nil
	}

	return &domain.FilterOptions{
		Stops:    domain.ParseStopFilter(dto.Stops),
		Airlines: dto.Airlines,
	}
}

// ToSearchOptions converts request fields to usecase.SearchOptions.
func ToSearchOptions(req *SearchOffersRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters: ToDomainFilters(req.Filters),
		SortBy:  domain.ParseSortOption(req.SortBy),
	}
}

// ToCalendarQuery converts a CalendarRequest to a domain.CalendarQuery.
func ToCalendarQuery(req *CalendarRequest) domain.CalendarQuery {
	adults := req.Adults
	if adults < 1 {
		adults = 1
	}
	cabin := strings.ToLower(req.Cabin)
	if cabin == "" {
		cabin = "economy"
	}

	return domain.CalendarQuery{
		Origin:      strings.ToUpper(req.Origin),
		Destination: strings.ToUpper(req.Destination),
		Month:       req.Month,
		Adults:      adults,
		Cabin:       cabin,
	}
}
