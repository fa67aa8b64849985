package domain

import "strings"

// SortOption defines the available display orderings for offer results.
type SortOption string

// Available sort options.
const (
	// SortCheapest orders by total fare ascending (default)
	SortCheapest SortOption = "cheapest"

	// SortFastest orders by total elapsed minutes ascending; offers with
	// unknown elapsed time sort last
	SortFastest SortOption = "fastest"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortCheapest, SortFastest:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption.
// Returns SortCheapest if the string is empty or unknown.
func ParseSortOption(s string) SortOption {
	option := SortOption(strings.ToLower(s))
	if option.IsValid() {
		return option
	}
	return SortCheapest
}

// StopFilter selects offers by their total stop count.
type StopFilter string

// Available stop filters.
const (
	// StopsAll applies no stop filtering
	StopsAll StopFilter = "all"

	// StopsDirect keeps only non-stop offers
	StopsDirect StopFilter = "direct"

	// StopsOne keeps only offers with exactly one stop
	StopsOne StopFilter = "one"

	// StopsMulti keeps only offers with two or more stops
	StopsMulti StopFilter = "multi"
)

// IsValid checks if the stop filter is a known value.
func (s StopFilter) IsValid() bool {
	switch s {
	case StopsAll, StopsDirect, StopsOne, StopsMulti:
		return true
	default:
		return false
	}
}

// ParseStopFilter converts a string to a StopFilter.
// Returns StopsAll if the string is empty or unknown.
func ParseStopFilter(s string) StopFilter {
	filter := StopFilter(strings.ToLower(s))
	if filter.IsValid() {
		return filter
	}
	return StopsAll
}

// Matches reports whether an offer with the given stop count passes.
func (s StopFilter) Matches(stops int) bool {
	switch s {
	case StopsDirect:
		return stops == 0
	case StopsOne:
		return stops == 1
	case StopsMulti:
		return stops >= 2
	default:
		return true
	}
}

// FilterOptions defines the filters applied to an offer result set.
// Filters are conjunctive and never mutate the canonical offer list.
type FilterOptions struct {
	// Stops selects offers by total stop count ("" means all)
	Stops StopFilter `json:"stops,omitempty"`

	// Airlines keeps only offers whose primary airline code is in this
	// set. An empty set passes every offer.
	Airlines []string `json:"airlines,omitempty"`
}

// MatchesOffer checks if an offer passes all filter criteria.
func (f *FilterOptions) MatchesOffer(offer FlightOffer) bool {
	if f == nil {
		return true
	}

	if !f.Stops.Matches(offer.StopCount()) {
		return false
	}

	// Airline filter (case-insensitive matching)
	if len(f.Airlines) > 0 {
		code := strings.ToUpper(offer.PrimaryAirline())
		found := false
		for _, a := range f.Airlines {
			if strings.ToUpper(a) == code {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
