package domain

import (
	"fmt"
	"regexp"
	"time"
)

// TripType identifies the shape of a search.
type TripType string

// Supported trip types.
const (
	TripOneWay    TripType = "oneway"
	TripRoundTrip TripType = "round"
	TripMultiCity TripType = "multicity"
)

// IsValid checks if the trip type is a known value.
func (t TripType) IsValid() bool {
	switch t {
	case TripOneWay, TripRoundTrip, TripMultiCity:
		return true
	default:
		return false
	}
}

// TravellerCounts is the passenger composition of a search.
type TravellerCounts struct {
	// Adults is the number of adult passengers (at least 1)
	Adults int `json:"adults"`

	// Children is the number of child passengers
	Children int `json:"children"`

	// Kids is the number of young-child passengers (a separate provider
	// age band between children and infants)
	Kids int `json:"kids"`

	// Infants is the number of lap infants
	Infants int `json:"infants"`

	// Class is the cabin class: economy, business, or first
	Class string `json:"class"`
}

// Total returns the seated passenger count (infants excluded).
func (tc TravellerCounts) Total() int {
	return tc.Adults + tc.Children + tc.Kids
}

// TripSegment is one requested hop of a multi-city search.
type TripSegment struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
}

// SearchQuery defines the parameters for a flight search request.
type SearchQuery struct {
	// Origin is the IATA code of the departure airport (e.g., "DAC")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "CXB")
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the inbound date for round trips, empty otherwise
	ReturnDate string `json:"returnDate,omitempty"`

	// TripType is oneway, round, or multicity
	TripType TripType `json:"tripType"`

	// Segments holds the requested hops for multi-city searches
	Segments []TripSegment `json:"segments,omitempty"`

	// Travellers is the passenger composition
	Travellers TravellerCounts `json:"travellers"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validClasses defines the allowed cabin classes.
var validClasses = map[string]bool{
	"economy":  true,
	"business": true,
	"first":    true,
}

// Validate checks if the search query is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (q *SearchQuery) Validate() error {
	if !q.TripType.IsValid() {
		return fmt.Errorf("%w: tripType must be one of: oneway, round, multicity; got %q", ErrInvalidRequest, q.TripType)
	}

	if q.TripType == TripMultiCity {
		if len(q.Segments) < 2 {
			return fmt.Errorf("%w: multicity searches need at least 2 segments", ErrInvalidRequest)
		}
		for i, s := range q.Segments {
			if !airportCodeRegex.MatchString(s.Origin) {
				return fmt.Errorf("%w: segments[%d].origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, i, s.Origin)
			}
			if !airportCodeRegex.MatchString(s.Destination) {
				return fmt.Errorf("%w: segments[%d].destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, i, s.Destination)
			}
			if err := validateDate(fmt.Sprintf("segments[%d].departureDate", i), s.DepartureDate); err != nil {
				return err
			}
		}
	} else {
		if !airportCodeRegex.MatchString(q.Origin) {
			return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, q.Origin)
		}
		if !airportCodeRegex.MatchString(q.Destination) {
			return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, q.Destination)
		}
		if q.Origin == q.Destination {
			return fmt.Errorf("%w: origin and destination must be different", ErrInvalidRequest)
		}
		if err := validateDate("departureDate", q.DepartureDate); err != nil {
			return err
		}
		if q.TripType == TripRoundTrip {
			if err := validateDate("returnDate", q.ReturnDate); err != nil {
				return err
			}
		}
	}

	if q.Travellers.Adults < 1 {
		return fmt.Errorf("%w: travellers.adults must be at least 1", ErrInvalidRequest)
	}
	if q.Travellers.Total() > 9 {
		return fmt.Errorf("%w: seated travellers cannot exceed 9", ErrInvalidRequest)
	}
	if q.Travellers.Infants > q.Travellers.Adults {
		return fmt.Errorf("%w: travellers.infants cannot exceed travellers.adults", ErrInvalidRequest)
	}
	if q.Travellers.Class != "" && !validClasses[q.Travellers.Class] {
		return fmt.Errorf("%w: class must be one of: economy, business, first; got %q", ErrInvalidRequest, q.Travellers.Class)
	}

	return nil
}

func validateDate(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
	}
	if !dateRegex.MatchString(value) {
		return fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, field, value)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%w: %s is not a valid date: %s", ErrInvalidRequest, field, value)
	}
	return nil
}

// SetDefaults applies default values to empty optional fields.
func (q *SearchQuery) SetDefaults() {
	if q.TripType == "" {
		q.TripType = TripOneWay
	}
	if q.Travellers.Adults == 0 {
		q.Travellers.Adults = 1
	}
	if q.Travellers.Class == "" {
		q.Travellers.Class = "economy"
	}
}

// Shifted returns a copy of the query with every travel date moved by the
// given number of days. For multi-city searches all segment dates shift
// uniformly. Dates that fail to parse are carried over unchanged.
func (q SearchQuery) Shifted(days int) SearchQuery {
	out := q
	out.DepartureDate = shiftDate(q.DepartureDate, days)
	if q.ReturnDate != "" {
		out.ReturnDate = shiftDate(q.ReturnDate, days)
	}
	if len(q.Segments) > 0 {
		out.Segments = make([]TripSegment, len(q.Segments))
		copy(out.Segments, q.Segments)
		for i := range out.Segments {
			out.Segments[i].DepartureDate = shiftDate(out.Segments[i].DepartureDate, days)
		}
	}
	return out
}

func shiftDate(date string, days int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}
