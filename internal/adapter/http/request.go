// Package http provides the HTTP handler layer for the offer engine API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SearchOffersRequest represents the request body for an offer search.
type SearchOffersRequest struct {
	// TripType is one of: oneway, round, multicity (defaults to oneway)
	TripType string `json:"tripType,omitempty"`

	// Origin is the IATA code of the departure airport (e.g., "DAC")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "CXB")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the return date for round trips (YYYY-MM-DD)
	ReturnDate string `json:"returnDate,omitempty"`

	// Segments lists the legs of a multi-city trip
	Segments []TripSegmentDTO `json:"segments,omitempty"`

	// Travellers holds the passenger mix (defaults to 1 adult)
	Travellers *TravellersDTO `json:"travellers,omitempty"`

	// Class is the cabin class: economy, business, or first (optional)
	Class string `json:"class,omitempty"`

	// Filters contains optional filtering criteria
	Filters *FilterDTO `json:"filters,omitempty"`

	// SortBy specifies how to sort results: cheapest or fastest
	SortBy string `json:"sortBy,omitempty"`
}

// TripSegmentDTO is one leg of a multi-city request.
type TripSegmentDTO struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

// TravellersDTO is the passenger mix of a request.
type TravellersDTO struct {
	// Adults is the adult count (12+ years, at least 1)
	Adults int `json:"adults"`

	// Children is the child count (5-11 years)
	Children int `json:"children,omitempty"`

	// Kids is the kid count (2-4 years)
	Kids int `json:"kids,omitempty"`

	// Infants is the lap-infant count (under 2, no seat)
	Infants int `json:"infants,omitempty"`
}

// FilterDTO represents optional filters for an offer search.
// Example: {"stops": "direct", "airlines": ["BG", "BS"]}
type FilterDTO struct {
	// Stops filters by stop count: all, direct, one, multi
	Stops string `json:"stops,omitempty" example:"direct"`

	// Airlines filters to offers marketed by these airline codes
	Airlines []string `json:"airlines,omitempty" example:"BG,BS"`
}

// CalendarRequest represents the request body for a fare calendar.
type CalendarRequest struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination"`

	// Month is the calendar month in YYYY-MM format
	Month string `json:"month"`

	// Adults is the adult passenger count (defaults to 1)
	Adults int `json:"adults,omitempty"`

	// Cabin is the cabin class (defaults to economy)
	Cabin string `json:"cabin,omitempty"`
}

// DetailRequest represents a lazy detail lookup (baggage, fare rules)
// keyed by the raw pricing-info object of one offer.
type DetailRequest struct {
	PricingInfo map[string]interface{} `json:"pricingInfo"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthPattern       = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// Valid travel classes.
var validClasses = map[string]bool{
	"economy":  true,
	"business": true,
	"first":    true,
	"":         true, // Empty is valid (defaults to economy)
}

// Valid sort options.
var validSortOptions = map[string]bool{
	"cheapest": true,
	"fastest":  true,
	"":         true, // Empty is valid (defaults to cheapest)
}

// Valid stop filters.
var validStopFilters = map[string]bool{
	"all":    true,
	"direct": true,
	"one":    true,
	"multi":  true,
	"":       true, // Empty is valid (defaults to all)
}

// Valid trip types.
var validTripTypes = map[string]bool{
	"oneway":    true,
	"round":     true,
	"multicity": true,
	"":          true, // Empty is valid (defaults to oneway)
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request and returns any validation errors.
func (r *SearchOffersRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateTripType(errs)

	if strings.ToLower(r.TripType) == "multicity" {
		r.validateSegments(errs)
	} else {
		r.validateRoute(errs)
	}

	r.validateTravellers(errs)
	r.validateClass(errs)
	r.validateSortBy(errs)
	r.validateFilters(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchOffersRequest) validateTripType(errs *ValidationErrors) {
	if !validTripTypes[strings.ToLower(r.TripType)] {
		errs.Add("tripType", "tripType must be one of: oneway, round, multicity")
	}
}

func (r *SearchOffersRequest) validateRoute(errs *ValidationErrors) {
	validateAirport(errs, "origin", &r.Origin)
	validateAirport(errs, "destination", &r.Destination)

	if r.Origin != "" && strings.EqualFold(r.Origin, r.Destination) {
		errs.Add("destination", "origin and destination must be different")
	}

	validateDate(errs, "departureDate", r.DepartureDate, true)

	if strings.ToLower(r.TripType) == "round" {
		validateDate(errs, "returnDate", r.ReturnDate, true)
	} else if r.ReturnDate != "" {
		validateDate(errs, "returnDate", r.ReturnDate, false)
	}
}

func (r *SearchOffersRequest) validateSegments(errs *ValidationErrors) {
	if len(r.Segments) < 2 {
		errs.Add("segments", "multicity trips need at least 2 segments")
		return
	}

	for i := range r.Segments {
		seg := &r.Segments[i]
		prefix := fmt.Sprintf("segments[%d]", i)

		validateAirport(errs, prefix+".origin", &seg.Origin)
		validateAirport(errs, prefix+".destination", &seg.Destination)
		if seg.Origin != "" && strings.EqualFold(seg.Origin, seg.Destination) {
			errs.Add(prefix+".destination", "origin and destination must be different")
		}
		validateDate(errs, prefix+".date", seg.Date, true)
	}
}

func (r *SearchOffersRequest) validateTravellers(errs *ValidationErrors) {
	if r.Travellers == nil {
		return
	}

	t := r.Travellers
	if t.Adults < 1 {
		errs.Add("travellers.adults", "at least 1 adult is required")
	}
	if t.Children < 0 || t.Kids < 0 || t.Infants < 0 {
		errs.Add("travellers", "traveller counts cannot be negative")
		return
	}
	if t.Adults+t.Children+t.Kids > 9 {
		errs.Add("travellers", "seated travellers cannot exceed 9")
	}
	if t.Infants > t.Adults {
		errs.Add("travellers.infants", "each infant needs an accompanying adult")
	}
}

func (r *SearchOffersRequest) validateClass(errs *ValidationErrors) {
	if !validClasses[strings.ToLower(r.Class)] {
		errs.Add("class", "class must be one of: economy, business, first")
	}
}

func (r *SearchOffersRequest) validateSortBy(errs *ValidationErrors) {
	if !validSortOptions[strings.ToLower(r.SortBy)] {
		errs.Add("sortBy", "sortBy must be one of: cheapest, fastest")
	}
}

func (r *SearchOffersRequest) validateFilters(errs *ValidationErrors) {
	if r.Filters == nil {
		return
	}

	if !validStopFilters[strings.ToLower(r.Filters.Stops)] {
		errs.Add("filters.stops", "stops must be one of: all, direct, one, multi")
	}

	for i, airline := range r.Filters.Airlines {
		normalized := strings.ToUpper(strings.TrimSpace(airline))
		if len(normalized) < 2 || len(normalized) > 3 {
			errs.Add(fmt.Sprintf("filters.airlines[%d]", i),
				"airline code must be 2 or 3 characters")
		}
		r.Filters.Airlines[i] = normalized
	}
}

// Validate validates the calendar request.
func (r *CalendarRequest) Validate() error {
	errs := &ValidationErrors{}

	validateAirport(errs, "origin", &r.Origin)
	validateAirport(errs, "destination", &r.Destination)

	if r.Month == "" {
		errs.Add("month", "month is required")
	} else if !monthPattern.MatchString(r.Month) {
		errs.Add("month", "month must be in YYYY-MM format")
	}

	if r.Adults < 0 || r.Adults > 9 {
		errs.Add("adults", "adults must be between 0 and 9")
	}
	if !validClasses[strings.ToLower(r.Cabin)] {
		errs.Add("cabin", "cabin must be one of: economy, business, first")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates the detail request.
func (r *DetailRequest) Validate() error {
	errs := &ValidationErrors{}
	if len(r.PricingInfo) == 0 {
		errs.Add("pricingInfo", "pricingInfo is required")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateAirport checks a 3-letter IATA code and normalizes it to uppercase.
func validateAirport(errs *ValidationErrors, field string, code *string) {
	if *code == "" {
		errs.Add(field, field+" is required")
		return
	}

	normalized := strings.ToUpper(*code)
	if !airportCodePattern.MatchString(normalized) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
		return
	}
	*code = normalized
}

// validateDate checks a YYYY-MM-DD date string.
func validateDate(errs *ValidationErrors, field, value string, required bool) {
	if value == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return
	}

	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return
	}

	if _, err := time.Parse("2006-01-02", value); err != nil {
		errs.Add(field, field+" is not a valid date")
	}
}
