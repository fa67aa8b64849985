package domain

import "fmt"

// FareCalendarEntry is the minimum fare known for one day of a month.
type FareCalendarEntry struct {
	// Date is the ISO date (YYYY-MM-DD)
	Date string `json:"date"`

	// Amount is the minimum total fare for that day
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code of the amount
	Currency string `json:"currency"`
}

// CalendarQuery identifies one fare-calendar lookup. Entries cached for one
// key must never be blended with another key's entries.
type CalendarQuery struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination"`

	// Month is the visible month in YYYY-MM format
	Month string `json:"month"`

	// Adults is the adult passenger count
	Adults int `json:"adults"`

	// Cabin is the cabin class
	Cabin string `json:"cabin"`
}

// Key returns a canonical identity string for the lookup. Two queries with
// the same key may share cached entries; any difference invalidates them.
func (q CalendarQuery) Key() string {
	return fmt.Sprintf("%s:%s:%s:%d:%s", q.Origin, q.Destination, q.Month, q.Adults, q.Cabin)
}

// FareRules holds the lazily fetched penalty rules for one offer.
type FareRules struct {
	Cancellation string `json:"cancellation"`
	DateChange   string `json:"dateChange"`
	NoShow       string `json:"noShow"`
}
