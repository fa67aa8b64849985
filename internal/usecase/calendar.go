package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripnest/offer-engine/internal/domain"
	"github.com/tripnest/offer-engine/internal/infrastructure/timeutil"
)

// DefaultCalendarWatchdog bounds how long the calendar may report itself
// loading before the flag is cleared.
const DefaultCalendarWatchdog = 12 * time.Second

// DayCell is the render state of one calendar day.
type DayCell struct {
	// Date is the ISO day (YYYY-MM-DD)
	Date string `json:"date"`

	// Loaded distinguishes a day the provider answered for from one it
	// did not mention. An unloaded day shows nothing; a loaded day with
	// a nil Amount shows "no fare".
	Loaded bool `json:"loaded"`

	// Amount is the day's minimum fare, nil when the day has no fare
	Amount *float64 `json:"amount"`

	// Label is the compact form of Amount ("4900", "5k", "1m")
	Label string `json:"label,omitempty"`

	// Currency accompanies Amount
	Currency string `json:"currency,omitempty"`
}

// CalendarSnapshot is a point-in-time view of the calendar state.
type CalendarSnapshot struct {
	// Key identifies the lookup the snapshot belongs to
	Key string `json:"key"`

	// Loading reports whether a fetch is in flight
	Loading bool `json:"loading"`

	// Days holds one cell per day the provider answered for
	Days []DayCell `json:"days"`

	// Min and Max are the extremes over days with a fare, nil when none
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`

	// MinLabel and MaxLabel are the compact forms of Min and Max
	MinLabel string `json:"minLabel,omitempty"`
	MaxLabel string `json:"maxLabel,omitempty"`
}

type dayFare struct {
	amount   *float64
	currency string
}

// FareCalendar caches month fares for exactly one lookup key at a time.
// Responses are tagged with a monotonically increasing request id so a slow
// answer for a superseded request can never overwrite fresher state, and a
// watchdog clears a stuck loading flag without touching cached data. Safe
// for concurrent use.
type FareCalendar struct {
	provider domain.OfferProvider
	clock    timeutil.Clock
	watchdog time.Duration
	log      zerolog.Logger

	mu           sync.Mutex
	key          string
	requestID    uint64
	loading      bool
	stopWatchdog func()
	fares        map[string]dayFare
	dates        []string
	min, max     *float64
}

// NewFareCalendar creates a calendar. A nil clock uses the real one; a
// non-positive watchdog falls back to DefaultCalendarWatchdog.
func NewFareCalendar(provider domain.OfferProvider, clock timeutil.Clock, watchdog time.Duration, log zerolog.Logger) *FareCalendar {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if watchdog <= 0 {
		watchdog = DefaultCalendarWatchdog
	}
	return &FareCalendar{
		provider: provider,
		clock:    clock,
		watchdog: watchdog,
		log:      log.With().Str("usecase", "fare_calendar").Logger(),
	}
}

// Refresh fetches month fares for the query and installs them. A query with
// a new key first invalidates all existing state. Fetch failures are
// swallowed: the calendar keeps whatever it last had.
func (c *FareCalendar) Refresh(ctx context.Context, query domain.CalendarQuery) {
	tag := c.begin(query)

	entries, err := c.provider.MonthFares(ctx, query)
	c.apply(tag, entries, err)
}

// begin prepares state for a fetch and returns the tag the response must
// carry to be applied.
func (c *FareCalendar) begin(query domain.CalendarQuery) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key := query.Key(); key != c.key {
		// Entries cached for one route/month/passenger mix must never
		// leak into another.
		c.key = key
		c.fares = nil
		c.dates = nil
		c.min, c.max = nil, nil
	}

	c.requestID++
	tag := c.requestID
	c.loading = true

	if c.stopWatchdog != nil {
		c.stopWatchdog()
	}
	c.stopWatchdog = c.clock.AfterFunc(c.watchdog, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// Clear only the flag, and only if no newer fetch took over.
		if c.requestID == tag && c.loading {
			c.loading = false
			c.log.Warn().Str("key", c.key).Msg("calendar fetch watchdog fired")
		}
	})

	return tag
}

// apply installs a fetch response. Responses tagged with anything but the
// current request id are discarded untouched.
func (c *FareCalendar) apply(tag uint64, entries []domain.FareCalendarEntry, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tag != c.requestID {
		c.log.Debug().Uint64("tag", tag).Uint64("current", c.requestID).Msg("discarding stale calendar response")
		return
	}

	c.loading = false
	if c.stopWatchdog != nil {
		c.stopWatchdog()
		c.stopWatchdog = nil
	}

	if err != nil {
		c.log.Warn().Err(err).Str("key", c.key).Msg("calendar fetch failed")
		return
	}

	// Wholesale replacement: a day absent from this response is no longer
	// known, even if a previous response priced it.
	c.fares = make(map[string]dayFare, len(entries))
	c.dates = c.dates[:0]
	c.min, c.max = nil, nil

	for _, entry := range entries {
		if entry.Date == "" {
			continue
		}
		if _, ok := c.fares[entry.Date]; !ok {
			c.dates = append(c.dates, entry.Date)
		}

		fare := dayFare{currency: entry.Currency}
		if entry.Amount > 0 {
			amount := entry.Amount
			fare.amount = &amount

			if c.min == nil || amount < *c.min {
				c.min = &amount
			}
			if c.max == nil || amount > *c.max {
				c.max = &amount
			}
		}
		c.fares[entry.Date] = fare
	}
}

// Snapshot returns the calendar state for a query. A query whose key does
// not match the cached one sees an empty, unloaded calendar.
func (c *FareCalendar) Snapshot(query domain.CalendarQuery) CalendarSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := CalendarSnapshot{Key: query.Key()}
	if snap.Key != c.key {
		return snap
	}
	snap.Loading = c.loading

	snap.Days = make([]DayCell, 0, len(c.dates))
	for _, date := range c.dates {
		fare := c.fares[date]
		cell := DayCell{
			Date:     date,
			Loaded:   true,
			Amount:   fare.amount,
			Currency: fare.currency,
		}
		if fare.amount != nil {
			cell.Label = domain.CompactAmount(*fare.amount)
		}
		snap.Days = append(snap.Days, cell)
	}

	if c.min != nil {
		min := *c.min
		snap.Min = &min
		snap.MinLabel = domain.CompactAmount(min)
	}
	if c.max != nil {
		max := *c.max
		snap.Max = &max
		snap.MaxLabel = domain.CompactAmount(max)
	}
	return snap
}

// Cell returns the render state of one day. A day the provider never
// answered for reports Loaded == false.
func (c *FareCalendar) Cell(query domain.CalendarQuery, date string) DayCell {
	c.mu.Lock()
	defer c.mu.Unlock()

	cell := DayCell{Date: date}
	if query.Key() != c.key {
		return cell
	}

	fare, ok := c.fares[date]
	if !ok {
		return cell
	}

	cell.Loaded = true
	cell.Amount = fare.amount
	cell.Currency = fare.currency
	if fare.amount != nil {
		cell.Label = domain.CompactAmount(*fare.amount)
	}
	return cell
}
