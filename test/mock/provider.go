// Package mock provides test doubles for the offer engine.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/tripnest/offer-engine/internal/domain"
)

// Provider is a configurable fake implementation of domain.OfferProvider.
// It supports configurable delays, errors, and responses for testing
// scenarios including timeouts and auxiliary-call failures.
type Provider struct {
	name    string
	offers  []domain.FlightOffer
	fares   []domain.FareCalendarEntry
	baggage *domain.BaggageAllowance
	rules   *domain.FareRules
	err     error
	delay   time.Duration

	mu          sync.Mutex
	searchCalls int
	faresCalls  int
}

// NewProvider creates a new fake provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{name: name}
}

// WithOffers configures the provider to return the given offers.
func (p *Provider) WithOffers(offers []domain.FlightOffer) *Provider {
	p.offers = offers
	return p
}

// WithMonthFares configures the provider's fare-calendar answer.
func (p *Provider) WithMonthFares(fares []domain.FareCalendarEntry) *Provider {
	p.fares = fares
	return p
}

// WithBaggage configures the provider's baggage answer.
func (p *Provider) WithBaggage(baggage *domain.BaggageAllowance) *Provider {
	p.baggage = baggage
	return p
}

// WithFareRules configures the provider's fare-rules answer.
func (p *Provider) WithFareRules(rules *domain.FareRules) *Provider {
	p.rules = rules
	return p
}

// WithError configures every call to return the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait before responding.
// This is useful for testing timeout behavior.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name implements domain.OfferProvider.
func (p *Provider) Name() string {
	return p.name
}

// Search implements domain.OfferProvider. It respects context cancellation,
// applies the configured delay, and returns the configured offers or error.
func (p *Provider) Search(ctx context.Context, _ domain.SearchQuery) ([]domain.FlightOffer, error) {
	p.mu.Lock()
	p.searchCalls++
	p.mu.Unlock()

	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.offers, nil
}

// MonthFares implements domain.OfferProvider.
func (p *Provider) MonthFares(ctx context.Context, _ domain.CalendarQuery) ([]domain.FareCalendarEntry, error) {
	p.mu.Lock()
	p.faresCalls++
	p.mu.Unlock()

	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.fares, nil
}

// Baggage implements domain.OfferProvider.
func (p *Provider) Baggage(ctx context.Context, _ map[string]any) (*domain.BaggageAllowance, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.baggage, nil
}

// FareRules implements domain.OfferProvider.
func (p *Provider) FareRules(ctx context.Context, _ map[string]any) (*domain.FareRules, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.rules, nil
}

// SearchCalls returns the number of times Search was called.
func (p *Provider) SearchCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searchCalls
}

// FaresCalls returns the number of times MonthFares was called.
func (p *Provider) FaresCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.faresCalls
}

func (p *Provider) wait(ctx context.Context) error {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay):
		}
	}
	return ctx.Err()
}

// Ensure Provider implements domain.OfferProvider at compile time.
var _ domain.OfferProvider = (*Provider)(nil)
