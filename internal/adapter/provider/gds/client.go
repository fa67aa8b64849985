// Package gds is the adapter for the upstream GDS-style search provider.
// It issues HTTP searches and normalizes the provider's loosely-typed
// itinerary payloads into domain offers.
package gds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tripnest/offer-engine/internal/domain"
	"github.com/tripnest/offer-engine/internal/infrastructure/lookup"
	"github.com/tripnest/offer-engine/internal/infrastructure/retry"
)

// ProviderName is the unique identifier for this provider.
const ProviderName = "gds"

// Client talks to the upstream search provider. It implements
// domain.OfferProvider and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retryCfg   retry.Config
	log        zerolog.Logger
}

// Config holds client settings.
type Config struct {
	// BaseURL is the provider's API root, without a trailing slash.
	BaseURL string

	// Timeout bounds each HTTP call.
	Timeout time.Duration

	// RequestsPerSecond limits the call rate to the provider.
	// Zero disables rate limiting.
	RequestsPerSecond float64
}

// NewClient creates a provider client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}

	retryCfg := retry.ProviderConfig
	retryCfg.RetryIf = domain.IsRetryable

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		retryCfg:   retryCfg,
		log:        log.With().Str("provider", ProviderName).Logger(),
	}
}

// Name implements domain.OfferProvider.
func (c *Client) Name() string {
	return ProviderName
}

// searchRequest is the wire form of a search sent upstream.
type searchRequest struct {
	Origin        string               `json:"origin,omitempty"`
	Destination   string               `json:"destination,omitempty"`
	DepartureDate string               `json:"departureDate,omitempty"`
	ReturnDate    string               `json:"returnDate,omitempty"`
	TripType      string               `json:"tripType"`
	Segments      []domain.TripSegment `json:"segments,omitempty"`
	Travellers    struct {
		Adults   int    `json:"adults"`
		Children int    `json:"children"`
		Kids     int    `json:"kids"`
		Infants  int    `json:"infants"`
		Class    string `json:"class"`
	} `json:"travellers"`
}

// Search implements domain.OfferProvider. A successful provider answer with
// zero itineraries yields domain.ErrNoFlightsFound; transport failures wrap
// into a *domain.ProviderError with the provider's message when present.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) ([]domain.FlightOffer, error) {
	req := searchRequest{
		Origin:        query.Origin,
		Destination:   query.Destination,
		DepartureDate: query.DepartureDate,
		ReturnDate:    query.ReturnDate,
		TripType:      string(query.TripType),
		Segments:      query.Segments,
	}
	req.Travellers.Adults = query.Travellers.Adults
	req.Travellers.Children = query.Travellers.Children
	req.Travellers.Kids = query.Travellers.Kids
	req.Travellers.Infants = query.Travellers.Infants
	req.Travellers.Class = query.Travellers.Class

	body, err := retry.Do(ctx, c.retryCfg, func() (map[string]any, error) {
		return c.post(ctx, "/flights/search", req)
	})
	if err != nil {
		return nil, err
	}

	itineraries := lookup.AsSlice(lookup.First(body, []string{
		"data.OTA_AirLowFareSearchRS.PricedItineraries.PricedItinerary",
		"OTA_AirLowFareSearchRS.PricedItineraries.PricedItinerary",
	}, nil))
	if len(itineraries) == 0 {
		return nil, domain.ErrNoFlightsFound
	}

	offers := normalize(itineraries)
	if len(offers) == 0 {
		return nil, domain.ErrNoFlightsFound
	}

	c.log.Debug().
		Int("itineraries", len(itineraries)).
		Int("offers", len(offers)).
		Msg("search normalized")
	return offers, nil
}

// calendarResponse is the wire form of a fare-calendar answer.
type calendarResponse struct {
	Fares []domain.FareCalendarEntry `json:"fares"`
}

// MonthFares implements domain.OfferProvider.
func (c *Client) MonthFares(ctx context.Context, query domain.CalendarQuery) ([]domain.FareCalendarEntry, error) {
	body, err := c.postRaw(ctx, "/fares/calendar", query)
	if err != nil {
		return nil, err
	}

	var resp calendarResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("decode calendar response: %w", err))
	}
	return resp.Fares, nil
}

// Baggage implements domain.OfferProvider. It is called lazily, only when
// the normalized offer carries no baggage allowance.
func (c *Client) Baggage(ctx context.Context, pricing map[string]any) (*domain.BaggageAllowance, error) {
	body, err := c.postRaw(ctx, "/flights/baggage", map[string]any{"pricingInfo": pricing})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Baggage domain.BaggageAllowance `json:"baggage"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("decode baggage response: %w", err))
	}
	return &resp.Baggage, nil
}

// FareRules implements domain.OfferProvider.
func (c *Client) FareRules(ctx context.Context, pricing map[string]any) (*domain.FareRules, error) {
	body, err := c.postRaw(ctx, "/flights/rules", map[string]any{"pricingInfo": pricing})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Rules domain.FareRules `json:"rules"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("decode rules response: %w", err))
	}
	return &resp.Rules, nil
}

// post issues a JSON POST and decodes the answer into a generic map for the
// path-based extractors.
func (c *Client) post(ctx context.Context, path string, payload any) (map[string]any, error) {
	body, err := c.postRaw(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("decode response: %w", err))
	}
	return decoded, nil
}

// postRaw issues a JSON POST and returns the raw response body. Network
// failures and 5xx answers are retryable; 4xx answers are not. The
// provider's own error message is surfaced when the body carries one.
func (c *Client) postRaw(ctx context.Context, path string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewRetryableProviderError(ProviderName, err)
	}

	if resp.StatusCode >= 500 {
		return nil, domain.NewRetryableProviderError(ProviderName,
			fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, upstreamMessage(body, resp.StatusCode)))
	}
	if resp.StatusCode >= 400 {
		return nil, domain.NewProviderError(ProviderName,
			fmt.Errorf("upstream rejected request: %s", upstreamMessage(body, resp.StatusCode)))
	}

	return body, nil
}

// upstreamMessage extracts the provider's error message from a failure body,
// falling back to the HTTP status.
func upstreamMessage(body []byte, status int) string {
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err == nil {
		if msg := lookup.FirstString(decoded, []string{"error.message", "message", "error"}, ""); msg != "" {
			return msg
		}
	}
	return http.StatusText(status)
}

// Ensure Client implements the provider interface at compile time.
var _ domain.OfferProvider = (*Client)(nil)
