// Package http provides the HTTP handler layer for the offer engine API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tripnest/offer-engine/internal/adapter/http/response"
	"github.com/tripnest/offer-engine/internal/domain"
	"github.com/tripnest/offer-engine/internal/usecase"
)

// OfferHandler handles HTTP requests for flight-offer endpoints.
type OfferHandler struct {
	search    usecase.OfferSearchUseCase
	alternate usecase.AlternateDayUseCase
	calendar  *usecase.FareCalendar
	provider  domain.OfferProvider
	log       zerolog.Logger
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(
	search usecase.OfferSearchUseCase,
	alternate usecase.AlternateDayUseCase,
	calendar *usecase.FareCalendar,
	provider domain.OfferProvider,
	log zerolog.Logger,
) *OfferHandler {
	return &OfferHandler{
		search:    search,
		alternate: alternate,
		calendar:  calendar,
		provider:  provider,
		log:       log.With().Str("component", "http_handler").Logger(),
	}
}

// SearchOffers handles POST /api/v1/flights/search.
func (h *OfferHandler) SearchOffers(c echo.Context) error {
	var req SearchOffersRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.search.Search(c.Request().Context(), ToDomainQuery(&req), ToSearchOptions(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToSearchResponseDTO(result))
}

// FareCalendar handles POST /api/v1/fares/calendar. It refreshes the
// calendar for the requested key and returns the resulting snapshot; a
// failed upstream fetch still answers 200 with whatever is cached.
func (h *OfferHandler) FareCalendar(c echo.Context) error {
	var req CalendarRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	query := ToCalendarQuery(&req)
	h.calendar.Refresh(c.Request().Context(), query)

	return response.OK(c, h.calendar.Snapshot(query))
}

// NearbyFares handles POST /api/v1/flights/nearby. Branch failures surface
// as nil amounts, never as an error status.
func (h *OfferHandler) NearbyFares(c echo.Context) error {
	var req SearchOffersRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	fares := h.alternate.NearbyFares(c.Request().Context(), ToDomainQuery(&req))
	return response.OK(c, &NearbyResponseDTO{Fares: fares})
}

// Baggage handles POST /api/v1/flights/baggage.
func (h *OfferHandler) Baggage(c echo.Context) error {
	var req DetailRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	baggage, err := h.provider.Baggage(c.Request().Context(), req.PricingInfo)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, baggage)
}

// FareRules handles POST /api/v1/flights/rules.
func (h *OfferHandler) FareRules(c echo.Context) error {
	var req DetailRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	rules, err := h.provider.FareRules(c.Request().Context(), req.PricingInfo)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, rules)
}

// Health handles GET /health.
func (h *OfferHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *OfferHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *OfferHandler) handleError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNoFlightsFound) {
		return response.NoFlightsFound(c)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}
	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	if errors.Is(err, domain.ErrInvalidRequest) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	// Provider failures surface the upstream's own message when present.
	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) {
		h.log.Error().Err(err).Str("provider", providerErr.Provider).Msg("provider call failed")
		return response.ServiceUnavailableWithMessage(c, providerErr.Err.Error())
	}

	h.log.Error().Err(err).Msg("unhandled error")
	return response.InternalServerError(c)
}
