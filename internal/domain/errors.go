package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the offer engine.
var (
	// ErrInvalidRequest indicates the search query failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoFlightsFound indicates the provider answered successfully but
	// returned zero itineraries for the route and dates. This is a domain
	// condition, not a transport failure.
	ErrNoFlightsFound = errors.New("no flights found for this route")

	// ErrProviderUnavailable indicates the upstream search provider could
	// not be reached or answered with a transport-level failure.
	ErrProviderUnavailable = errors.New("flight provider unavailable")

	// ErrMissingPricing indicates an itinerary carried no pricing block.
	// Such offers are excluded rather than rendered with a zero fare.
	ErrMissingPricing = errors.New("itinerary has no pricing block")
)

// ProviderError wraps an error from the upstream provider with its name and
// a retryability hint.
type ProviderError struct {
	// Provider is the name of the provider that failed
	Provider string

	// Err is the underlying error
	Err error

	// Retryable indicates whether the operation may succeed if retried
	Retryable bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a non-retryable provider error.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a provider error that callers may retry.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// IsRetryable reports whether err is a retryable provider error.
func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}
