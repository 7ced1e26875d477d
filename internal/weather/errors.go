package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record exists for a given city.
	ErrNotFound = errors.New("no weather data for city")

	// ErrCredentialMissing is returned before any network call is attempted
	// when the provider API key is not configured.
	ErrCredentialMissing = errors.New("OpenWeatherMap API key is not set")

	// ErrNotFoundAfterRefresh is returned when a record is still missing
	// after a successful fetch-and-store cycle (e.g. the provider returned
	// a different city name than the one queried).
	ErrNotFoundAfterRefresh = errors.New("weather data missing after refresh")
)

// ProviderError is a non-success response from the weather provider.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "API Error: " + e.Message
}

// TransportError is a network-level failure reaching the weather provider,
// including timeouts and an open circuit breaker.
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return "Request failed: " + e.Message
}

// StoreError wraps any persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
