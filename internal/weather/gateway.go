package weather

import (
	"context"
)

// Provider abstracts the external weather data source.
// Fetch returns a normalized record for the named city or a typed failure
// (ErrCredentialMissing, *ProviderError, *TransportError).
type Provider interface {
	Fetch(ctx context.Context, cityName string) (WeatherRecord, error)
}

// Store is the contract the document store gateway must satisfy.
// City name lookups are case-insensitive exact matches. Implementations
// return ErrNotFound when no matching data exists and wrap other
// persistence failures in *StoreError.
type Store interface {
	// FindByCity returns the record whose city name matches cityName.
	FindByCity(ctx context.Context, cityName string) (WeatherRecord, error)

	// Upsert inserts or updates the record keyed by its provider city id,
	// setting ModifiedAt to the current time and preserving CreatedAt from
	// any pre-existing record. The operation is a single atomic call.
	Upsert(ctx context.Context, rec WeatherRecord) error

	// DeleteByCity removes the record for cityName and reports how many
	// documents were removed (0 or 1).
	DeleteByCity(ctx context.Context, cityName string) (int64, error)

	// Cities returns the distinct city names present in the store.
	Cities(ctx context.Context) ([]string, error)

	// AverageTemperature returns the mean temperature over all records, or
	// over the named city when cityName is non-empty. ErrNotFound means no
	// temperature data matched.
	AverageTemperature(ctx context.Context, cityName string) (float64, error)

	// AverageHumidity is the humidity counterpart of AverageTemperature.
	AverageHumidity(ctx context.Context, cityName string) (float64, error)

	// TopCitiesByTemperature ranks cities by average temperature,
	// descending or ascending, limited to limit entries. Ties are broken
	// by store iteration order.
	TopCitiesByTemperature(ctx context.Context, descending bool, limit int) ([]CityTemperature, error)
}
