package weather

import (
	"context"
	"errors"
	"log"
	"time"
)

// rankedListLimit bounds the hottest/coldest city lists.
const rankedListLimit = 5

// Service orchestrates the fetch-or-serve-from-cache decision and the
// read-only aggregate queries. Each user request is processed synchronously;
// concurrent requests for the same stale city may each trigger a provider
// fetch (accepted race, last write wins on ModifiedAt).
type Service struct {
	store    Store
	provider Provider
	maxAge   time.Duration
}

// NewService creates a new Service. maxAge <= 0 falls back to DefaultMaxAge.
func NewService(store Store, provider Provider, maxAge time.Duration) *Service {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Service{
		store:    store,
		provider: provider,
		maxAge:   maxAge,
	}
}

// ResolveWeather returns the weather record for cityName, serving from the
// store when the cached record is fresh and otherwise performing a single
// fetch-then-store-then-reread cycle. It issues at most one provider call
// and at most one store write per invocation.
func (s *Service) ResolveWeather(ctx context.Context, cityName string) (WeatherRecord, error) {
	rec, err := s.store.FindByCity(ctx, cityName)
	if err == nil && IsFresh(time.Now().UTC(), rec, s.maxAge) {
		return rec, nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		// A failing read is treated like a missing record; the refresh
		// path below still gets a chance to produce an answer.
		log.Printf("weather: lookup failed for %q: %v", cityName, err)
	}

	if err := s.UpdateCity(ctx, cityName); err != nil {
		return WeatherRecord{}, err
	}

	// Re-read exactly once; a second fetch is never attempted.
	rec, err = s.store.FindByCity(ctx, cityName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return WeatherRecord{}, ErrNotFoundAfterRefresh
		}
		return WeatherRecord{}, err
	}
	return rec, nil
}

// UpdateCity fetches fresh data for cityName from the provider and upserts
// it into the store. Provider failures propagate unmodified and are never
// retried.
func (s *Service) UpdateCity(ctx context.Context, cityName string) error {
	rec, err := s.provider.Fetch(ctx, cityName)
	if err != nil {
		return err
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		return err
	}
	return nil
}

// DeleteCity removes the record for cityName, reporting how many documents
// were removed.
func (s *Service) DeleteCity(ctx context.Context, cityName string) (int64, error) {
	return s.store.DeleteByCity(ctx, cityName)
}

// ListCities returns the distinct city names present in the store.
func (s *Service) ListCities(ctx context.Context) ([]string, error) {
	return s.store.Cities(ctx)
}

// AverageTemperature delegates to the store; cityName may be empty for the
// all-cities average.
func (s *Service) AverageTemperature(ctx context.Context, cityName string) (float64, error) {
	return s.store.AverageTemperature(ctx, cityName)
}

// AverageHumidity delegates to the store; cityName may be empty for the
// all-cities average.
func (s *Service) AverageHumidity(ctx context.Context, cityName string) (float64, error) {
	return s.store.AverageHumidity(ctx, cityName)
}

// HottestCities returns the top cities by descending average temperature.
func (s *Service) HottestCities(ctx context.Context) ([]CityTemperature, error) {
	return s.store.TopCitiesByTemperature(ctx, true, rankedListLimit)
}

// ColdestCities returns the top cities by ascending average temperature.
func (s *Service) ColdestCities(ctx context.Context) ([]CityTemperature, error) {
	return s.store.TopCitiesByTemperature(ctx, false, rankedListLimit)
}

// Visibility returns the visibility reading for cityName. A nil value with
// a nil error means the city exists but carries no visibility data, which
// is distinct from ErrNotFound.
func (s *Service) Visibility(ctx context.Context, cityName string) (*float64, error) {
	rec, err := s.store.FindByCity(ctx, cityName)
	if err != nil {
		return nil, err
	}
	return rec.Visibility, nil
}
