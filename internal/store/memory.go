package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-chat-agent/internal/users"
	"github.com/i474232898/weather-chat-agent/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory implementation of the same
// gateway contracts as MongoStore. It backs tests and runs the service
// without a database when no Mongo URI is configured.
type MemoryStore struct {
	mu sync.RWMutex

	// key: provider city id
	records map[int64]weather.WeatherRecord
	users   []users.User

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]weather.WeatherRecord),
		now:     time.Now,
	}
}

// SeedUsers replaces the stored user list.
func (s *MemoryStore) SeedUsers(us []users.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]users.User(nil), us...)
}

func (s *MemoryStore) FindByCity(ctx context.Context, cityName string) (weather.WeatherRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if strings.EqualFold(rec.CityName, cityName) {
			return rec, nil
		}
	}
	return weather.WeatherRecord{}, weather.ErrNotFound
}

func (s *MemoryStore) Upsert(ctx context.Context, rec weather.WeatherRecord) error {
	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ModifiedAt = now
	if existing, ok := s.records[rec.CityID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	s.records[rec.CityID] = rec
	return nil
}

func (s *MemoryStore) DeleteByCity(ctx context.Context, cityName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.records {
		if strings.EqualFold(rec.CityName, cityName) {
			delete(s.records, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) Cities(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.records))
	var cities []string
	for _, rec := range s.records {
		if _, ok := seen[rec.CityName]; ok {
			continue
		}
		seen[rec.CityName] = struct{}{}
		cities = append(cities, rec.CityName)
	}
	sort.Strings(cities)
	return cities, nil
}

func (s *MemoryStore) AverageTemperature(ctx context.Context, cityName string) (float64, error) {
	return s.average(ctx, cityName, func(rec weather.WeatherRecord) *float64 {
		return rec.Temperature
	})
}

func (s *MemoryStore) AverageHumidity(ctx context.Context, cityName string) (float64, error) {
	return s.average(ctx, cityName, func(rec weather.WeatherRecord) *float64 {
		return rec.Humidity
	})
}

func (s *MemoryStore) average(ctx context.Context, cityName string, field func(weather.WeatherRecord) *float64) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum float64
	var n int
	for _, rec := range s.records {
		if cityName != "" && !strings.EqualFold(rec.CityName, cityName) {
			continue
		}
		if v := field(rec); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, weather.ErrNotFound
	}
	return sum / float64(n), nil
}

func (s *MemoryStore) TopCitiesByTemperature(ctx context.Context, descending bool, limit int) ([]weather.CityTemperature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range s.records {
		if rec.Temperature == nil {
			continue
		}
		sums[rec.CityName] += *rec.Temperature
		counts[rec.CityName]++
	}

	entries := make([]weather.CityTemperature, 0, len(sums))
	for name, sum := range sums {
		entries = append(entries, weather.CityTemperature{
			CityName:    name,
			Temperature: sum / float64(counts[name]),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if descending {
			return entries[i].Temperature > entries[j].Temperature
		}
		return entries[i].Temperature < entries[j].Temperature
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *MemoryStore) FindUsers(ctx context.Context) ([]users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]users.User(nil), s.users...), nil
}
