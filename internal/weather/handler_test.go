package weather

import (
	"context"
	"testing"
	"time"
)

// avgStore wires canned aggregate results into the stub store.
type avgStore struct {
	*stubStore
	avgTemp     float64
	avgHumidity float64
}

func (s *avgStore) AverageTemperature(ctx context.Context, cityName string) (float64, error) {
	return s.avgTemp, nil
}

func (s *avgStore) AverageHumidity(ctx context.Context, cityName string) (float64, error) {
	return s.avgHumidity, nil
}

func newTestHandler(st Store) *Handler {
	return NewHandler(NewService(st, &stubProvider{}, time.Hour))
}

func TestHandleAverageTemperature(t *testing.T) {
	h := newTestHandler(&avgStore{stubStore: newStubStore(), avgTemp: 20.0})

	reply, handled := h.Handle(context.Background(), "average temperature")
	if !handled {
		t.Fatal("weather handler must handle every message")
	}
	if reply != "The average temperature among all cities is 20.00°C." {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleAverageTemperatureNoData(t *testing.T) {
	h := newTestHandler(newStubStore())

	reply, _ := h.Handle(context.Background(), "average temperature")
	if reply != "No temperature data available to calculate average." {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleVisibilityWithoutCityAsksForOne(t *testing.T) {
	h := newTestHandler(newStubStore())

	reply, _ := h.Handle(context.Background(), "visibility")
	if reply != "Please specify a city to get its visibility data." {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleVisibilityDistinguishesMissingFieldFromMissingCity(t *testing.T) {
	st := newStubStore()
	st.records[1] = WeatherRecord{
		CityID:     1,
		CityName:   "Oslo",
		ModifiedAt: time.Now().UTC(),
	}
	h := newTestHandler(st)

	reply, _ := h.Handle(context.Background(), "visibility in oslo")
	if reply != "Visibility data for oslo is not available." {
		t.Errorf("missing field reply = %q", reply)
	}

	reply, _ = h.Handle(context.Background(), "visibility in atlantis")
	if reply != "No weather data found for atlantis." {
		t.Errorf("missing city reply = %q", reply)
	}
}

func TestHandleDeleteCity(t *testing.T) {
	st := newStubStore()
	seedRecord(st, "Paris", time.Minute)
	h := newTestHandler(st)

	reply, _ := h.Handle(context.Background(), "delete the city paris")
	if reply != "The weather data for **paris** has been successfully deleted from the database." {
		t.Errorf("delete reply = %q", reply)
	}

	reply, _ = h.Handle(context.Background(), "delete the city paris")
	if reply != "No weather data found for **paris** to delete." {
		t.Errorf("repeat delete reply = %q", reply)
	}
}

func TestHandleProviderFailureBecomesUserFacingText(t *testing.T) {
	st := newStubStore()
	svc := NewService(st, &stubProvider{err: &ProviderError{Message: "city not found"}}, time.Hour)
	h := NewHandler(svc)

	reply, _ := h.Handle(context.Background(), "weather in atlantis")
	if reply != "API Error: city not found" {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleUnrecognized(t *testing.T) {
	h := newTestHandler(newStubStore())

	reply, handled := h.Handle(context.Background(), "what is this?!")
	if !handled {
		t.Fatal("weather handler must handle every message")
	}
	if reply != "I'm sorry, I didn't understand your request. Could you please rephrase it?" {
		t.Errorf("reply = %q", reply)
	}
}
