package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-chat-agent/internal/router"
	"github.com/i474232898/weather-chat-agent/internal/store"
	"github.com/i474232898/weather-chat-agent/internal/weather"
)

// noFetchProvider fails the test if the handler ever reaches the network.
type noFetchProvider struct {
	t *testing.T
}

func (p *noFetchProvider) Fetch(ctx context.Context, cityName string) (weather.WeatherRecord, error) {
	p.t.Errorf("unexpected provider fetch for %q", cityName)
	return weather.WeatherRecord{}, weather.ErrCredentialMissing
}

func newTestApp(t *testing.T) *fiber.App {
	mem := store.NewMemoryStore()

	temp := 15.0
	humidity := 70.0
	wind := 3.2
	if err := mem.Upsert(context.Background(), weather.WeatherRecord{
		CityID:      1,
		CityName:    "London",
		Temperature: &temp,
		Humidity:    &humidity,
		WindSpeed:   &wind,
		Condition:   "clear sky",
	}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	svc := weather.NewService(mem, &noFetchProvider{t: t}, time.Hour)

	rt := router.New()
	rt.Register(router.HandlerWeather, weather.NewHandler(svc))

	app := fiber.New()
	RegisterRoutes(app, rt)
	return app
}

func postChat(t *testing.T, app *fiber.App, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestChatAnswersFromFreshCache(t *testing.T) {
	app := newTestApp(t)

	resp := postChat(t, app, `{"message": "weather in london"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.HasPrefix(payload.Reply, "The current weather in London:") {
		t.Errorf("reply = %q", payload.Reply)
	}
}

func TestChatValidatesMessage(t *testing.T) {
	app := newTestApp(t)

	// Missing message should return 400.
	resp := postChat(t, app, `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	// Malformed body should also return 400.
	resp = postChat(t, app, `{"message":`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
