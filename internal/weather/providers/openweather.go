// Package providers contains the concrete weather provider gateways.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/weather-chat-agent/internal/weather"
	"github.com/sony/gobreaker"
)

// OpenWeatherProvider implements the weather.Provider interface for the
// OpenWeatherMap current-weather endpoint. Each Fetch makes at most one
// HTTP attempt; failures are never retried here because the orchestrator's
// contract is a single provider call per user request. A circuit breaker
// still guards against hammering a failing upstream.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "http://api.openweathermap.org/data/2.5/weather",
		client:  client,
		circuit: cb,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch requests metric-unit current weather for cityName and normalizes
// the payload into a weather.WeatherRecord.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, cityName string) (weather.WeatherRecord, error) {
	if p.apiKey == "" {
		return weather.WeatherRecord{}, weather.ErrCredentialMissing
	}

	values := url.Values{}
	values.Set("q", cityName)
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	result, err := p.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// The API reports errors as {"cod": ..., "message": ...}.
			var apiErr struct {
				Message string `json:"message"`
			}
			msg := "Error fetching weather data."
			if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
				msg = apiErr.Message
			}
			return nil, &weather.ProviderError{Message: msg}
		}

		var payload currentWeatherPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, err
		}
		return payload.toRecord(), nil
	})
	if err != nil {
		var providerErr *weather.ProviderError
		if errors.As(err, &providerErr) {
			return weather.WeatherRecord{}, providerErr
		}
		return weather.WeatherRecord{}, &weather.TransportError{Message: err.Error()}
	}

	rec, ok := result.(weather.WeatherRecord)
	if !ok {
		return weather.WeatherRecord{}, &weather.TransportError{Message: "unexpected result type from circuit breaker"}
	}
	return rec, nil
}

// currentWeatherPayload mirrors the fields of the OpenWeatherMap
// current-weather response that this system keeps.
type currentWeatherPayload struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Dt         int64    `json:"dt"`
	Visibility *float64 `json:"visibility"`
	Main       struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (p currentWeatherPayload) toRecord() weather.WeatherRecord {
	rec := weather.WeatherRecord{
		CityID:      p.ID,
		CityName:    p.Name,
		Temperature: p.Main.Temp,
		Humidity:    p.Main.Humidity,
		WindSpeed:   p.Wind.Speed,
		Visibility:  p.Visibility,
	}
	if len(p.Weather) > 0 {
		rec.Condition = p.Weather[0].Description
	}
	if p.Dt > 0 {
		rec.ObservedAt = time.Unix(p.Dt, 0).UTC()
	}
	return rec
}
