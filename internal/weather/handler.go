package weather

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/i474232898/weather-chat-agent/internal/intent"
)

// Canned replies for paths where the store or provider let us down. Every
// failure terminates in a formatted string; the handler never returns an
// error to the conversational surface.
const (
	replyUnrecognized      = "I'm sorry, I didn't understand your request. Could you please rephrase it?"
	replyAskVisibilityCity = "Please specify a city to get its visibility data."
	replyCityListFailed    = "Sorry, I couldn't retrieve the list of cities."
	replyAvgTempFailed     = "Sorry, I couldn't calculate the average temperature."
	replyAvgHumidityFailed = "Sorry, I couldn't calculate the average humidity."
	replyDeleteFailed      = "Sorry, I couldn't delete the city data."
	replyVisibilityFailed  = "Sorry, I couldn't retrieve the visibility data."
	replyNoTemperatureData = "No temperature data available to calculate average."
	replyNoHumidityData    = "No humidity data available to calculate average."
)

// Handler turns classified user messages into formatted replies. It is the
// weather topic handler behind the router's dispatch table.
type Handler struct {
	svc *Service
}

// NewHandler creates the weather topic handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Handle classifies the message and dispatches to the matching operation.
// The weather handler is the default topic, so it always reports handled.
func (h *Handler) Handle(ctx context.Context, message string) (string, bool) {
	it := intent.Classify(message)

	switch it.Kind {
	case intent.ListCities:
		return h.listCities(ctx), true
	case intent.AverageTemperature:
		return h.averageTemperature(ctx, it.City), true
	case intent.DeleteCity:
		return h.deleteCity(ctx, it.City), true
	case intent.UpdateCity:
		return h.updateCity(ctx, it.City), true
	case intent.HottestCities:
		return h.rankedCities(ctx, true), true
	case intent.ColdestCities:
		return h.rankedCities(ctx, false), true
	case intent.AverageHumidity:
		return h.averageHumidity(ctx, it.City), true
	case intent.Visibility:
		return h.visibility(ctx, it.City), true
	case intent.WeatherInCity:
		return h.weatherInCity(ctx, it.City), true
	default:
		return replyUnrecognized, true
	}
}

func (h *Handler) listCities(ctx context.Context) string {
	cities, err := h.svc.ListCities(ctx)
	if err != nil {
		log.Printf("weather: list cities failed: %v", err)
		return replyCityListFailed
	}
	return FormatCityList(cities)
}

func (h *Handler) averageTemperature(ctx context.Context, city string) string {
	avg, err := h.svc.AverageTemperature(ctx, city)
	switch {
	case errors.Is(err, ErrNotFound) && city == "":
		return replyNoTemperatureData
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("No weather data available for %s.", titleCase(city))
	case err != nil:
		log.Printf("weather: average temperature failed: %v", err)
		return replyAvgTempFailed
	}
	return FormatAverageTemperature(city, avg)
}

func (h *Handler) averageHumidity(ctx context.Context, city string) string {
	avg, err := h.svc.AverageHumidity(ctx, city)
	switch {
	case errors.Is(err, ErrNotFound) && city == "":
		return replyNoHumidityData
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("No weather data available for %s.", titleCase(city))
	case err != nil:
		log.Printf("weather: average humidity failed: %v", err)
		return replyAvgHumidityFailed
	}
	return FormatAverageHumidity(city, avg)
}

func (h *Handler) deleteCity(ctx context.Context, city string) string {
	removed, err := h.svc.DeleteCity(ctx, city)
	if err != nil {
		log.Printf("weather: delete %q failed: %v", city, err)
		return replyDeleteFailed
	}
	return FormatDeleteResult(city, removed)
}

func (h *Handler) updateCity(ctx context.Context, city string) string {
	if err := h.svc.UpdateCity(ctx, city); err != nil {
		log.Printf("weather: update %q failed: %v", city, err)
		return fmt.Sprintf("Sorry, I couldn't update the weather data for **%s**. %s", city, failureText(err))
	}
	return fmt.Sprintf("Weather data for **%s** has been updated.", city)
}

func (h *Handler) rankedCities(ctx context.Context, hottest bool) string {
	var (
		entries []CityTemperature
		err     error
	)
	if hottest {
		entries, err = h.svc.HottestCities(ctx)
	} else {
		entries, err = h.svc.ColdestCities(ctx)
	}
	if err != nil {
		kind := "hottest"
		if !hottest {
			kind = "coldest"
		}
		log.Printf("weather: %s cities failed: %v", kind, err)
		return fmt.Sprintf("Sorry, I couldn't retrieve the list of %s cities.", kind)
	}
	return FormatRankedCities(entries, hottest)
}

func (h *Handler) visibility(ctx context.Context, city string) string {
	if city == "" {
		return replyAskVisibilityCity
	}
	vis, err := h.svc.Visibility(ctx, city)
	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("No weather data found for %s.", city)
	case err != nil:
		log.Printf("weather: visibility for %q failed: %v", city, err)
		return replyVisibilityFailed
	case vis == nil:
		return fmt.Sprintf("Visibility data for %s is not available.", city)
	}
	return FormatVisibility(city, *vis)
}

func (h *Handler) weatherInCity(ctx context.Context, city string) string {
	rec, err := h.svc.ResolveWeather(ctx, city)
	if err != nil {
		log.Printf("weather: resolve %q failed: %v", city, err)
		var storeErr *StoreError
		if errors.Is(err, ErrNotFoundAfterRefresh) || errors.As(err, &storeErr) {
			return fmt.Sprintf("Sorry, I couldn't fetch weather data for **%s**.", city)
		}
		return failureText(err)
	}
	return FormatWeather(rec)
}

// failureText renders a provider failure the way it is shown to the user.
func failureText(err error) string {
	if errors.Is(err, ErrCredentialMissing) {
		return "OpenWeatherMap API key is not set."
	}
	return err.Error()
}
