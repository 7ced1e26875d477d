package weather

import (
	"fmt"
	"strings"
	"unicode"
)

// Rendering functions, one per result shape. Pure string building, no I/O.
// Unit labels and rounding are part of the contract: averaged quantities use
// two decimal places, single readings keep one.

// FormatWeather renders a single weather record. Optional readings that are
// absent from the record are skipped.
func FormatWeather(rec WeatherRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The current weather in %s:\n", rec.CityName)
	if rec.Temperature != nil {
		fmt.Fprintf(&b, "- Temperature: %.1f°C\n", *rec.Temperature)
	}
	if rec.Condition != "" {
		fmt.Fprintf(&b, "- Conditions: %s\n", capitalize(rec.Condition))
	}
	if rec.Humidity != nil {
		fmt.Fprintf(&b, "- Humidity: %.0f%%\n", *rec.Humidity)
	}
	if rec.WindSpeed != nil {
		fmt.Fprintf(&b, "- Wind Speed: %.1f m/s\n", *rec.WindSpeed)
	}
	return b.String()
}

// FormatCityList renders the list of known cities.
func FormatCityList(cities []string) string {
	if len(cities) == 0 {
		return "There are no cities in the database."
	}
	lines := make([]string, 0, len(cities))
	for _, city := range cities {
		lines = append(lines, "- "+city)
	}
	return "The following cities are in the database:\n" + strings.Join(lines, "\n")
}

// FormatRankedCities renders a hottest/coldest city list.
func FormatRankedCities(entries []CityTemperature, hottest bool) string {
	kind := "hottest"
	if !hottest {
		kind = "coldest"
	}
	if len(entries) == 0 {
		return fmt.Sprintf("No data available to determine the %s cities.", kind)
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- **%s** (%.2f°C)", e.CityName, e.Temperature))
	}
	return fmt.Sprintf("Here are the %s cities in the database:\n", kind) + strings.Join(lines, "\n")
}

// FormatAverageTemperature renders the mean temperature, globally or for a
// single city.
func FormatAverageTemperature(cityName string, avg float64) string {
	if cityName == "" {
		return fmt.Sprintf("The average temperature among all cities is %.2f°C.", avg)
	}
	return fmt.Sprintf("The average temperature in %s is %.2f°C.", titleCase(cityName), avg)
}

// FormatAverageHumidity renders the mean humidity, globally or for a single
// city.
func FormatAverageHumidity(cityName string, avg float64) string {
	if cityName == "" {
		return fmt.Sprintf("The average humidity across all cities is %.2f%%.", avg)
	}
	return fmt.Sprintf("The average humidity in %s is %.2f%%.", titleCase(cityName), avg)
}

// FormatVisibility renders a single visibility reading.
func FormatVisibility(cityName string, meters float64) string {
	return fmt.Sprintf("The current visibility in %s is %.0f meters.", cityName, meters)
}

// FormatDeleteResult reports the outcome of a delete-city request.
func FormatDeleteResult(cityName string, removed int64) string {
	if removed > 0 {
		return fmt.Sprintf("The weather data for **%s** has been successfully deleted from the database.", cityName)
	}
	return fmt.Sprintf("No weather data found for **%s** to delete.", cityName)
}

// capitalize upper-cases the first rune and lower-cases the rest, matching
// the condition descriptions the provider sends ("clear sky" -> "Clear sky").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// titleCase capitalizes every space-separated word ("new york" -> "New York").
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
