package weather

import (
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestFormatWeather(t *testing.T) {
	rec := WeatherRecord{
		CityID:      1,
		CityName:    "London",
		Temperature: floatPtr(15.0),
		Humidity:    floatPtr(70),
		WindSpeed:   floatPtr(3.2),
		Condition:   "clear sky",
	}

	want := "The current weather in London:\n" +
		"- Temperature: 15.0°C\n" +
		"- Conditions: Clear sky\n" +
		"- Humidity: 70%\n" +
		"- Wind Speed: 3.2 m/s\n"

	if got := FormatWeather(rec); got != want {
		t.Errorf("FormatWeather = %q, want %q", got, want)
	}
}

func TestFormatWeatherSkipsAbsentReadings(t *testing.T) {
	rec := WeatherRecord{
		CityName:    "Tromsø",
		Temperature: floatPtr(-4.5),
	}

	want := "The current weather in Tromsø:\n- Temperature: -4.5°C\n"
	if got := FormatWeather(rec); got != want {
		t.Errorf("FormatWeather = %q, want %q", got, want)
	}
}

func TestFormatCityList(t *testing.T) {
	if got := FormatCityList(nil); got != "There are no cities in the database." {
		t.Errorf("empty list = %q", got)
	}

	want := "The following cities are in the database:\n- London\n- Paris"
	if got := FormatCityList([]string{"London", "Paris"}); got != want {
		t.Errorf("FormatCityList = %q, want %q", got, want)
	}
}

func TestFormatRankedCities(t *testing.T) {
	entries := []CityTemperature{
		{CityName: "Cairo", Temperature: 31.5},
		{CityName: "Athens", Temperature: 27.25},
	}

	want := "Here are the hottest cities in the database:\n" +
		"- **Cairo** (31.50°C)\n" +
		"- **Athens** (27.25°C)"
	if got := FormatRankedCities(entries, true); got != want {
		t.Errorf("FormatRankedCities = %q, want %q", got, want)
	}

	if got := FormatRankedCities(nil, false); got != "No data available to determine the coldest cities." {
		t.Errorf("empty coldest list = %q", got)
	}
}

func TestFormatAverages(t *testing.T) {
	if got := FormatAverageTemperature("", 20.0); got != "The average temperature among all cities is 20.00°C." {
		t.Errorf("global average temperature = %q", got)
	}
	if got := FormatAverageTemperature("new york", 12.345); got != "The average temperature in New York is 12.35°C." {
		t.Errorf("scoped average temperature = %q", got)
	}
	if got := FormatAverageHumidity("", 66.666); got != "The average humidity across all cities is 66.67%." {
		t.Errorf("global average humidity = %q", got)
	}
}

func TestFormatVisibilityAndDelete(t *testing.T) {
	if got := FormatVisibility("oslo", 10000); got != "The current visibility in oslo is 10000 meters." {
		t.Errorf("FormatVisibility = %q", got)
	}
	if got := FormatDeleteResult("paris", 1); got != "The weather data for **paris** has been successfully deleted from the database." {
		t.Errorf("delete success = %q", got)
	}
	if got := FormatDeleteResult("paris", 0); got != "No weather data found for **paris** to delete." {
		t.Errorf("delete miss = %q", got)
	}
}
