// Package intent maps free user text to a discrete intent plus an optional
// captured city name. Classification is a pure function of the input text.
package intent

import (
	"regexp"
	"strings"
)

// Kind is a closed tag classifying one user message.
type Kind string

const (
	ListCities         Kind = "list_cities"
	AverageTemperature Kind = "average_temperature"
	DeleteCity         Kind = "delete_city"
	UpdateCity         Kind = "update_city"
	HottestCities      Kind = "hottest_cities"
	ColdestCities      Kind = "coldest_cities"
	AverageHumidity    Kind = "average_humidity"
	Visibility         Kind = "visibility"
	WeatherInCity      Kind = "weather_in_city"
	Unrecognized       Kind = "unrecognized"
)

// Intent is the classification result for one message. City is the trimmed
// captured entity; empty means no city was captured.
type Intent struct {
	Kind Kind
	City string
}

// rule binds one anchored pattern to an intent tag. group is the index of
// the capture group holding the city name, 0 when the rule captures nothing.
type rule struct {
	re    *regexp.Regexp
	kind  Kind
	group int
}

// rules is evaluated in declaration order and the first full match wins.
// The order is load-bearing: the bare "visibility"/"hottest"/"humidity"
// rules and the fallback extraction would otherwise swallow each other's
// phrasings.
var rules = []rule{
	{regexp.MustCompile(`^(list|show)\s+(all\s+)?(the\s+)?(cities|city)\s+(in|from)?\s+(the\s+)?database$`), ListCities, 0},
	{regexp.MustCompile(`^(average|mean)\s+(temperature|temp)(?:\s+in\s+([\w\s,]+))?$`), AverageTemperature, 3},
	{regexp.MustCompile(`^(delete|remove)\s+(?:the\s+)?(?:city\s+)?([\w\s,]+)$`), DeleteCity, 2},
	{regexp.MustCompile(`^(update|refresh)\s+(?:the\s+city\s+of\s+)?(?:weather\s+data\s+for\s+)?([\w\s,]+)$`), UpdateCity, 2},
	{regexp.MustCompile(`^(hottest|warmest)\s+(cities|city)$`), HottestCities, 0},
	{regexp.MustCompile(`^(coldest|coolest)\s+(cities|city)$`), ColdestCities, 0},
	{regexp.MustCompile(`^(average|mean)\s+humidity(?:\s+in\s+([\w\s,]+))?$`), AverageHumidity, 2},
	{regexp.MustCompile(`^(visibility)\s*(?:in\s+([\w\s,]+))?$`), Visibility, 2},
	{regexp.MustCompile(`^(weather in|current weather in|what's the weather in|get weather for|show forecast for|get forecast for)\s+([\w\s,]+)$`), WeatherInCity, 2},
	{regexp.MustCompile(`^(forecast in|show forecast in|get forecast for)\s+([\w\s,]+)$`), WeatherInCity, 2},
	{regexp.MustCompile(`^(hottest)$`), HottestCities, 0},
	{regexp.MustCompile(`^(humidity)$`), AverageHumidity, 0},
}

// stripPatterns remove known boilerplate around a bare city name before the
// fallback extraction. Applied in order.
var stripPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s+from\s+(?:the\s+)?(?:database|weather database)$`),
	regexp.MustCompile(`^(update|refresh)\s+(?:the\s+city\s+of\s+)?(?:weather\s+data\s+for\s+)?`),
	regexp.MustCompile(`^(get|show|provide)\s+(?:the\s+)?(?:current\s+)?weather\s+for\s+`),
	regexp.MustCompile(`^(get|show|provide)\s+(?:the\s+)?forecast\s+for\s+`),
}

// bareName accepts letters, digits, spaces, commas and underscores only.
var bareName = regexp.MustCompile(`^([\w\s,]+)$`)

// Classify normalizes text (lowercase, trimmed) and evaluates the ordered
// rule table. When no rule matches, a plausible bare city name left after
// stripping boilerplate is treated as an implicit weather request.
func Classify(text string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, r := range rules {
		m := r.re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		it := Intent{Kind: r.kind}
		if r.group > 0 && r.group < len(m) {
			it.City = strings.TrimSpace(m[r.group])
		}
		return it
	}

	if city := extractCityName(normalized); city != "" {
		return Intent{Kind: WeatherInCity, City: city}
	}
	return Intent{Kind: Unrecognized}
}

func extractCityName(normalized string) string {
	for _, re := range stripPatterns {
		normalized = re.ReplaceAllString(normalized, "")
	}
	m := bareName.FindStringSubmatch(normalized)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
