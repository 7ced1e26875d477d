package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// OpenWeatherAPIKey authenticates provider calls. Its absence is only
	// reported when a fetch is actually attempted.
	OpenWeatherAPIKey string

	// MongoURI selects the document store; empty falls back to the
	// in-memory store.
	MongoURI      string
	MongoDatabase string

	// MaxDataAge is how long a stored record is served without re-fetching.
	MaxDataAge time.Duration

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// RefreshInterval controls the background re-fetch of stored cities.
	// Zero disables the scheduler.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPEN_WEATHER_API")
	cfg.MongoURI = os.Getenv("MONGODB_URI")
	cfg.MongoDatabase = getenvDefault("MONGODB_DATABASE", "weather_agent")

	maxAge, err := parseDuration("MAX_DATA_AGE", "1h")
	if err != nil {
		return nil, err
	}
	cfg.MaxDataAge = maxAge

	timeout, err := parseDuration("HTTP_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	interval, err := parseDuration("REFRESH_INTERVAL", "30m")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	raw := getenvDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
