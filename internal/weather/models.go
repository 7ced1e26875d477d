package weather

import (
	"time"
)

// WeatherRecord is one city's most recently fetched weather snapshot.
// Exactly one record exists per provider-assigned city id; it is created on
// the first successful fetch and mutated on every subsequent refresh.
type WeatherRecord struct {
	// CityID is the provider-assigned identity key used for upsert matching.
	CityID   int64  `bson:"provider_city_id" json:"provider_city_id"`
	CityName string `bson:"city_name" json:"city_name"`

	// Optional readings; absence is a valid state (e.g. missing visibility).
	Temperature *float64 `bson:"temperature_celsius,omitempty" json:"temperature_celsius,omitempty"`
	Humidity    *float64 `bson:"humidity_percent,omitempty" json:"humidity_percent,omitempty"`
	WindSpeed   *float64 `bson:"wind_speed_mps,omitempty" json:"wind_speed_mps,omitempty"`
	Visibility  *float64 `bson:"visibility_meters,omitempty" json:"visibility_meters,omitempty"`

	Condition string `bson:"condition_description" json:"condition_description"`

	// ObservedAt comes from the provider; fallback freshness source.
	ObservedAt time.Time `bson:"observed_at" json:"observed_at"`

	// ModifiedAt is set by the store on every write; primary freshness source.
	ModifiedAt time.Time `bson:"modified_at" json:"modified_at"`

	// CreatedAt is set once on first insert and preserved across updates.
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// CityTemperature is one entry of a ranked city list.
type CityTemperature struct {
	CityName    string  `bson:"_id" json:"city_name"`
	Temperature float64 `bson:"average_temp" json:"average_temp"`
}
