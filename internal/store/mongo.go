// Package store provides the document store gateways: a MongoDB-backed
// implementation and an in-memory one with the same contracts.
package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/i474232898/weather-chat-agent/internal/users"
	"github.com/i474232898/weather-chat-agent/internal/weather"
)

const (
	weatherCollection = "weather_data"
	usersCollection   = "users"
)

// MongoStore implements weather.Store and users.Store over MongoDB. The
// client lifecycle is owned by the caller; the store only holds collection
// handles.
type MongoStore struct {
	weather *mongo.Collection
	users   *mongo.Collection
	now     func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		weather: db.Collection(weatherCollection),
		users:   db.Collection(usersCollection),
		now:     time.Now,
	}
}

// cityFilter builds a case-insensitive exact-match filter on the city name.
// The name is quoted so regex metacharacters in user input cannot change
// the match.
func cityFilter(cityName string) bson.M {
	return bson.M{"city_name": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(cityName) + "$",
		"$options": "i",
	}}
}

func (s *MongoStore) FindByCity(ctx context.Context, cityName string) (weather.WeatherRecord, error) {
	var rec weather.WeatherRecord
	err := s.weather.FindOne(ctx, cityFilter(cityName)).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return weather.WeatherRecord{}, weather.ErrNotFound
	}
	if err != nil {
		return weather.WeatherRecord{}, &weather.StoreError{Op: "find", Err: err}
	}
	return rec, nil
}

// Upsert writes the record in a single UpdateOne call keyed by the provider
// city id: $set for the payload and modified_at, $setOnInsert for
// created_at, so creation metadata survives every refresh.
func (s *MongoStore) Upsert(ctx context.Context, rec weather.WeatherRecord) error {
	now := s.now().UTC()

	set := bson.M{
		"city_name":             rec.CityName,
		"condition_description": rec.Condition,
		"observed_at":           rec.ObservedAt,
		"modified_at":           now,
	}
	if rec.Temperature != nil {
		set["temperature_celsius"] = *rec.Temperature
	}
	if rec.Humidity != nil {
		set["humidity_percent"] = *rec.Humidity
	}
	if rec.WindSpeed != nil {
		set["wind_speed_mps"] = *rec.WindSpeed
	}
	if rec.Visibility != nil {
		set["visibility_meters"] = *rec.Visibility
	}

	_, err := s.weather.UpdateOne(ctx,
		bson.M{"provider_city_id": rec.CityID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return &weather.StoreError{Op: "upsert", Err: err}
	}
	return nil
}

func (s *MongoStore) DeleteByCity(ctx context.Context, cityName string) (int64, error) {
	res, err := s.weather.DeleteOne(ctx, cityFilter(cityName))
	if err != nil {
		return 0, &weather.StoreError{Op: "delete", Err: err}
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Cities(ctx context.Context) ([]string, error) {
	values, err := s.weather.Distinct(ctx, "city_name", bson.M{})
	if err != nil {
		return nil, &weather.StoreError{Op: "distinct", Err: err}
	}
	cities := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			cities = append(cities, name)
		}
	}
	return cities, nil
}

func (s *MongoStore) AverageTemperature(ctx context.Context, cityName string) (float64, error) {
	return s.average(ctx, "$temperature_celsius", cityName)
}

func (s *MongoStore) AverageHumidity(ctx context.Context, cityName string) (float64, error) {
	return s.average(ctx, "$humidity_percent", cityName)
}

// average runs a group-by-nothing $avg pipeline, optionally $match-scoped
// to one city.
func (s *MongoStore) average(ctx context.Context, field, cityName string) (float64, error) {
	pipeline := mongo.Pipeline{}
	if cityName != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: cityFilter(cityName)}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: nil},
		{Key: "average", Value: bson.D{{Key: "$avg", Value: field}}},
	}}})

	cursor, err := s.weather.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, &weather.StoreError{Op: "aggregate", Err: err}
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Average *float64 `bson:"average"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, &weather.StoreError{Op: "aggregate", Err: err}
	}
	if len(rows) == 0 || rows[0].Average == nil {
		return 0, weather.ErrNotFound
	}
	return *rows[0].Average, nil
}

// TopCitiesByTemperature groups records by city name, averages the
// temperature, and returns the sorted, limited ranking.
func (s *MongoStore) TopCitiesByTemperature(ctx context.Context, descending bool, limit int) ([]weather.CityTemperature, error) {
	order := 1
	if descending {
		order = -1
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$city_name"},
			{Key: "average_temp", Value: bson.D{{Key: "$avg", Value: "$temperature_celsius"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "average_temp", Value: order}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cursor, err := s.weather.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, &weather.StoreError{Op: "aggregate", Err: err}
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name    string   `bson:"_id"`
		Average *float64 `bson:"average_temp"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, &weather.StoreError{Op: "aggregate", Err: err}
	}

	entries := make([]weather.CityTemperature, 0, len(rows))
	for _, row := range rows {
		if row.Average == nil {
			continue
		}
		entries = append(entries, weather.CityTemperature{
			CityName:    row.Name,
			Temperature: *row.Average,
		})
	}
	return entries, nil
}

// FindUsers lists stored users with the password hash projected away.
func (s *MongoStore) FindUsers(ctx context.Context) ([]users.User, error) {
	opts := options.Find().SetProjection(bson.M{"password_hash": 0})
	cursor, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &weather.StoreError{Op: "find users", Err: err}
	}
	defer cursor.Close(ctx)

	var out []users.User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, &weather.StoreError{Op: "find users", Err: err}
	}
	return out, nil
}
