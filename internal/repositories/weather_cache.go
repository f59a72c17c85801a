package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// WeatherCacheRepository caches weather lookups in Redis, keyed by park
// coordinates. The weather call is best-effort; the cache only shields the
// external provider from repeated lookups for the same park.
type WeatherCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewWeatherCacheRepository creates a cache repository with the given TTL.
func NewWeatherCacheRepository(client *redis.Client, expiration time.Duration) *WeatherCacheRepository {
	return &WeatherCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func weatherKey(latitude, longitude float64) string {
	return fmt.Sprintf("weather:%.4f:%.4f", latitude, longitude)
}

// Get fetches cached weather for the given coordinates.
// A cache miss yields errs.ErrNotFound.
func (r *WeatherCacheRepository) Get(ctx context.Context, latitude, longitude float64) (*models.Weather, error) {
	key := weatherKey(latitude, longitude)

	val, err := r.client.Get(ctx, key).Result()

	logger.Log.Infow("weather cache get",
		"key", key,
		"error", err,
	)

	if err != nil {
		if err == redis.Nil {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	var weather models.Weather
	if err := json.Unmarshal([]byte(val), &weather); err != nil {
		return nil, err
	}
	return &weather, nil
}

// Set caches weather for the given coordinates with the configured TTL.
func (r *WeatherCacheRepository) Set(ctx context.Context, latitude, longitude float64, weather models.Weather) error {
	key := weatherKey(latitude, longitude)

	data, err := json.Marshal(weather)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("weather cache set",
		"key", key,
		"error", err,
	)

	return err
}
