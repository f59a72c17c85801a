package services

import (
	"context"
	"errors"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// WeatherProvider fetches current conditions from the external weather API.
type WeatherProvider interface {
	GetByCoordinates(ctx context.Context, latitude, longitude float64) (*models.Weather, error)
}

// WeatherCache caches weather lookups keyed by coordinates.
type WeatherCache interface {
	Get(ctx context.Context, latitude, longitude float64) (*models.Weather, error)
	Set(ctx context.Context, latitude, longitude float64, weather models.Weather) error
}

// WeatherService resolves a park to its coordinates and fetches current
// conditions, consulting the cache first. cache may be nil.
type WeatherService struct {
	parks    ParkReader
	cache    WeatherCache
	provider WeatherProvider
}

// NewWeatherService creates a new WeatherService instance.
func NewWeatherService(parks ParkReader, cache WeatherCache, provider WeatherProvider) *WeatherService {
	return &WeatherService{parks: parks, cache: cache, provider: provider}
}

// GetByPark returns current weather at a park's coordinates.
// An absent park yields errs.ErrNotFound; provider failures surface as-is.
func (svc *WeatherService) GetByPark(ctx context.Context, parkID int64) (*models.Weather, error) {
	park, err := svc.parks.Get(ctx, parkID)
	if err != nil {
		return nil, err
	}

	if svc.cache != nil {
		cached, err := svc.cache.Get(ctx, park.Latitude, park.Longitude)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			logger.Log.Errorw("weather cache lookup failed", "park_id", parkID, "error", err)
		}
	}

	weather, err := svc.provider.GetByCoordinates(ctx, park.Latitude, park.Longitude)
	if err != nil {
		return nil, err
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, park.Latitude, park.Longitude, *weather); err != nil {
			logger.Log.Errorw("weather cache store failed", "park_id", parkID, "error", err)
		}
	}

	return weather, nil
}
