package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/models"
	"tunisia-parks/internal/services"
)

type fakeWeatherProvider struct {
	weather *models.Weather
	err     error
	calls   int
}

func (f *fakeWeatherProvider) GetByCoordinates(_ context.Context, _, _ float64) (*models.Weather, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	cpy := *f.weather
	return &cpy, nil
}

type fakeWeatherCache struct {
	byKey map[[2]float64]models.Weather
}

func newFakeWeatherCache() *fakeWeatherCache {
	return &fakeWeatherCache{byKey: map[[2]float64]models.Weather{}}
}

func (f *fakeWeatherCache) Get(_ context.Context, latitude, longitude float64) (*models.Weather, error) {
	w, ok := f.byKey[[2]float64{latitude, longitude}]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &w, nil
}

func (f *fakeWeatherCache) Set(_ context.Context, latitude, longitude float64, weather models.Weather) error {
	f.byKey[[2]float64{latitude, longitude}] = weather
	return nil
}

func TestWeatherService_GetByPark(t *testing.T) {
	parks := newFakeParkRepo()
	park, err := parks.Save(context.Background(), "Ichkeul National Park", "", 37.15, 9.666, "")
	assert.NoError(t, err)

	provider := &fakeWeatherProvider{weather: &models.Weather{
		Temperature: 21.5,
		Description: "clear sky",
		Humidity:    64,
		WindSpeed:   3.2,
	}}
	cache := newFakeWeatherCache()
	svc := services.NewWeatherService(parks, cache, provider)

	weather, err := svc.GetByPark(context.Background(), park.ID)
	assert.NoError(t, err)
	assert.Equal(t, 21.5, weather.Temperature)
	assert.Equal(t, 1, provider.calls)

	// Second lookup is served from the cache.
	weather, err = svc.GetByPark(context.Background(), park.ID)
	assert.NoError(t, err)
	assert.Equal(t, "clear sky", weather.Description)
	assert.Equal(t, 1, provider.calls)
}

func TestWeatherService_ParkNotFound(t *testing.T) {
	provider := &fakeWeatherProvider{weather: &models.Weather{}}
	svc := services.NewWeatherService(newFakeParkRepo(), newFakeWeatherCache(), provider)

	_, err := svc.GetByPark(context.Background(), 404)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Zero(t, provider.calls)
}

func TestWeatherService_ProviderError(t *testing.T) {
	parks := newFakeParkRepo()
	park, err := parks.Save(context.Background(), "Ichkeul National Park", "", 37.15, 9.666, "")
	assert.NoError(t, err)

	provider := &fakeWeatherProvider{err: errors.New("provider unavailable")}
	svc := services.NewWeatherService(parks, newFakeWeatherCache(), provider)

	_, err = svc.GetByPark(context.Background(), park.ID)
	assert.EqualError(t, err, "provider unavailable")
}

func TestWeatherService_NilCache(t *testing.T) {
	parks := newFakeParkRepo()
	park, err := parks.Save(context.Background(), "Ichkeul National Park", "", 37.15, 9.666, "")
	assert.NoError(t, err)

	provider := &fakeWeatherProvider{weather: &models.Weather{Temperature: 18}}
	svc := services.NewWeatherService(parks, nil, provider)

	weather, err := svc.GetByPark(context.Background(), park.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(18), weather.Temperature)
}
