package facades

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpenWeatherFacade_GetByCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "37.150000", r.URL.Query().Get("lat"))
		assert.Equal(t, "9.666000", r.URL.Query().Get("lon"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"main": {"temp": 21.5, "humidity": 64},
			"weather": [{"description": "clear sky"}],
			"wind": {"speed": 3.2}
		}`))
	}))
	defer srv.Close()

	f := NewOpenWeatherFacade(srv.URL, "test-key", 5*time.Second)

	weather, err := f.GetByCoordinates(context.Background(), 37.15, 9.666)
	assert.NoError(t, err)
	assert.Equal(t, 21.5, weather.Temperature)
	assert.Equal(t, "clear sky", weather.Description)
	assert.Equal(t, 64, weather.Humidity)
	assert.Equal(t, 3.2, weather.WindSpeed)
}

func TestOpenWeatherFacade_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewOpenWeatherFacade(srv.URL, "test-key", 5*time.Second)

	weather, err := f.GetByCoordinates(context.Background(), 0, 0)
	assert.Error(t, err)
	assert.Nil(t, weather)
}

func TestOpenWeatherFacade_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	f := NewOpenWeatherFacade(srv.URL, "test-key", 5*time.Second)

	weather, err := f.GetByCoordinates(context.Background(), 0, 0)
	assert.Error(t, err)
	assert.Nil(t, weather)
}
