// Package facades wraps external collaborators behind narrow interfaces.
package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// OpenWeatherFacade fetches current conditions from the OpenWeatherMap API.
// The lookup is a best-effort pass-through: no retries, a single client
// timeout, errors surface to the caller.
type OpenWeatherFacade struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewOpenWeatherFacade creates a facade for the given API endpoint and key.
func NewOpenWeatherFacade(baseURL, apiKey string, timeout time.Duration) *OpenWeatherFacade {
	return &OpenWeatherFacade{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// openWeatherResponse mirrors the subset of the provider payload we consume.
type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// GetByCoordinates fetches current weather for the given coordinates.
func (f *OpenWeatherFacade) GetByCoordinates(ctx context.Context, latitude, longitude float64) (*models.Weather, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", latitude))
	q.Set("lon", fmt.Sprintf("%f", longitude))
	q.Set("appid", f.apiKey)
	q.Set("units", "metric")

	reqURL := fmt.Sprintf("%s?%s", f.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("weather provider request failed", "lat", latitude, "lon", longitude, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Errorw("weather provider returned non-OK status", "status", resp.StatusCode)
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	weather := &models.Weather{
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}
	if len(payload.Weather) > 0 {
		weather.Description = payload.Weather[0].Description
	}

	return weather, nil
}
