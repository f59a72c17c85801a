package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/models"
)

// WeatherReader resolves a park to current weather at its coordinates.
type WeatherReader interface {
	GetByPark(ctx context.Context, parkID int64) (*models.Weather, error)
}

// NewParkWeatherHandler returns an HTTP handler for the weather lookup.
// @Summary Current weather at a park
// @Description Best-effort pass-through to the external weather provider, cached briefly.
// @Tags parks
// @Produce json
// @Param park_id path int true "Park id"
// @Success 200 {object} models.Weather "Current weather"
// @Failure 404 {object} handlers.ErrorResponse "Park not found"
// @Failure 500 {object} handlers.ErrorResponse "Weather provider failure"
// @Router /parks/{park_id}/weather [get]
func NewParkWeatherHandler(svc WeatherReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parkID, err := strconv.ParseInt(chi.URLParam(r, "park_id"), 10, 64)
		if err != nil || parkID <= 0 {
			writeError(w, errs.ErrValidation)
			return
		}

		weather, err := svc.GetByPark(r.Context(), parkID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, weather)
	}
}
