package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/models"
)

// SpeciesReader defines the read-only species operations used by handlers.
type SpeciesReader interface {
	Get(ctx context.Context, id int64) (*models.Species, error)
	List(ctx context.Context, offset, limit int) ([]models.Species, error)
	ListByPark(ctx context.Context, parkID int64) ([]models.Species, error)
}

// SpeciesWriter defines the mutating species operations used by handlers.
type SpeciesWriter interface {
	Create(ctx context.Context, input models.SpeciesInput) (*models.Species, error)
	Update(ctx context.Context, id int64, input models.SpeciesInput) (*models.Species, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// NewListSpeciesHandler returns an HTTP handler listing species.
// @Summary List species
// @Tags species
// @Produce json
// @Param offset query int false "Window offset"
// @Param limit query int false "Window limit"
// @Success 200 {array} models.Species "Species"
// @Router /species [get]
func NewListSpeciesHandler(svc SpeciesReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := windowParams(r)

		species, err := svc.List(r.Context(), offset, limit)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, species)
	}
}

// NewGetSpeciesHandler returns an HTTP handler fetching a single species.
// @Summary Get species
// @Tags species
// @Produce json
// @Param id path int true "Species id"
// @Success 200 {object} models.Species "Species"
// @Failure 404 {object} handlers.ErrorResponse "Species not found"
// @Router /species/{id} [get]
func NewGetSpeciesHandler(svc SpeciesReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		species, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, species)
	}
}

// NewListSpeciesByParkHandler returns an HTTP handler listing the species
// of one park.
// @Summary List species by park
// @Tags species
// @Produce json
// @Param park_id path int true "Park id"
// @Success 200 {array} models.Species "Species in the park"
// @Router /parks/{park_id}/species [get]
func NewListSpeciesByParkHandler(svc SpeciesReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parkID, err := strconv.ParseInt(chi.URLParam(r, "park_id"), 10, 64)
		if err != nil || parkID <= 0 {
			writeError(w, errs.ErrValidation)
			return
		}

		species, err := svc.ListByPark(r.Context(), parkID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, species)
	}
}

// NewCreateSpeciesHandler returns an HTTP handler creating a species.
// @Summary Create species
// @Description Creates a species. park_id must reference an existing park. Admin only.
// @Tags species
// @Accept json
// @Produce json
// @Param speciesInput body models.SpeciesInput true "Species fields"
// @Success 201 {object} models.Species "Created species"
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Failure 422 {object} handlers.ErrorResponse "Referenced park does not exist"
// @Router /species [post]
// @Security BearerAuth
func NewCreateSpeciesHandler(svc SpeciesWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.SpeciesInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		species, err := svc.Create(r.Context(), input)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, species)
	}
}

// NewUpdateSpeciesHandler returns an HTTP handler updating a species.
// @Summary Update species
// @Description Replaces the mutable species fields. Admin only.
// @Tags species
// @Accept json
// @Produce json
// @Param id path int true "Species id"
// @Param speciesInput body models.SpeciesInput true "Species fields"
// @Success 200 {object} models.Species "Updated species"
// @Failure 404 {object} handlers.ErrorResponse "Species not found"
// @Failure 422 {object} handlers.ErrorResponse "Referenced park does not exist"
// @Router /species/{id} [put]
// @Security BearerAuth
func NewUpdateSpeciesHandler(svc SpeciesWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var input models.SpeciesInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		species, err := svc.Update(r.Context(), id, input)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, species)
	}
}

// NewDeleteSpeciesHandler returns an HTTP handler deleting a species.
// @Summary Delete species
// @Description Deletes a species. Admin only.
// @Tags species
// @Param id path int true "Species id"
// @Success 204 "Deleted"
// @Failure 404 {object} handlers.ErrorResponse "Species not found"
// @Router /species/{id} [delete]
// @Security BearerAuth
func NewDeleteSpeciesHandler(svc SpeciesWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		deleted, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !deleted {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Species not found"})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
