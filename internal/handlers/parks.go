package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"tunisia-parks/internal/models"
)

// ParksReader defines the read-only park operations used by handlers.
type ParksReader interface {
	Get(ctx context.Context, id int64) (*models.Park, error)
	List(ctx context.Context, offset, limit int) ([]models.Park, error)
}

// ParksWriter defines the mutating park operations used by handlers.
type ParksWriter interface {
	Create(ctx context.Context, input models.ParkInput) (*models.Park, error)
	Update(ctx context.Context, id int64, input models.ParkInput) (*models.Park, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// NewListParksHandler returns an HTTP handler listing parks.
// @Summary List parks
// @Description Returns parks in a stable id order within an offset/limit window
// @Tags parks
// @Produce json
// @Param offset query int false "Window offset"
// @Param limit query int false "Window limit"
// @Success 200 {array} models.Park "Parks"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /parks [get]
func NewListParksHandler(svc ParksReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := windowParams(r)

		parks, err := svc.List(r.Context(), offset, limit)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, parks)
	}
}

// NewGetParkHandler returns an HTTP handler fetching a single park.
// @Summary Get park
// @Tags parks
// @Produce json
// @Param id path int true "Park id"
// @Success 200 {object} models.Park "Park"
// @Failure 404 {object} handlers.ErrorResponse "Park not found"
// @Router /parks/{id} [get]
func NewGetParkHandler(svc ParksReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		park, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, park)
	}
}

// NewCreateParkHandler returns an HTTP handler creating a park.
// @Summary Create park
// @Description Creates a park. Admin only.
// @Tags parks
// @Accept json
// @Produce json
// @Param parkInput body models.ParkInput true "Park fields"
// @Success 201 {object} models.Park "Created park"
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Router /parks [post]
// @Security BearerAuth
func NewCreateParkHandler(svc ParksWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.ParkInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		park, err := svc.Create(r.Context(), input)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, park)
	}
}

// NewUpdateParkHandler returns an HTTP handler updating a park.
// @Summary Update park
// @Description Replaces the mutable park fields. Admin only.
// @Tags parks
// @Accept json
// @Produce json
// @Param id path int true "Park id"
// @Param parkInput body models.ParkInput true "Park fields"
// @Success 200 {object} models.Park "Updated park"
// @Failure 404 {object} handlers.ErrorResponse "Park not found"
// @Router /parks/{id} [put]
// @Security BearerAuth
func NewUpdateParkHandler(svc ParksWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var input models.ParkInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		park, err := svc.Update(r.Context(), id, input)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, park)
	}
}

// NewDeleteParkHandler returns an HTTP handler deleting a park.
// @Summary Delete park
// @Description Deletes a park. Fails with 409 while species still reference it. Admin only.
// @Tags parks
// @Param id path int true "Park id"
// @Success 204 "Deleted"
// @Failure 404 {object} handlers.ErrorResponse "Park not found"
// @Failure 409 {object} handlers.ErrorResponse "Park has dependent species"
// @Router /parks/{id} [delete]
// @Security BearerAuth
func NewDeleteParkHandler(svc ParksWriter) http.HandlerFunc {
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
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Park not found"})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
