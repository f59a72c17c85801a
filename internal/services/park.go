package services

import (
	"context"
	"fmt"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// ParkRepo defines the park repository operations consumed by the service.
type ParkRepo interface {
	Get(ctx context.Context, id int64) (*models.ParkDB, error)
	List(ctx context.Context, offset, limit int) ([]models.ParkDB, error)
	Save(ctx context.Context, name, description string, latitude, longitude float64, images string) (*models.ParkDB, error)
	Update(ctx context.Context, id int64, name, description string, latitude, longitude float64, images string) (*models.ParkDB, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ParkService owns park CRUD and publishes change events on mutations.
type ParkService struct {
	repo        ParkRepo
	kafkaWriter KafkaWriter
}

// NewParkService creates a new ParkService. kafkaWriter may be nil to
// disable event publishing.
func NewParkService(repo ParkRepo, kafkaWriter KafkaWriter) *ParkService {
	return &ParkService{repo: repo, kafkaWriter: kafkaWriter}
}

func validateParkInput(input models.ParkInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: park name is required", errs.ErrValidation)
	}
	return nil
}

// Get returns a park by id.
func (svc *ParkService) Get(ctx context.Context, id int64) (*models.Park, error) {
	park, err := svc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := models.ParkFromDB(*park)
	return &out, nil
}

// List returns parks within the given window.
func (svc *ParkService) List(ctx context.Context, offset, limit int) ([]models.Park, error) {
	rows, err := svc.repo.List(ctx, offset, limit)
	if err != nil {
		logger.Log.Errorw("failed to list parks", "error", err)
		return nil, err
	}

	parks := make([]models.Park, 0, len(rows))
	for _, row := range rows {
		parks = append(parks, models.ParkFromDB(row))
	}
	return parks, nil
}

// Create inserts a new park and publishes a change event.
func (svc *ParkService) Create(ctx context.Context, input models.ParkInput) (*models.Park, error) {
	if err := validateParkInput(input); err != nil {
		return nil, err
	}

	park, err := svc.repo.Save(ctx, input.Name, input.Description,
		input.Location.Latitude, input.Location.Longitude, input.Images)
	if err != nil {
		logger.Log.Errorw("failed to create park", "name", input.Name, "error", err)
		return nil, err
	}

	publishChange(ctx, svc.kafkaWriter, "park", park.ID, actionCreated)

	out := models.ParkFromDB(*park)
	return &out, nil
}

// Update replaces the mutable park fields and publishes a change event.
func (svc *ParkService) Update(ctx context.Context, id int64, input models.ParkInput) (*models.Park, error) {
	if err := validateParkInput(input); err != nil {
		return nil, err
	}

	park, err := svc.repo.Update(ctx, id, input.Name, input.Description,
		input.Location.Latitude, input.Location.Longitude, input.Images)
	if err != nil {
		return nil, err
	}

	publishChange(ctx, svc.kafkaWriter, "park", park.ID, actionUpdated)

	out := models.ParkFromDB(*park)
	return &out, nil
}

// Delete removes a park. Deletion is rejected with errs.ErrConflict while
// species still reference the park. Returns false when id is absent.
func (svc *ParkService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := svc.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		publishChange(ctx, svc.kafkaWriter, "park", id, actionDeleted)
	}
	return deleted, nil
}
