package services

import (
	"context"
	"errors"
	"fmt"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// SpeciesRepo defines the species repository operations consumed by the service.
type SpeciesRepo interface {
	Get(ctx context.Context, id int64) (*models.SpeciesDB, error)
	List(ctx context.Context, offset, limit int) ([]models.SpeciesDB, error)
	ListByPark(ctx context.Context, parkID int64) ([]models.SpeciesDB, error)
	Save(ctx context.Context, name, scientificName string, parkID int64, description, image string) (*models.SpeciesDB, error)
	Update(ctx context.Context, id int64, name, scientificName string, parkID int64, description, image string) (*models.SpeciesDB, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ParkReader checks park existence for the referential fast path.
type ParkReader interface {
	Get(ctx context.Context, id int64) (*models.ParkDB, error)
}

// SpeciesService owns species CRUD, enforces the species→park referential
// invariant and publishes change events on mutations.
type SpeciesService struct {
	repo        SpeciesRepo
	parks       ParkReader
	kafkaWriter KafkaWriter
}

// NewSpeciesService creates a new SpeciesService. kafkaWriter may be nil.
func NewSpeciesService(repo SpeciesRepo, parks ParkReader, kafkaWriter KafkaWriter) *SpeciesService {
	return &SpeciesService{repo: repo, parks: parks, kafkaWriter: kafkaWriter}
}

func validateSpeciesInput(input models.SpeciesInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: species name is required", errs.ErrValidation)
	}
	if input.ParkID <= 0 {
		return fmt.Errorf("%w: park_id is required", errs.ErrValidation)
	}
	return nil
}

// checkParkExists is the referential fast path; the foreign key constraint
// in the store remains the authoritative guard under concurrent deletes.
func (svc *SpeciesService) checkParkExists(ctx context.Context, parkID int64) error {
	_, err := svc.parks.Get(ctx, parkID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrParkNotFound
		}
		return err
	}
	return nil
}

// Get returns a species by id.
func (svc *SpeciesService) Get(ctx context.Context, id int64) (*models.Species, error) {
	sp, err := svc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := models.SpeciesFromDB(*sp)
	return &out, nil
}

// List returns species within the given window.
func (svc *SpeciesService) List(ctx context.Context, offset, limit int) ([]models.Species, error) {
	rows, err := svc.repo.List(ctx, offset, limit)
	if err != nil {
		logger.Log.Errorw("failed to list species", "error", err)
		return nil, err
	}

	species := make([]models.Species, 0, len(rows))
	for _, row := range rows {
		species = append(species, models.SpeciesFromDB(row))
	}
	return species, nil
}

// ListByPark returns all species belonging to a park.
func (svc *SpeciesService) ListByPark(ctx context.Context, parkID int64) ([]models.Species, error) {
	rows, err := svc.repo.ListByPark(ctx, parkID)
	if err != nil {
		logger.Log.Errorw("failed to list species by park", "park_id", parkID, "error", err)
		return nil, err
	}

	species := make([]models.Species, 0, len(rows))
	for _, row := range rows {
		species = append(species, models.SpeciesFromDB(row))
	}
	return species, nil
}

// Create inserts a new species after checking the referenced park exists,
// then publishes a change event.
func (svc *SpeciesService) Create(ctx context.Context, input models.SpeciesInput) (*models.Species, error) {
	if err := validateSpeciesInput(input); err != nil {
		return nil, err
	}
	if err := svc.checkParkExists(ctx, input.ParkID); err != nil {
		return nil, err
	}

	sp, err := svc.repo.Save(ctx, input.Name, input.ScientificName, input.ParkID, input.Description, input.Image)
	if err != nil {
		logger.Log.Errorw("failed to create species", "name", input.Name, "error", err)
		return nil, err
	}

	publishChange(ctx, svc.kafkaWriter, "species", sp.ID, actionCreated)

	out := models.SpeciesFromDB(*sp)
	return &out, nil
}

// Update replaces the mutable species fields, re-checking the park
// reference, and publishes a change event.
func (svc *SpeciesService) Update(ctx context.Context, id int64, input models.SpeciesInput) (*models.Species, error) {
	if err := validateSpeciesInput(input); err != nil {
		return nil, err
	}
	if err := svc.checkParkExists(ctx, input.ParkID); err != nil {
		return nil, err
	}

	sp, err := svc.repo.Update(ctx, id, input.Name, input.ScientificName, input.ParkID, input.Description, input.Image)
	if err != nil {
		return nil, err
	}

	publishChange(ctx, svc.kafkaWriter, "species", sp.ID, actionUpdated)

	out := models.SpeciesFromDB(*sp)
	return &out, nil
}

// Delete removes a species. Returns false when id is absent.
func (svc *SpeciesService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := svc.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		publishChange(ctx, svc.kafkaWriter, "species", id, actionDeleted)
	}
	return deleted, nil
}
