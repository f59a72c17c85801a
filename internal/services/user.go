package services

import (
	"context"
	"fmt"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// UserRepo defines the user repository operations consumed by the service.
type UserRepo interface {
	Get(ctx context.Context, id int64) (*models.UserDB, error)
	List(ctx context.Context, offset, limit int) ([]models.UserDB, error)
	UpdateRole(ctx context.Context, id int64, role string) (*models.UserDB, error)
}

// UserService owns the admin-gated user directory operations.
type UserService struct {
	repo UserRepo
}

// NewUserService creates a new UserService instance.
func NewUserService(repo UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Get returns a user by id.
func (svc *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := svc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := models.UserFromDB(*user)
	return &out, nil
}

// List returns users within the given window.
func (svc *UserService) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	rows, err := svc.repo.List(ctx, offset, limit)
	if err != nil {
		logger.Log.Errorw("failed to list users", "error", err)
		return nil, err
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, models.UserFromDB(row))
	}
	return users, nil
}

// UpdateRole sets a user's role. The role must be one of the enumerated
// set; unknown roles fail with errs.ErrValidation.
func (svc *UserService) UpdateRole(ctx context.Context, id int64, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", errs.ErrValidation, role)
	}

	user, err := svc.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	logger.Log.Infow("user role updated", "id", id, "role", role)

	out := models.UserFromDB(*user)
	return &out, nil
}
