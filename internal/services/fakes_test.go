package services_test

import (
	"context"
	"sort"
	"time"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/models"
)

// fakeParkRepo is an in-memory stand-in for the park repository.
type fakeParkRepo struct {
	byID   map[int64]*models.ParkDB
	nextID int64

	saveErr error
}

func newFakeParkRepo() *fakeParkRepo {
	return &fakeParkRepo{byID: map[int64]*models.ParkDB{}}
}

func (f *fakeParkRepo) Get(_ context.Context, id int64) (*models.ParkDB, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *p
	return &cpy, nil
}

func (f *fakeParkRepo) List(_ context.Context, offset, limit int) ([]models.ParkDB, error) {
	ids := make([]int64, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var out []models.ParkDB
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *f.byID[ids[i]])
	}
	return out, nil
}

func (f *fakeParkRepo) Save(_ context.Context, name, description string, latitude, longitude float64, images string) (*models.ParkDB, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.nextID++
	now := time.Now()
	p := &models.ParkDB{
		ID:          f.nextID,
		Name:        name,
		Description: description,
		Latitude:    latitude,
		Longitude:   longitude,
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.byID[p.ID] = p
	cpy := *p
	return &cpy, nil
}

func (f *fakeParkRepo) Update(_ context.Context, id int64, name, description string, latitude, longitude float64, images string) (*models.ParkDB, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	p.Name = name
	p.Description = description
	p.Latitude = latitude
	p.Longitude = longitude
	p.Images = images
	p.UpdatedAt = time.Now()
	cpy := *p
	return &cpy, nil
}

func (f *fakeParkRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeParkRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

// fakeSpeciesRepo is an in-memory stand-in for the species repository.
type fakeSpeciesRepo struct {
	byID   map[int64]*models.SpeciesDB
	nextID int64
}

func newFakeSpeciesRepo() *fakeSpeciesRepo {
	return &fakeSpeciesRepo{byID: map[int64]*models.SpeciesDB{}}
}

func (f *fakeSpeciesRepo) Get(_ context.Context, id int64) (*models.SpeciesDB, error) {
	sp, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *sp
	return &cpy, nil
}

func (f *fakeSpeciesRepo) List(_ context.Context, offset, limit int) ([]models.SpeciesDB, error) {
	ids := make([]int64, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var out []models.SpeciesDB
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, *f.byID[ids[i]])
	}
	return out, nil
}

func (f *fakeSpeciesRepo) ListByPark(_ context.Context, parkID int64) ([]models.SpeciesDB, error) {
	ids := make([]int64, 0, len(f.byID))
	for id, sp := range f.byID {
		if sp.ParkID == parkID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.SpeciesDB
	for _, id := range ids {
		out = append(out, *f.byID[id])
	}
	return out, nil
}

func (f *fakeSpeciesRepo) Save(_ context.Context, name, scientificName string, parkID int64, description, image string) (*models.SpeciesDB, error) {
	f.nextID++
	now := time.Now()
	sp := &models.SpeciesDB{
		ID:             f.nextID,
		Name:           name,
		ScientificName: scientificName,
		ParkID:         parkID,
		Description:    description,
		Image:          image,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.byID[sp.ID] = sp
	cpy := *sp
	return &cpy, nil
}

func (f *fakeSpeciesRepo) Update(_ context.Context, id int64, name, scientificName string, parkID int64, description, image string) (*models.SpeciesDB, error) {
	sp, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	sp.Name = name
	sp.ScientificName = scientificName
	sp.ParkID = parkID
	sp.Description = description
	sp.Image = image
	sp.UpdatedAt = time.Now()
	cpy := *sp
	return &cpy, nil
}

func (f *fakeSpeciesRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

// fakeUserDirectory extends the user store with the directory operations.
type fakeUserDirectory struct {
	*fakeUserStore
}

func (f *fakeUserDirectory) Get(_ context.Context, id int64) (*models.UserDB, error) {
	for _, u := range f.byName {
		if u.ID == id {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUserDirectory) List(_ context.Context, offset, limit int) ([]models.UserDB, error) {
	users := make([]models.UserDB, 0, len(f.byName))
	for _, u := range f.byName {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset > len(users) {
		offset = len(users)
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], nil
}

func (f *fakeUserDirectory) UpdateRole(_ context.Context, id int64, role string) (*models.UserDB, error) {
	for _, u := range f.byName {
		if u.ID == id {
			u.Role = role
			u.UpdatedAt = time.Now()
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}
