package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// --- Setup Postgres ---
func setupPostgres(t *testing.T) (*sqlx.DB, func()) {
	logger.Initialize("debug")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, err := container.Host(ctx)
	assert.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	assert.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := sqlx.Connect("pgx", dsn)
	assert.NoError(t, err)

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	err = Bootstrap(ctx, db)
	assert.NoError(t, err)

	return db, func() {
		db.Close()
		container.Terminate(ctx)
	}
}

// --- Helpers ---
func savePark(t *testing.T, repo *ParkRepository, name string) *models.ParkDB {
	park, err := repo.Save(context.Background(), name, "desc", 37.15, 9.666, "https://example.com/a.jpg")
	assert.NoError(t, err)
	return park
}

func TestParkRepository_SaveAndGet(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewParkRepository(db, nil)

	saved, err := repo.Save(ctx, "Ichkeul National Park", "A beautiful national park in northern Tunisia.", 37.15, 9.666, "https://example.com/ichkeul1.jpg")
	assert.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := repo.Get(ctx, saved.ID)
	assert.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Ichkeul National Park", got.Name)
	assert.Equal(t, 37.15, got.Latitude)
	assert.Equal(t, 9.666, got.Longitude)
}

func TestParkRepository_Get_NotFound(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()

	repo := NewParkRepository(db, nil)

	_, err := repo.Get(context.Background(), 404)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestParkRepository_Update(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewParkRepository(db, nil)
	saved := savePark(t, repo, "Ichkeul National Park")

	updated, err := repo.Update(ctx, saved.ID, "Renamed Park", "new desc", 36.742, 10.266, "")
	assert.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "Renamed Park", updated.Name)
	assert.Equal(t, 36.742, updated.Latitude)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(saved.UpdatedAt))
}

func TestParkRepository_Update_NotFound(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewParkRepository(db, nil)
	saved := savePark(t, repo, "Ichkeul National Park")

	_, err := repo.Update(ctx, 404, "Nope", "", 0, 0, "")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// The failed update must leave existing rows untouched.
	got, err := repo.Get(ctx, saved.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ichkeul National Park", got.Name)
}

func TestParkRepository_Delete(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewParkRepository(db, nil)
	saved := savePark(t, repo, "Ichkeul National Park")

	deleted, err := repo.Delete(ctx, saved.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, saved.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestParkRepository_Delete_WithSpecies(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	parks := NewParkRepository(db, nil)
	species := NewSpeciesRepository(db, nil)

	park := savePark(t, parks, "Ichkeul National Park")
	_, err := species.Save(ctx, "African Golden Wolf", "Canis anthus", park.ID, "", "")
	assert.NoError(t, err)

	// The RESTRICT foreign key blocks the delete while species remain.
	_, err = parks.Delete(ctx, park.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)

	got, err := parks.Get(ctx, park.ID)
	assert.NoError(t, err)
	assert.Equal(t, park.ID, got.ID)
}

func TestParkRepository_List(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewParkRepository(db, nil)
	first := savePark(t, repo, "Ichkeul National Park")
	second := savePark(t, repo, "Boukornine National Park")
	third := savePark(t, repo, "El Feija National Park")

	t.Run("ordered by id", func(t *testing.T) {
		parks, err := repo.List(ctx, 0, 100)
		assert.NoError(t, err)
		assert.Len(t, parks, 3)
		assert.Equal(t, first.ID, parks[0].ID)
		assert.Equal(t, second.ID, parks[1].ID)
		assert.Equal(t, third.ID, parks[2].ID)
	})

	t.Run("offset and limit", func(t *testing.T) {
		parks, err := repo.List(ctx, 1, 1)
		assert.NoError(t, err)
		assert.Len(t, parks, 1)
		assert.Equal(t, second.ID, parks[0].ID)
	})

	t.Run("out-of-range window is clamped", func(t *testing.T) {
		parks, err := repo.List(ctx, -5, -1)
		assert.NoError(t, err)
		assert.Len(t, parks, 3)
	})

	t.Run("offset past the end yields empty", func(t *testing.T) {
		parks, err := repo.List(ctx, 10, 10)
		assert.NoError(t, err)
		assert.Empty(t, parks)
	})
}

func TestParkRepository_Count(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewParkRepository(db, nil)

	count, err := repo.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	savePark(t, repo, "Ichkeul National Park")
	savePark(t, repo, "Boukornine National Park")

	count, err = repo.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
