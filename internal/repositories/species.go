package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
)

// SpeciesRepository owns CRUD operations over the species table.
type SpeciesRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewSpeciesRepository creates a species repository. txGetter may be nil.
func NewSpeciesRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *SpeciesRepository {
	return &SpeciesRepository{db: db, txGetter: txGetter}
}

func (r *SpeciesRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// foreignKeyViolation reports whether err is a postgres foreign key
// violation, i.e. species.park_id did not resolve to an existing park.
func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// Get returns a species by id or errs.ErrNotFound.
func (r *SpeciesRepository) Get(ctx context.Context, id int64) (*models.SpeciesDB, error) {
	const query = `
		SELECT id, name, scientific_name, park_id, description, image, created_at, updated_at
		FROM species
		WHERE id = $1
	`

	var sp models.SpeciesDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &sp, query, id)

	logger.Log.Infow("species get",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &sp, nil
}

// List returns species ordered by id within the given offset/limit window.
func (r *SpeciesRepository) List(ctx context.Context, offset, limit int) ([]models.SpeciesDB, error) {
	const query = `
		SELECT id, name, scientific_name, park_id, description, image, created_at, updated_at
		FROM species
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	offset, limit = clampWindow(offset, limit)

	var species []models.SpeciesDB
	err := sqlx.SelectContext(ctx, r.executor(ctx), &species, query, offset, limit)

	logger.Log.Infow("species list",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{offset, limit},
		"count", len(species),
		"error", err,
	)

	return species, err
}

// ListByPark returns all species belonging to a park, ordered by id.
func (r *SpeciesRepository) ListByPark(ctx context.Context, parkID int64) ([]models.SpeciesDB, error) {
	const query = `
		SELECT id, name, scientific_name, park_id, description, image, created_at, updated_at
		FROM species
		WHERE park_id = $1
		ORDER BY id
	`

	var species []models.SpeciesDB
	err := sqlx.SelectContext(ctx, r.executor(ctx), &species, query, parkID)

	logger.Log.Infow("species list by park",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{parkID},
		"count", len(species),
		"error", err,
	)

	return species, err
}

// Save inserts a new species and returns the stored row. A park_id that
// does not resolve to an existing park fails with errs.ErrParkNotFound;
// the foreign key constraint is the authoritative guard.
func (r *SpeciesRepository) Save(ctx context.Context, name, scientificName string, parkID int64, description, image string) (*models.SpeciesDB, error) {
	const query = `
		INSERT INTO species (name, scientific_name, park_id, description, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, name, scientific_name, park_id, description, image, created_at, updated_at
	`

	args := []any{name, scientificName, parkID, description, image}

	var sp models.SpeciesDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &sp, query, args...)

	logger.Log.Infow("species save",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		if foreignKeyViolation(err) {
			return nil, errs.ErrParkNotFound
		}
		return nil, err
	}
	return &sp, nil
}

// Update replaces the mutable species fields and refreshes updated_at.
// Returns errs.ErrNotFound when id is absent and errs.ErrParkNotFound when
// the new park_id does not resolve.
func (r *SpeciesRepository) Update(ctx context.Context, id int64, name, scientificName string, parkID int64, description, image string) (*models.SpeciesDB, error) {
	const query = `
		UPDATE species
		SET name = $2, scientific_name = $3, park_id = $4, description = $5, image = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, scientific_name, park_id, description, image, created_at, updated_at
	`

	args := []any{id, name, scientificName, parkID, description, image}

	var sp models.SpeciesDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &sp, query, args...)

	logger.Log.Infow("species update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		if foreignKeyViolation(err) {
			return nil, errs.ErrParkNotFound
		}
		return nil, err
	}
	return &sp, nil
}

// Delete removes a species. Returns false when id is absent; a second
// delete of the same id is a no-op.
func (r *SpeciesRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM species WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("species delete",
		"query", query,
		"args", []any{id},
		"rows_affected", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
