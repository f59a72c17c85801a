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

// defaultListLimit caps list windows; out-of-range offset/limit values are
// clamped silently instead of erroring.
const defaultListLimit = 100

func clampWindow(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return offset, limit
}

// ParkRepository owns CRUD operations over the parks table.
type ParkRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewParkRepository creates a park repository. txGetter may be nil; when it
// yields a transaction for the current request, all statements run inside it.
func NewParkRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ParkRepository {
	return &ParkRepository{db: db, txGetter: txGetter}
}

func (r *ParkRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Get returns a park by id or errs.ErrNotFound.
func (r *ParkRepository) Get(ctx context.Context, id int64) (*models.ParkDB, error) {
	const query = `
		SELECT id, name, description, latitude, longitude, images, created_at, updated_at
		FROM parks
		WHERE id = $1
	`

	var park models.ParkDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &park, query, id)

	logger.Log.Infow("park get",
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
	return &park, nil
}

// List returns parks ordered by id within the given offset/limit window.
func (r *ParkRepository) List(ctx context.Context, offset, limit int) ([]models.ParkDB, error) {
	const query = `
		SELECT id, name, description, latitude, longitude, images, created_at, updated_at
		FROM parks
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	offset, limit = clampWindow(offset, limit)

	var parks []models.ParkDB
	err := sqlx.SelectContext(ctx, r.executor(ctx), &parks, query, offset, limit)

	logger.Log.Infow("park list",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{offset, limit},
		"count", len(parks),
		"error", err,
	)

	return parks, err
}

// Save inserts a new park and returns the stored row with generated id
// and timestamps.
func (r *ParkRepository) Save(ctx context.Context, name, description string, latitude, longitude float64, images string) (*models.ParkDB, error) {
	const query = `
		INSERT INTO parks (name, description, latitude, longitude, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, name, description, latitude, longitude, images, created_at, updated_at
	`

	args := []any{name, description, latitude, longitude, images}

	var park models.ParkDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &park, query, args...)

	logger.Log.Infow("park save",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &park, nil
}

// Update replaces the mutable park fields and refreshes updated_at.
// Returns errs.ErrNotFound without side effects when id is absent.
func (r *ParkRepository) Update(ctx context.Context, id int64, name, description string, latitude, longitude float64, images string) (*models.ParkDB, error) {
	const query = `
		UPDATE parks
		SET name = $2, description = $3, latitude = $4, longitude = $5, images = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, latitude, longitude, images, created_at, updated_at
	`

	args := []any{id, name, description, latitude, longitude, images}

	var park models.ParkDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &park, query, args...)

	logger.Log.Infow("park update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &park, nil
}

// Delete removes a park. Returns false when id is absent. Deleting a park
// that still has species attached fails with errs.ErrConflict (the foreign
// key is declared RESTRICT; dependent species must be removed first).
func (r *ParkRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM parks WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("park delete",
		"query", query,
		"args", []any{id},
		"rows_affected", rowsAffected,
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, errs.ErrConflict
		}
		return false, err
	}
	return rowsAffected > 0, nil
}

// Count returns the number of parks. Used as the seeding idempotence guard.
func (r *ParkRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM parks`

	var count int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &count, query)

	logger.Log.Infow("park count",
		"query", query,
		"count", count,
		"error", err,
	)

	return count, err
}
