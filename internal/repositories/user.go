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

// UserRepository owns CRUD operations over the users table. The unique
// constraint on username is the authoritative uniqueness guard; any
// application-level pre-check is only a fast path.
type UserRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewUserRepository creates a user repository. txGetter may be nil.
func NewUserRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserRepository {
	return &UserRepository{db: db, txGetter: txGetter}
}

func (r *UserRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Get returns a user by id or errs.ErrNotFound.
func (r *UserRepository) Get(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, id)

	logger.Log.Infow("user get",
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
	return &user, nil
}

// GetByUsername returns a user by username or errs.ErrNotFound.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, username)

	logger.Log.Infow("user get by username",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns users ordered by id within the given offset/limit window.
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]models.UserDB, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM users
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	offset, limit = clampWindow(offset, limit)

	var users []models.UserDB
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query, offset, limit)

	logger.Log.Infow("user list",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{offset, limit},
		"count", len(users),
		"error", err,
	)

	return users, err
}

// Save inserts a new user with the visitor role and returns the stored row.
// A duplicate username fails with errs.ErrAlreadyExists; under concurrent
// inserts of the same username exactly one wins and the rest get the
// constraint violation.
func (r *UserRepository) Save(ctx context.Context, username, passwordHash string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (username, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, username, password_hash, role, created_at, updated_at
	`

	args := []any{username, passwordHash, models.RoleVisitor}

	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, args...)

	logger.Log.Infow("user save",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, "[redacted]", models.RoleVisitor},
		"error", err,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, errs.ErrAlreadyExists
		}
		return nil, err
	}
	return &user, nil
}

// UpdateRole sets a user's role and refreshes updated_at.
// Returns errs.ErrNotFound when id is absent.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role string) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, username, password_hash, role, created_at, updated_at
	`

	args := []any{id, role}

	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, args...)

	logger.Log.Infow("user update role",
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
	return &user, nil
}
