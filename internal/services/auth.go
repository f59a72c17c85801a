package services

import (
	"context"
	"errors"
	"fmt"

	"tunisia-parks/internal/errs"
	"tunisia-parks/internal/jwt"
	"tunisia-parks/internal/logger"
	"tunisia-parks/internal/models"
	"tunisia-parks/internal/password"
)

// UserReader defines read-only user operations needed by the auth service.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines write operations needed by the auth service.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash string) (*models.UserDB, error)
}

// Tokener issues and verifies bearer tokens.
type Tokener interface {
	Generate(ctx context.Context, username, role string) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthService handles registration, login and principal resolution.
type AuthService struct {
	reader UserReader
	writer UserWriter
	tokens Tokener
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens Tokener) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		tokens: tokens,
	}
}

// Register creates a new user with the default visitor role. The password is
// hashed before storage. A taken username yields errs.ErrAlreadyExists: the
// lookup here is a fast path, the unique constraint in the store settles races.
func (svc *AuthService) Register(ctx context.Context, username, plaintext string) (*models.User, error) {
	if username == "" || plaintext == "" {
		return nil, fmt.Errorf("%w: username and password are required", errs.ErrValidation)
	}

	_, err := svc.reader.GetByUsername(ctx, username)
	if err == nil {
		logger.Log.Infow("registration rejected, username taken", "username", username)
		return nil, errs.ErrAlreadyExists
	}
	if !errors.Is(err, errs.ErrNotFound) {
		logger.Log.Errorw("failed to check username", "username", username, "error", err)
		return nil, err
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "error", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, username, hash)
	if err != nil {
		logger.Log.Errorw("failed to save user", "username", username, "error", err)
		return nil, err
	}

	out := models.UserFromDB(*user)
	return &out, nil
}

// Login authenticates a user and returns a signed token carrying the
// username and the role at issuance time.
func (svc *AuthService) Login(ctx context.Context, username, plaintext string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrInvalidCredentials
		}
		logger.Log.Errorw("failed to get user", "username", username, "error", err)
		return "", err
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		logger.Log.Infow("invalid credentials", "username", username)
		return "", errs.ErrInvalidCredentials
	}

	token, err := svc.tokens.Generate(ctx, user.Username, user.Role)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "error", err)
		return "", err
	}

	return token, nil
}

// Authenticate verifies a token and resolves it to a principal. The user is
// re-fetched by username so a role change or deletion after token issuance
// takes effect on the next request.
func (svc *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.Principal, error) {
	claims, err := svc.tokens.GetClaims(ctx, tokenString)
	if err != nil {
		return nil, errs.ErrUnauthorized
	}

	user, err := svc.reader.GetByUsername(ctx, claims.Username())
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUnauthorized
		}
		logger.Log.Errorw("failed to resolve principal", "username", claims.Username(), "error", err)
		return nil, err
	}

	return &models.Principal{Username: user.Username, Role: user.Role}, nil
}

// RequireAdmin fails with errs.ErrForbidden unless the principal carries
// the admin role.
func (svc *AuthService) RequireAdmin(principal *models.Principal) error {
	if !principal.IsAdmin() {
		return errs.ErrForbidden
	}
	return nil
}

// CurrentUser returns the full user record behind a principal.
func (svc *AuthService) CurrentUser(ctx context.Context, principal *models.Principal) (*models.User, error) {
	user, err := svc.reader.GetByUsername(ctx, principal.Username)
	if err != nil {
		return nil, err
	}
	out := models.UserFromDB(*user)
	return &out, nil
}
