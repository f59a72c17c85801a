package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"tunisia-parks/internal/middlewares"
	"tunisia-parks/internal/models"
)

// Registerer defines the registration operation used by the handler.
type Registerer interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
}

// Loginer defines the login operation used by the handler.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// CurrentUserProvider resolves a principal to its full user record.
type CurrentUserProvider interface {
	CurrentUser(ctx context.Context, principal *models.Principal) (*models.User, error)
}

// UserDirectory defines the admin-gated user directory operations.
type UserDirectory interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]models.User, error)
	UpdateRole(ctx context.Context, id int64, role string) (*models.User, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: john_doe_123
	Username string `json:"username"`

	// Password
	// required: true
	// example: StrongP@$$wOrd123
	Password string `json:"password"`
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// example: john_doe_123
	Username string `json:"username"`

	// Password
	// required: true
	// example: StrongP@$$wOrd123
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// Bearer token
	// example: JWT_TOKEN
	AccessToken string `json:"access_token"`

	// Token type
	// example: bearer
	TokenType string `json:"token_type"`
}

// UpdateRoleRequest represents the JSON body for a role change
// swagger:model UpdateRoleRequest
type UpdateRoleRequest struct {
	// New role
	// required: true
	// example: admin
	Role string `json:"role"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user with the default visitor role. The password is hashed before storage.
// @Tags users
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "Registration request"
// @Success 201 {object} models.User "Created user"
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Failure 409 {object} handlers.ErrorResponse "Username already registered"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		user, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates a user and returns a bearer token carrying username and role.
// @Tags users
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.LoginResponse "Bearer token"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		token, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// NewMeHandler returns an HTTP handler for the authenticated user's record.
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} models.User "Current user"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /users/me [get]
// @Security BearerAuth
func NewMeHandler(svc CurrentUserProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := middlewares.GetPrincipalFromContext(r.Context())
		if principal == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		user, err := svc.CurrentUser(r.Context(), principal)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewListUsersHandler returns an HTTP handler listing users.
// @Summary List users
// @Description Returns users within an offset/limit window. Admin only.
// @Tags users
// @Produce json
// @Param offset query int false "Window offset"
// @Param limit query int false "Window limit"
// @Success 200 {array} models.User "Users"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Router /users [get]
// @Security BearerAuth
func NewListUsersHandler(svc UserDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := windowParams(r)

		users, err := svc.List(r.Context(), offset, limit)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}

// NewGetUserHandler returns an HTTP handler fetching a single user.
// @Summary Get user
// @Description Returns one user by id. Admin only.
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} models.User "User"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{id} [get]
// @Security BearerAuth
func NewGetUserHandler(svc UserDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// NewUpdateUserRoleHandler returns an HTTP handler changing a user's role.
// @Summary Update user role
// @Description Sets a user's role to visitor or admin. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param updateRoleRequest body handlers.UpdateRoleRequest true "New role"
// @Success 200 {object} models.User "Updated user"
// @Failure 400 {object} handlers.ErrorResponse "Unknown role"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{id}/role [put]
// @Security BearerAuth
func NewUpdateUserRoleHandler(svc UserDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var req UpdateRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		user, err := svc.UpdateRole(r.Context(), id, req.Role)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
