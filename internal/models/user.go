package models

import "time"

// User roles. New users default to visitor; role changes are admin-gated.
const (
	RoleVisitor = "visitor"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the enumerated user roles.
func ValidRole(role string) bool {
	return role == RoleVisitor || role == RoleAdmin
}

// UserDB represents a user row in the database.
// PasswordHash holds only the bcrypt hash, never the plaintext.
type UserDB struct {
	ID           int64     `db:"id"`            // Primary key
	Username     string    `db:"username"`      // Globally unique username
	PasswordHash string    `db:"password_hash"` // bcrypt hash of the password
	Role         string    `db:"role"`          // One of RoleVisitor, RoleAdmin
	CreatedAt    time.Time `db:"created_at"`    // Creation timestamp, immutable
	UpdatedAt    time.Time `db:"updated_at"`    // Refreshed on every mutation
}

// User is the external representation of a user. The password hash is
// deliberately absent.
// swagger:model User
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFromDB maps a database row to the external user shape.
func UserFromDB(u UserDB) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Principal is the authenticated identity derived from a verified token,
// re-fetched from the store so role changes take effect immediately.
type Principal struct {
	Username string
	Role     string
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
