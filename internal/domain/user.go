package domain

import (
	"context"
	"time"
)

// Application roles. Role and Active are mutated only through the admin service.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered internal user. Internal users are the only
// identities subject to schedule conflict checks.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(name, email, passwordHash, salt, role string, createdAt, updatedAt time.Time) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		Role:         role,
		Active:       true,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateRole(ctx context.Context, userID, role string) error
	UpdateActive(ctx context.Context, userID string, active bool) error
	Search(ctx context.Context, query, excludeUserID string, limit int) ([]*User, error)
}

// AuthService defines registration and credential verification.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

// AdminService defines admin-only user management. Every operation verifies
// that the caller holds the admin role against the store, not just the token.
type AdminService interface {
	ListUsers(ctx context.Context, callerID string) ([]*User, error)
	CreateUser(ctx context.Context, callerID, name, email, password, role string) (*User, error)
	UpdateRole(ctx context.Context, callerID, userID, role string) error
	UpdateActive(ctx context.Context, callerID, userID string, active bool) error
}

// SearchResult is one row of the participant autocomplete, tagged by source.
// Type is "user" for internal users and "guest" for external guests.
// swagger:model SearchResult
type SearchResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

// DirectoryService merges internal users and external guests for autocomplete.
type DirectoryService interface {
	SearchParticipants(ctx context.Context, query, excludeUserID string) ([]*SearchResult, error)
}
