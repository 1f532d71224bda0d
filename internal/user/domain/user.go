// Package domain defines the core admin user entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/appsecrets/internal/errors"
)

// User represents an admin user in the system.
// Password always holds the Argon2id encoded hash, never the plaintext.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegisterUserInput contains the input data for user registration.
type RegisterUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidCredentials indicates a failed login attempt. Unknown email
	// and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrTooManyAttempts indicates the caller exceeded the login rate limit.
	ErrTooManyAttempts = errors.Wrap(errors.ErrUnauthorized, "too many login attempts")
)
