// Package domain defines the setting model for encrypted application settings.
// Sensitive setting values never reach the database in plaintext; each value
// is stored as an authenticated ciphertext with its nonce.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/appsecrets/internal/crypto/domain"
	"github.com/allisson/appsecrets/internal/errors"
)

// ErrCorruptedSetting indicates a stored row whose encrypted value is
// structurally broken, such as a nonce without its ciphertext.
var ErrCorruptedSetting = errors.Wrap(errors.ErrInvalidInput, "setting row is corrupted")

// Setting represents a single encrypted application setting.
type Setting struct {
	// ID is the unique identifier of the setting row.
	ID uuid.UUID
	// Key is the logical name used to access the setting (e.g., "llm_api_token").
	Key string
	// Value holds the encrypted setting value. Both the IV and the
	// ciphertext must be present; a row with only one of them is corrupt.
	Value cryptoDomain.EncryptedValue
	// CreatedAt is the UTC timestamp when the setting was first stored.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last value change.
	UpdatedAt time.Time
}

// Validate checks the structural invariants of a setting row.
func (s *Setting) Validate() error {
	if s.Key == "" {
		return errors.Wrap(errors.ErrInvalidInput, "setting key is required")
	}
	if err := s.Value.Validate(); err != nil {
		return err
	}
	return nil
}
