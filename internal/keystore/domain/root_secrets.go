// Package domain defines the root secrets record that anchors all other
// application cryptography.
package domain

import (
	"crypto/rand"
	"encoding/hex"

	validation "github.com/jellydator/validation"

	"github.com/allisson/appsecrets/internal/errors"
	appvalidation "github.com/allisson/appsecrets/internal/validation"
)

// KeyTextLength is the length in characters of each hex-encoded root key.
// 64 hex characters decode to a 32-byte (256-bit) key.
const KeyTextLength = 64

// RootSecrets is the durable record of the application's root key material.
//
// EncryptionKey seeds the field cipher used to protect sensitive values at
// rest and SessionCookieSecret signs browser session cookies. Both are
// 64-character hex strings decoding to 32 bytes. The record persists across
// restarts so previously encrypted data and issued sessions stay valid.
type RootSecrets struct {
	EncryptionKey       string `json:"encryptionKey"`
	SessionCookieSecret string `json:"sessionCookieSecret"`
}

// Validate checks that both keys are present and decode to exactly 32 bytes of hex.
func (r RootSecrets) Validate() error {
	if err := validateKeyText(r.EncryptionKey); err != nil {
		return errors.Wrap(err, "encryption key")
	}
	if err := validateKeyText(r.SessionCookieSecret); err != nil {
		return errors.Wrap(err, "session cookie secret")
	}
	return nil
}

// EncryptionKeyBytes returns the decoded 32-byte encryption key.
func (r RootSecrets) EncryptionKeyBytes() ([]byte, error) {
	if err := validateKeyText(r.EncryptionKey); err != nil {
		return nil, errors.Wrap(err, "encryption key")
	}
	return hex.DecodeString(r.EncryptionKey)
}

// SessionCookieSecretBytes returns the decoded 32-byte session cookie secret.
func (r RootSecrets) SessionCookieSecretBytes() ([]byte, error) {
	if err := validateKeyText(r.SessionCookieSecret); err != nil {
		return nil, errors.Wrap(err, "session cookie secret")
	}
	return hex.DecodeString(r.SessionCookieSecret)
}

func validateKeyText(keyText string) error {
	// HexKey enforces 64 hex characters decoding to a 32-byte key; any rule
	// failure collapses to the single record-level sentinel.
	if err := validation.Validate(keyText, validation.Required, appvalidation.HexKey); err != nil {
		return ErrInvalidSecretsRecord
	}
	return nil
}

// GenerateRootSecrets creates a fresh record with two independent random keys.
func GenerateRootSecrets() (RootSecrets, error) {
	encryptionKey, err := generateKeyText()
	if err != nil {
		return RootSecrets{}, err
	}

	sessionCookieSecret, err := generateKeyText()
	if err != nil {
		return RootSecrets{}, err
	}

	return RootSecrets{
		EncryptionKey:       encryptionKey,
		SessionCookieSecret: sessionCookieSecret,
	}, nil
}

func generateKeyText() (string, error) {
	raw := make([]byte, KeyTextLength/2)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Wrap(err, "failed to generate random key")
	}
	return hex.EncodeToString(raw), nil
}
