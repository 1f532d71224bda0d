// Package password provides Argon2id password hashing for admin credentials.
package password

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/appsecrets/internal/errors"
)

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	// Hash derives a self-describing encoded hash from a plaintext password.
	// The encoded form embeds the algorithm parameters and a random salt, so
	// hashing the same password twice yields different results.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the encoded hash.
	// Malformed or truncated hashes never cause an error or panic; they
	// simply fail verification.
	Verify(password, encodedHash string) bool
}

// argon2idHasher implements Hasher using Argon2id.
type argon2idHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewArgon2idHasher creates a Hasher using the Argon2id interactive policy
// (64 MiB memory, 2 passes, parallelism 1). The memory cost is the main
// defense against GPU cracking of leaked hashes.
func NewArgon2idHasher() Hasher {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &argon2idHasher{
		hasher: hasher,
	}
}

// Hash hashes a plaintext password using Argon2id.
func (a *argon2idHasher) Hash(password string) (string, error) {
	encodedHash, err := a.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return encodedHash, nil
}

// Verify performs a constant-time comparison between a password and its hash.
func (a *argon2idHasher) Verify(password, encodedHash string) bool {
	ok, err := a.hasher.Verify([]byte(password), encodedHash)
	if err != nil {
		return false
	}
	return ok
}
