package commands

import (
	"fmt"
	"io"

	"github.com/allisson/appsecrets/internal/password"
)

// RunHashPassword hashes a plaintext password with Argon2id and prints the
// encoded hash.
func RunHashPassword(hasher password.Hasher, writer io.Writer, plainPassword string) error {
	hash, err := hasher.Hash(plainPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, _ = fmt.Fprintln(writer, hash)
	return nil
}

// RunVerifyPassword checks a plaintext password against an encoded hash.
// Returns an error on mismatch so scripts can branch on the exit code.
func RunVerifyPassword(hasher password.Hasher, writer io.Writer, plainPassword, encodedHash string) error {
	if !hasher.Verify(plainPassword, encodedHash) {
		return fmt.Errorf("password does not match hash")
	}

	_, _ = fmt.Fprintln(writer, "password matches hash")
	return nil
}
