// Package service provides cryptographic services for authenticated field
// encryption. Implements AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305) and the
// string-oriented field cipher built on top of them.
package service

import (
	cryptoDomain "github.com/allisson/appsecrets/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// FieldCipher defines the interface for encrypting and decrypting string
// fields before they reach persistent storage.
type FieldCipher interface {
	// EncryptString encrypts a plaintext string into its serialized form.
	// Every call generates a fresh random nonce, so encrypting the same
	// plaintext twice yields different results.
	EncryptString(plaintext string) (cryptoDomain.EncryptedValue, error)

	// DecryptString recovers the plaintext from a serialized encrypted value.
	// Any failure, whether malformed encoding, a truncated nonce, or an
	// authentication error, is reported as ErrDecryptionFailed.
	DecryptString(value cryptoDomain.EncryptedValue) (string, error)
}
