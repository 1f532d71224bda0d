package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// AES-GCM combines AES encryption with GMAC authentication. This implementation
// uses AES-256 with a 256-bit key, a randomly generated 12-byte nonce per
// encryption and a 16-byte authentication tag appended to the ciphertext.
//
// The cipher instance is stateless and safe for concurrent use from multiple
// goroutines.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits). Keys should be generated
// using a cryptographically secure random number generator.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != 32 {
		return nil, errors.New("key must be exactly 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM with optional additional authenticated data.
//
// A unique 12-byte nonce is randomly generated for each encryption operation
// using crypto/rand; nonces must never be reused with the same key. The nonce
// must be stored alongside the ciphertext for later decryption.
//
// Returns the ciphertext (with the 16-byte authentication tag appended), the
// nonce, and any error encountered during nonce generation or encryption.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM with the provided nonce and AAD.
//
// The same AAD used during encryption must be provided for successful
// decryption. The authentication tag is verified before any plaintext is
// returned, so tampered ciphertext always fails.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
