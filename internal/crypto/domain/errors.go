package domain

import (
	"github.com/allisson/appsecrets/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	//
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305)
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// All keys must be exactly 32 bytes (256 bits) for both AES-256-GCM
	// and ChaCha20-Poly1305.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidKeyEncoding indicates the textual key material could not be decoded.
	//
	// Keys are accepted as 64-character hex or standard base64 text that
	// decodes to exactly 32 bytes.
	ErrInvalidKeyEncoding = errors.Wrap(errors.ErrInvalidInput, "invalid key encoding")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext has been tampered with (authentication failure)
	//   - Invalid or truncated nonce
	//   - Corrupted encrypted data
	//
	// For security reasons, the specific cause is not disclosed to prevent
	// information leakage that could aid attackers.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
