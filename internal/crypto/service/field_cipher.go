package service

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"

	cryptoDomain "github.com/allisson/appsecrets/internal/crypto/domain"
)

// FieldCipherService implements FieldCipher on top of an AEAD cipher.
//
// It is the encryption boundary for sensitive string fields: values are
// encrypted before they are written to storage and decrypted after they are
// read back. The service holds a single long-lived cipher instance, so it is
// cheap to share and safe for concurrent use.
type FieldCipherService struct {
	aead AEAD
}

// NewFieldCipher creates a FieldCipher from textual key material.
//
// The key text is accepted as 64-character hex or standard base64 and must
// decode to exactly 32 bytes. The algorithm selects which AEAD construction
// the manager builds.
func NewFieldCipher(keyText string, alg cryptoDomain.Algorithm, manager AEADManager) (*FieldCipherService, error) {
	key, err := DecodeKeyText(keyText)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	aead, err := manager.CreateCipher(key, alg)
	if err != nil {
		return nil, err
	}

	return &FieldCipherService{aead: aead}, nil
}

// EncryptString encrypts a plaintext string with a fresh random nonce.
func (f *FieldCipherService) EncryptString(plaintext string) (cryptoDomain.EncryptedValue, error) {
	ciphertext, nonce, err := f.aead.Encrypt([]byte(plaintext), nil)
	if err != nil {
		return cryptoDomain.EncryptedValue{}, err
	}

	return cryptoDomain.NewEncryptedValue(nonce, ciphertext), nil
}

// DecryptString recovers the plaintext from a serialized encrypted value.
//
// All failure modes collapse to ErrDecryptionFailed: malformed base64, a
// nonce of the wrong length, and authentication failures are deliberately
// indistinguishable to callers.
func (f *FieldCipherService) DecryptString(value cryptoDomain.EncryptedValue) (string, error) {
	nonce, ciphertext, err := value.Decode()
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	// The AEAD implementations panic on nonces of the wrong length.
	if len(nonce) != cryptoDomain.NonceSize {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := f.aead.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// SafeCompare reports whether two strings are equal in constant time.
//
// Only the comparison of equal-length inputs is constant time; the length
// itself is not hidden.
func SafeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// DecodeKeyText decodes textual key material into raw bytes.
//
// 64-character hex is tried first, matching the on-disk representation of
// generated keys, then standard base64. The decoded key must be exactly
// 32 bytes.
func DecodeKeyText(keyText string) ([]byte, error) {
	var key []byte

	if raw, err := hex.DecodeString(keyText); err == nil {
		key = raw
	} else if raw, err := base64.StdEncoding.DecodeString(keyText); err == nil {
		key = raw
	} else {
		return nil, cryptoDomain.ErrInvalidKeyEncoding
	}

	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	return key, nil
}
