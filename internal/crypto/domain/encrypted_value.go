// Package domain defines the core cryptographic types and errors for
// authenticated field encryption.
package domain

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"

	appvalidation "github.com/allisson/appsecrets/internal/validation"
)

// EncryptedValue is the serialized form of an authenticated encryption result.
//
// IV holds the base64-encoded random nonce generated for the operation and
// Ciphertext holds the base64-encoded AEAD output (encrypted data with the
// authentication tag appended). Both fields are required to decrypt; a value
// with only one of them populated is corrupt.
type EncryptedValue struct {
	IV         string `json:"iv"`
	Ciphertext string `json:"data"`
}

// Validate checks that both components are present and base64-decodable.
func (v EncryptedValue) Validate() error {
	err := validation.Errors{
		"iv":   validation.Validate(v.IV, validation.Required.Error("is required"), appvalidation.Base64),
		"data": validation.Validate(v.Ciphertext, validation.Required.Error("is required"), appvalidation.Base64),
	}.Filter()
	return appvalidation.WrapValidationError(err)
}

// Decode returns the raw nonce and ciphertext bytes.
// All decode failures collapse to ErrDecryptionFailed so callers cannot
// distinguish malformed input from authentication failures.
func (v EncryptedValue) Decode() (nonce, ciphertext []byte, err error) {
	nonce, err = base64.StdEncoding.DecodeString(v.IV)
	if err != nil {
		return nil, nil, ErrDecryptionFailed
	}
	ciphertext, err = base64.StdEncoding.DecodeString(v.Ciphertext)
	if err != nil {
		return nil, nil, ErrDecryptionFailed
	}
	return nonce, ciphertext, nil
}

// NewEncryptedValue builds the serialized form from raw nonce and ciphertext bytes.
func NewEncryptedValue(nonce, ciphertext []byte) EncryptedValue {
	return EncryptedValue{
		IV:         base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}
}
