package domain

import (
	"github.com/allisson/appsecrets/internal/errors"
)

var (
	// ErrInvalidSecretsRecord indicates a persisted root secrets record that
	// cannot be used: missing keys, wrong key length, or non-hex content.
	// Callers regenerate the record rather than failing startup.
	ErrInvalidSecretsRecord = errors.Wrap(errors.ErrInvalidInput, "invalid root secrets record")
)
