package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Keeper wraps and unwraps the secrets record with an external key.
// *secrets.Keeper from gocloud.dev implements it.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// OpenKeeper opens a KMS keeper for the given key URI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func OpenKeeper(ctx context.Context, keyURI string) (*secrets.Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
