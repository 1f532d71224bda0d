package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	keystoreService "github.com/allisson/appsecrets/internal/keystore/service"
)

// bootstrapOutput describes the root secrets record without exposing key material.
type bootstrapOutput struct {
	Path                   string `json:"path"`
	EncryptionKeySHA256    string `json:"encryption_key_sha256"`
	SessionCookieKeySHA256 string `json:"session_cookie_key_sha256"`
}

// RunBootstrap ensures the root secrets record exists, creating it on first run.
// Prints the record path and SHA-256 fingerprints of the keys so operators can
// confirm which secrets a deployment is using without seeing the key material.
func RunBootstrap(
	ctx context.Context,
	store *keystoreService.FileStore,
	logger *slog.Logger,
	writer io.Writer,
	path string,
	format string,
) error {
	rootSecrets, err := store.GetOrCreate(ctx)
	if err != nil {
		return fmt.Errorf("failed to load root secrets: %w", err)
	}

	output := bootstrapOutput{
		Path:                   path,
		EncryptionKeySHA256:    fingerprint(rootSecrets.EncryptionKey),
		SessionCookieKeySHA256: fingerprint(rootSecrets.SessionCookieSecret),
	}

	if format == "json" {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Root secrets ready at %s\n", output.Path)
		_, _ = fmt.Fprintf(writer, "Encryption key fingerprint:     %s\n", output.EncryptionKeySHA256)
		_, _ = fmt.Fprintf(writer, "Session cookie key fingerprint: %s\n", output.SessionCookieKeySHA256)
	}

	logger.Info("root secrets bootstrap completed", slog.String("path", path))
	return nil
}

// fingerprint returns the hex SHA-256 digest of the key text.
func fingerprint(keyText string) string {
	sum := sha256.Sum256([]byte(keyText))
	return hex.EncodeToString(sum[:])
}
