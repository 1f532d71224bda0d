package commands

import (
	"encoding/json"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/appsecrets/internal/crypto/domain"
	cryptoService "github.com/allisson/appsecrets/internal/crypto/service"
)

// RunEncryptValue encrypts a plaintext value with the root field cipher and
// prints the resulting nonce and ciphertext.
func RunEncryptValue(cipher cryptoService.FieldCipher, writer io.Writer, value, format string) error {
	encrypted, err := cipher.EncryptString(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	if format == "json" {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(encrypted); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}

	_, _ = fmt.Fprintf(writer, "iv:   %s\n", encrypted.IV)
	_, _ = fmt.Fprintf(writer, "data: %s\n", encrypted.Ciphertext)
	return nil
}

// RunDecryptValue decrypts a nonce and ciphertext pair produced by
// RunEncryptValue and prints the plaintext.
func RunDecryptValue(cipher cryptoService.FieldCipher, writer io.Writer, iv, data string) error {
	encrypted := cryptoDomain.EncryptedValue{
		IV:         iv,
		Ciphertext: data,
	}

	plaintext, err := cipher.DecryptString(encrypted)
	if err != nil {
		return fmt.Errorf("failed to decrypt value: %w", err)
	}

	_, _ = fmt.Fprintln(writer, plaintext)
	return nil
}
