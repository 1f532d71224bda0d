package domain

// Algorithm represents the cryptographic algorithm used for encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data (AEAD),
// ensuring both confidentiality and authenticity of encrypted data.
//
// Algorithm selection guidelines:
//   - Use AESGCM on modern CPUs with AES-NI hardware acceleration
//   - Use ChaCha20 on systems without AES-NI
//   - Both provide equivalent 256-bit security when used correctly
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// AES-GCM combines AES encryption with GMAC authentication. It uses a
	// 256-bit key, a 12-byte nonce and a 16-byte authentication tag, and
	// provides excellent performance on hardware with AES-NI acceleration.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	//
	// ChaCha20-Poly1305 combines the ChaCha20 stream cipher with the Poly1305
	// MAC. It uses the same 256-bit key, 12-byte nonce and 16-byte tag sizes
	// as AES-GCM and performs well without hardware acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the required key length in bytes for all supported algorithms.
	KeySize = 32
	// NonceSize is the nonce length in bytes for all supported algorithms.
	NonceSize = 12
	// TagSize is the authentication tag length in bytes for all supported algorithms.
	TagSize = 16
)
