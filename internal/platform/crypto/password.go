// Package crypto implements the reversible password cipher. Stored
// passwords are AES-256-GCM ciphertexts keyed by the process-wide
// CRYPTO_SECRET_KEY; comparison decrypts and checks string equality.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"template_backend/internal/shared/apperr"
)

// kdfSalt is fixed: the secret is process-wide, so derivation must be
// deterministic across restarts or stored passwords become unreadable.
const kdfSalt = "template_backend.password.v1"

const kdfIterations = 4096

// Cipher encrypts and compares stored passwords.
type Cipher struct {
	key []byte
}

// NewCipher derives a 32-byte AES key from the configured secret.
func NewCipher(secret string) *Cipher {
	key := pbkdf2.Key([]byte(secret), []byte(kdfSalt), kdfIterations, 32, sha256.New)
	return &Cipher{key: key}
}

// Encrypt returns the hex-encoded AES-GCM ciphertext of plaintext with a
// random nonce prepended. Failures surface as Unauthorized, matching the
// login error path.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", apperr.Unauthorized("unauthorized")
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", apperr.Unauthorized("unauthorized")
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", apperr.Unauthorized("unauthorized")
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. A malformed ciphertext or wrong key is
// indistinguishable from a bad password: both surface as Unauthorized.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", apperr.Unauthorized("unauthorized")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", apperr.Unauthorized("unauthorized")
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", apperr.Unauthorized("unauthorized")
	}

	if len(raw) < gcm.NonceSize() {
		return "", apperr.Unauthorized("unauthorized")
	}

	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", apperr.Unauthorized("unauthorized")
	}

	return string(plaintext), nil
}

// Compare decrypts the stored ciphertext and checks exact equality with
// the presented password.
func (c *Cipher) Compare(plaintext, ciphertext string) (bool, error) {
	decrypted, err := c.Decrypt(ciphertext)
	if err != nil {
		return false, err
	}
	return decrypted == plaintext, nil
}
