// Package cryptox seals small secrets for at-rest storage. The credential
// store uses it so bearer tokens never sit in plaintext on disk. This is
// protection against casual reads of the store file, not a substitute for an
// OS keychain: the key material lives on the same machine.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters for key derivation. Interactive-use profile from the
// argon2 paper; the derived key is cached on the Sealer so derivation runs
// once per process.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLen       = 32
)

// ErrCiphertext reports sealed data that is malformed or fails
// authentication.
var ErrCiphertext = errors.New("cryptox: invalid ciphertext")

// Sealer encrypts and decrypts secrets with AES-256-GCM. The key is derived
// from a passphrase and a per-install salt via argon2id, so sealed values
// from one install are useless on another.
type Sealer struct {
	key []byte
}

// NewSealer derives the sealing key from the given passphrase and salt.
func NewSealer(passphrase, salt []byte) *Sealer {
	return &Sealer{
		key: argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, keyLen),
	}
}

// Seal encrypts plaintext. Output layout: [nonce][ciphertext+tag].
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal, verifying the authentication tag.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, ErrCiphertext
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrCiphertext
	}

	return plaintext, nil
}

// SealString seals a string and encodes the result for storage in a text
// column.
func (s *Sealer) SealString(value string) (string, error) {
	sealed, err := s.Seal([]byte(value))
	if err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(sealed), nil
}

// OpenString reverses SealString.
func (s *Sealer) OpenString(encoded string) (string, error) {
	sealed, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrCiphertext
	}

	plaintext, err := s.Open(sealed)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func (s *Sealer) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}
