package sessiontoken

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const sealInfo = "stockme session token v1"

// sealer encrypts the bearer token carried by stateless cookies with
// AES-256-GCM. The key is derived from the session secret, and the session id
// is bound in as additional data so a sealed token cannot be moved between
// sessions.
type sealer struct {
	aead cipher.AEAD
}

func newSealer(secret []byte) (*sealer, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(sealInfo)), key); err != nil {
		return nil, fmt.Errorf("derive token key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &sealer{aead: aead}, nil
}

// seal returns base64url(nonce || ciphertext).
func (s *sealer) seal(plaintext, sessionID string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), []byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *sealer) open(sealed, sessionID string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode sealed token: %w", err)
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return "", errors.New("sealed token too short")
	}
	pt, err := s.aead.Open(nil, data[:n], data[n:], []byte(sessionID))
	if err != nil {
		return "", fmt.Errorf("open sealed token: %w", err)
	}
	return string(pt), nil
}
