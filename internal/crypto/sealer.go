// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/box"
)

// KeySize is the length of a Curve25519 key in bytes.
const KeySize = 32

var (
	// ErrInvalidPublicKey is returned for keys that are not base64 or not
	// KeySize bytes long.
	ErrInvalidPublicKey = errors.New("invalid public key")
	// ErrOpenFailed is returned by Open when the box does not authenticate.
	ErrOpenFailed = errors.New("sealed box could not be opened")
)

// sealedBoxSealer is the private implementation of [SecretSealer] based on
// anonymous NaCl sealed boxes (X25519, XSalsa20-Poly1305).
type sealedBoxSealer struct {
	rand io.Reader
}

// NewSecretSealer constructs a [SecretSealer] reading ephemeral keys from the
// OS CSPRNG.
func NewSecretSealer() SecretSealer {
	return &sealedBoxSealer{rand: rand.Reader}
}

func (s *sealedBoxSealer) Seal(publicKeyB64 string, plaintext []byte) (string, error) {
	recipient, err := DecodeKey(publicKeyB64)
	if err != nil {
		return "", err
	}

	sealed, err := box.SealAnonymous(nil, plaintext, recipient, s.rand)
	if err != nil {
		return "", fmt.Errorf("error sealing secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecodeKey decodes a base64 Curve25519 key.
func DecodeKey(keyB64 string) (*[KeySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPublicKey, KeySize, len(raw))
	}

	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}

// Open decrypts a base64 sealed box with the recipient key pair. It is the
// counterpart of Seal used by local stubs of the secrets endpoint.
func Open(sealedB64 string, publicKey, privateKey *[KeySize]byte) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(sealedB64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	plaintext, ok := box.OpenAnonymous(nil, sealed, publicKey, privateKey)
	if !ok {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}
