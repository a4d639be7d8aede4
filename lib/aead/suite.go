// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the key length in bytes shared by every suite in this
// package.
const KeySize = 32

// TagSize is the authentication tag length in bytes appended by every
// suite.
const TagSize = 16

// Suite identifies an AEAD construction and supplies its parameters.
// The zero value is not a valid suite; use one of the package
// variables. Which suite sealed a given envelope is an out-of-band
// agreement between the parties: nothing in the envelope records it.
type Suite struct {
	name      string
	nonceSize int
	factory   func(key []byte) (cipher.AEAD, error)
}

var (
	// XChaCha20Poly1305 is the default suite. Its 24-byte nonce keeps
	// random-nonce collision probability negligible at any realistic
	// seal volume.
	XChaCha20Poly1305 = Suite{
		name:      "xchacha20poly1305",
		nonceSize: chacha20poly1305.NonceSizeX,
		factory:   chacha20poly1305.NewX,
	}

	// ChaCha20Poly1305 is the RFC 8439 construction with a 12-byte
	// nonce. Use it with counter nonce sources, where the shorter
	// nonce carries no collision risk and saves 12 bytes per
	// envelope.
	ChaCha20Poly1305 = Suite{
		name:      "chacha20poly1305",
		nonceSize: chacha20poly1305.NonceSize,
		factory:   chacha20poly1305.New,
	}

	// AES256GCM is AES-256 in Galois/Counter Mode with a 12-byte
	// nonce, for deployments that require AES or want the hardware
	// acceleration on amd64 and arm64.
	AES256GCM = Suite{
		name:      "aes256gcm",
		nonceSize: 12,
		factory:   newAESGCM,
	}
)

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Name returns the suite identifier. Names exist for diagnostics and
// configuration display only; they never appear on the wire.
func (s Suite) Name() string { return s.name }

// String returns the suite name.
func (s Suite) String() string { return s.name }

// KeySize returns the required key length in bytes.
func (s Suite) KeySize() int { return KeySize }

// NonceSize returns the nonce length in bytes.
func (s Suite) NonceSize() int { return s.nonceSize }

// Overhead returns the authentication tag length in bytes.
func (s Suite) Overhead() int { return TagSize }

// Valid reports whether the suite is one of the package's defined
// constructions. The zero Suite is not.
func (s Suite) Valid() bool { return s.factory != nil }

// New returns a cipher.AEAD for the given key, which must be exactly
// KeySize bytes. The key slice is borrowed for construction; the
// returned AEAD holds its own expanded key schedule.
func (s Suite) New(key []byte) (cipher.AEAD, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("aead: zero Suite is not usable")
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("aead: %s key must be %d bytes, got %d", s.name, KeySize, len(key))
	}
	instance, err := s.factory(key)
	if err != nil {
		return nil, fmt.Errorf("aead: creating %s cipher: %w", s.name, err)
	}
	return instance, nil
}
