// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/hkdf"

	"github.com/cachet-foundation/cachet/lib/secret"
)

// KeySize is the length in bytes of every sealing key, across all
// cipher suites.
const KeySize = 32

// keyIDContext is the BLAKE3 derive-key context string for key
// fingerprints. Changing it changes every fingerprint.
const keyIDContext = "cachet.sealed.keyid.v1"

// Key is a sealing key held in guarded memory: mmap-backed, locked
// against swap, excluded from core dumps, zeroed on Close. Seal and
// Open borrow the key for the duration of the call and never retain,
// serialize, or log it. The only log-safe artifact is [Key.ID].
//
// Close a key when it is no longer needed. Operations on a closed
// key return ErrKey.
type Key struct {
	buffer *secret.Buffer
	closed atomic.Bool
}

// NewKey generates a fresh random key. The material is drawn from
// crypto/rand directly into guarded memory.
func NewKey() (*Key, error) {
	buffer, err := secret.NewRandom(KeySize)
	if err != nil {
		return nil, fmt.Errorf("sealed: generating key: %w", err)
	}
	return &Key{buffer: buffer}, nil
}

// KeyFromBytes creates a key from existing material, which must be
// exactly KeySize bytes. The source slice is copied into guarded
// memory and zeroed in place, so the caller's copy no longer holds
// the key.
func KeyFromBytes(material []byte) (*Key, error) {
	if len(material) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrKey, len(material), KeySize)
	}
	buffer, err := secret.NewFromBytes(material)
	if err != nil {
		return nil, fmt.Errorf("sealed: protecting key material: %w", err)
	}
	return &Key{buffer: buffer}, nil
}

// KeyFromFile reads a key from a file, or from stdin if path is "-".
// The source must hold either exactly KeySize raw bytes or their
// hex encoding; surrounding whitespace is trimmed.
func KeyFromFile(path string) (*Key, error) {
	buffer, err := secret.ReadFromPath(path)
	if err != nil {
		return nil, err
	}
	defer buffer.Close()

	material := buffer.Bytes()
	switch len(material) {
	case KeySize:
		copied := make([]byte, KeySize)
		copy(copied, material)
		return KeyFromBytes(copied)

	case hex.EncodedLen(KeySize):
		decoded := make([]byte, KeySize)
		if _, err := hex.Decode(decoded, material); err != nil {
			secret.Zero(decoded)
			return nil, fmt.Errorf("%w: %d-character key file is not valid hex", ErrKey, len(material))
		}
		return KeyFromBytes(decoded)

	default:
		return nil, fmt.Errorf("%w: key file holds %d bytes, want %d raw or %d hex characters",
			ErrKey, len(material), KeySize, hex.EncodedLen(KeySize))
	}
}

// DeriveKey derives a subkey from root using HKDF-SHA256 with the
// given info string. The same root and info always produce the same
// subkey; distinct info strings produce independent subkeys. Use it
// to give each layer of a nested seal, or each purpose in a
// protocol, its own key from one shared root.
//
// The root key is borrowed and NOT closed. The caller must Close the
// returned key. The HKDF salt is nil: root keys are uniformly random
// already, so the extract phase with a zero salt is appropriate per
// RFC 5869.
func DeriveKey(root *Key, info string) (*Key, error) {
	if err := root.usable(); err != nil {
		return nil, err
	}

	reader := hkdf.New(sha256.New, root.buffer.Bytes(), nil, []byte(info))
	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, derived); err != nil {
		secret.Zero(derived)
		return nil, fmt.Errorf("sealed: deriving key: %w", err)
	}

	// NewFromBytes copies into mmap and zeros the heap slice.
	buffer, err := secret.NewFromBytes(derived)
	if err != nil {
		return nil, fmt.Errorf("sealed: protecting derived key: %w", err)
	}
	return &Key{buffer: buffer}, nil
}

// usable validates the key for an operation.
func (k *Key) usable() error {
	switch {
	case k == nil || k.buffer == nil:
		return fmt.Errorf("%w: nil key", ErrKey)
	case k.closed.Load():
		return fmt.Errorf("%w: key is closed", ErrKey)
	}
	return nil
}

// ID returns a short public fingerprint: the hex encoding of 8 bytes
// of BLAKE3 derive-key output over the key material under a fixed
// context string. The fingerprint identifies a key in logs and
// metadata without revealing anything recoverable about it. Returns
// "invalid" for a nil or closed key.
func (k *Key) ID() string {
	if k.usable() != nil {
		return "invalid"
	}
	var fingerprint [8]byte
	blake3.DeriveKey(keyIDContext, k.buffer.Bytes(), fingerprint[:])
	return hex.EncodeToString(fingerprint[:])
}

// Equal reports whether two keys hold identical material, in constant
// time. A nil or closed key compares unequal to everything except
// itself.
func (k *Key) Equal(other *Key) bool {
	if k == other {
		return true
	}
	if k.usable() != nil || other.usable() != nil {
		return false
	}
	return k.buffer.Equal(other.buffer)
}

// Close zeros the key material and releases its memory. Idempotent.
// Do not close a key while a Seal or Open borrowing it is in flight.
func (k *Key) Close() error {
	if k == nil || k.buffer == nil {
		return nil
	}
	k.closed.Store(true)
	return k.buffer.Close()
}
