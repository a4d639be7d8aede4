// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"fmt"

	"github.com/cachet-foundation/cachet/lib/envelope"
	"github.com/cachet-foundation/cachet/lib/secret"
)

// Sealed is an authenticated-encrypted container for a value of type
// T. The type parameter binds at compile time which type the
// container opens as; it leaves no trace in the bytes. A Sealed value
// is exactly the envelope bytes: safe to copy, store, and transmit.
// Holding one grants no access to the plaintext; opening requires
// the key.
//
// The zero value is an empty container that fails Open with
// ErrFormat.
type Sealed[T any] struct {
	envelope []byte
}

// FromBytes wraps envelope bytes received from storage or transport
// in a typed container. Only emptiness is rejected here: full
// structural validation happens in Open, which knows the cipher
// suite's sizes. Choosing T is a claim about what the bytes should
// decode as; a wrong claim surfaces as ErrDecode on opening, after
// authentication.
func FromBytes[T any](data []byte) (Sealed[T], error) {
	if len(data) == 0 {
		return Sealed[T]{}, fmt.Errorf("%w: empty envelope", ErrFormat)
	}
	buffer := make([]byte, len(data))
	copy(buffer, data)
	return Sealed[T]{envelope: buffer}, nil
}

// Bytes returns a copy of the envelope.
func (s Sealed[T]) Bytes() []byte {
	out := make([]byte, len(s.envelope))
	copy(out, s.envelope)
	return out
}

// Size returns the envelope length in bytes.
func (s Sealed[T]) Size() int { return len(s.envelope) }

// IsZero reports whether the container is empty.
func (s Sealed[T]) IsZero() bool { return len(s.envelope) == 0 }

// String returns a short description without the envelope contents.
func (s Sealed[T]) String() string {
	return fmt.Sprintf("sealed(%d bytes)", len(s.envelope))
}

// Seal encrypts value under key and returns the sealed container.
//
// The pipeline: encode value with the codec, draw a fresh nonce from
// the source, AEAD-encrypt (binding any associated data), and
// concatenate nonce and ciphertext into the envelope. Every call
// draws a new nonce, so sealing the same value twice yields
// different envelopes.
//
// The key is borrowed for the duration of the call. Intermediate
// plaintext buffers are zeroed before returning.
func Seal[T any](value T, key *Key, options ...Option) (Sealed[T], error) {
	cfg := resolve(options)

	if err := key.usable(); err != nil {
		return Sealed[T]{}, err
	}

	plaintext, err := cfg.codec.Marshal(value)
	if err != nil {
		return Sealed[T]{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if cfg.compression != CompressionNever {
		framed, err := compressFrame(plaintext, cfg.compression)
		secret.Zero(plaintext)
		if err != nil {
			return Sealed[T]{}, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		plaintext = framed
	}
	defer secret.Zero(plaintext)

	out, err := sealBytes(cfg, key, plaintext)
	if err != nil {
		return Sealed[T]{}, err
	}
	return Sealed[T]{envelope: out}, nil
}

// Open authenticates and decrypts the container, returning the
// value. Open is atomic: on any failure the returned value is the
// zero T and nothing of the plaintext escapes.
//
// Failures are classified. A structurally short envelope returns
// ErrFormat. AEAD rejection returns the bare ErrAuthentication: a
// wrong key, a modified envelope, and mismatched associated data are
// deliberately indistinguishable. An authenticated plaintext that
// does not decode as T returns ErrDecode.
//
// The key is borrowed for the duration of the call. Intermediate
// plaintext buffers are zeroed before returning.
func (s Sealed[T]) Open(key *Key, options ...Option) (T, error) {
	var zero T
	cfg := resolve(options)

	if err := key.usable(); err != nil {
		return zero, err
	}

	plaintext, err := openBytes(cfg, key, s.envelope)
	if err != nil {
		return zero, err
	}
	defer secret.Zero(plaintext)

	decoded := plaintext
	if cfg.compression != CompressionNever {
		decoded, err = decompressFrame(plaintext)
		if err != nil {
			return zero, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		// decoded may alias plaintext (raw frames); zeroing both is
		// harmless.
		defer secret.Zero(decoded)
	}

	var value T
	if err := cfg.codec.Unmarshal(decoded, &value); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return value, nil
}

// Reseal decrypts the container under oldKey and seals the identical
// plaintext under newKey with a fresh nonce. The value is never
// decoded and re-encoded, so Reseal preserves the exact plaintext
// bytes (compression framing included) and works uniformly for any
// T. Use it for key rotation sweeps.
//
// Both keys are borrowed. Failures classify exactly as in Open.
func Reseal[T any](s Sealed[T], oldKey, newKey *Key, options ...Option) (Sealed[T], error) {
	cfg := resolve(options)

	if err := oldKey.usable(); err != nil {
		return Sealed[T]{}, err
	}
	if err := newKey.usable(); err != nil {
		return Sealed[T]{}, err
	}

	plaintext, err := openBytes(cfg, oldKey, s.envelope)
	if err != nil {
		return Sealed[T]{}, err
	}
	defer secret.Zero(plaintext)

	out, err := sealBytes(cfg, newKey, plaintext)
	if err != nil {
		return Sealed[T]{}, err
	}
	return Sealed[T]{envelope: out}, nil
}

// sealBytes runs the nonce and encryption stages over
// already-encoded plaintext and returns the envelope.
func sealBytes(cfg settings, key *Key, plaintext []byte) ([]byte, error) {
	aead, err := cfg.suite.New(key.buffer.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKey, err)
	}

	nonceBytes, err := cfg.source.Next(cfg.suite.NonceSize())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNonce, err)
	}
	if len(nonceBytes) != cfg.suite.NonceSize() {
		return nil, fmt.Errorf("%w: source returned %d bytes, suite needs %d",
			ErrNonce, len(nonceBytes), cfg.suite.NonceSize())
	}

	ciphertext := aead.Seal(nil, nonceBytes, plaintext, cfg.aad)
	return envelope.Encode(nonceBytes, ciphertext), nil
}

// openBytes runs the envelope and decryption stages, returning the
// raw plaintext (still framed when compression was used).
func openBytes(cfg settings, key *Key, data []byte) ([]byte, error) {
	nonceBytes, ciphertext, err := envelope.Decode(data, cfg.suite.NonceSize(), cfg.suite.Overhead())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	aead, err := cfg.suite.New(key.buffer.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKey, err)
	}

	plaintext, err := aead.Open(nil, nonceBytes, ciphertext, cfg.aad)
	if err != nil {
		// No cause detail: wrong key, tampered bytes, and mismatched
		// associated data must stay indistinguishable.
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
