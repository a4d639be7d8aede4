// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"github.com/cachet-foundation/cachet/lib/aead"
	"github.com/cachet-foundation/cachet/lib/codec"
	"github.com/cachet-foundation/cachet/lib/nonce"
)

// Suite is a cipher suite for [WithSuite], re-exported from lib/aead
// so that common callers need only this package.
type Suite = aead.Suite

// The available cipher suites. XChaCha20Poly1305 is the default.
var (
	XChaCha20Poly1305 = aead.XChaCha20Poly1305
	ChaCha20Poly1305  = aead.ChaCha20Poly1305
	AES256GCM         = aead.AES256GCM
)

// Codec serializes values into the plaintext that gets encrypted,
// and back. The default is deterministic CBOR from lib/codec. Both
// sides of a seal must use the same codec; a mismatch surfaces as
// ErrDecode after a successful authentication.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// cborCodec adapts lib/codec's package functions to the Codec
// interface.
type cborCodec struct{}

func (cborCodec) Marshal(v any) ([]byte, error)      { return codec.Marshal(v) }
func (cborCodec) Unmarshal(data []byte, v any) error { return codec.Unmarshal(data, v) }

// settings is the resolved configuration of one Seal or Open call.
type settings struct {
	suite       aead.Suite
	source      nonce.Source
	codec       Codec
	aad         []byte
	compression CompressionPolicy
}

func defaultSettings() settings {
	return settings{
		suite:  aead.XChaCha20Poly1305,
		source: nonce.Random(),
		codec:  cborCodec{},
	}
}

func resolve(options []Option) settings {
	resolved := defaultSettings()
	for _, option := range options {
		option(&resolved)
	}
	return resolved
}

// Option adjusts a single Seal or Open call. With no options the
// configuration is XChaCha20-Poly1305, random nonces, deterministic
// CBOR, no associated data, no compression. Everything an Option
// sets is part of the out-of-band agreement: Seal and Open must be
// called with matching options (the nonce source excepted, which
// only Seal uses).
type Option func(*settings)

// WithAssociatedData binds additional authenticated data to the
// envelope. The data is neither stored nor encrypted; Open must
// present byte-identical data or fail with ErrAuthentication. Use it
// to pin an envelope to its context (a record ID, a recipient, a
// purpose string) so ciphertext cannot be replayed elsewhere.
func WithAssociatedData(aad []byte) Option {
	return func(s *settings) { s.aad = aad }
}

// WithSuite selects the cipher suite. The envelope does not record
// the suite; both sides must agree out of band.
func WithSuite(suite aead.Suite) Option {
	return func(s *settings) { s.suite = suite }
}

// WithNonceSource replaces the default random nonce source. See
// lib/nonce for the counter sources and their single-writer
// requirement. Only Seal draws nonces; on Open the option is
// accepted and ignored, so one options slice can serve both calls.
func WithNonceSource(source nonce.Source) Option {
	return func(s *settings) { s.source = source }
}

// WithCodec replaces the default deterministic CBOR codec.
func WithCodec(c Codec) Option {
	return func(s *settings) { s.codec = c }
}

// WithCompression compresses the encoded plaintext before encryption
// and transparently decompresses after authentication. Sealing
// chooses an algorithm per the policy; opening reads the algorithm
// from the compression frame, so any enabled policy opens envelopes
// sealed under any other. An envelope sealed with compression cannot
// be opened without it (and vice versa): the mismatch surfaces as
// ErrDecode.
func WithCompression(policy CompressionPolicy) Option {
	return func(s *settings) { s.compression = policy }
}
