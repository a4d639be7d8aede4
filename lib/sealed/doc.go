// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed provides [Sealed], a typed container for
// authenticated encryption of arbitrary Go values. Seal a value of
// type T and you hold a Sealed[T]: opaque bytes that can be stored
// or transmitted freely, and that only yield the value back when
// opened with the same key. The type parameter binds at compile time
// what the container opens as; the bytes themselves carry no type
// information, no algorithm identifier, and no framing beyond
// [nonce || ciphertext+tag].
//
// Sealing encodes the value as deterministic CBOR (see lib/codec),
// draws a fresh nonce, and encrypts with an AEAD cipher. Opening
// runs the stages in reverse, and classifies failures by stage:
//
//   - [ErrFormat] -- envelope too short to contain nonce and tag
//   - [ErrAuthentication] -- AEAD rejection, returned bare: wrong
//     key, tampering, and associated-data mismatch are deliberately
//     indistinguishable
//   - [ErrDecode] -- authenticated plaintext does not decode as T
//
// The default cipher is XChaCha20-Poly1305 with random nonces, safe
// for any number of seals under one key. [WithSuite] selects
// ChaCha20-Poly1305 or AES-256-GCM; their 12-byte nonces call for
// [WithNonceSource] and a counter policy (lib/nonce) at high volume.
// Both sides must agree on the suite out of band: nothing in the
// envelope names it.
//
// Keys are 32 bytes, held in [secret.Buffer] mmap memory outside the
// Go heap (locked against swap, excluded from core dumps, zeroed on
// Close). Seal and Open borrow the key for the duration of the call
// and never log, serialize, or retain it.
//
// Key exports:
//
//   - [Seal] / [Sealed.Open] -- the round-trip
//   - [Reseal] -- key rotation without decoding the value
//   - [NewKey] / [KeyFromBytes] / [KeyFromFile] / [DeriveKey] -- keys
//   - [FromBytes] / [Sealed.Bytes] -- wire and storage interop
//   - [WithAssociatedData] / [WithSuite] / [WithNonceSource] /
//     [WithCodec] / [WithCompression] -- per-call options
//
// Sealed containers nest: a Sealed[T] is an ordinary value, so
// Sealed[Sealed[T]] seals it again under another key, and each layer
// peels off independently. Layered transport and escrow schemes fall
// out of plain composition.
//
// Depends on lib/secret for key memory, lib/aead for cipher suites,
// lib/envelope for the wire layout, lib/nonce for nonce policies,
// and lib/codec for serialization.
package sealed
