// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides cachet's standard CBOR encoding configuration.
//
// CBOR is the default serialization for sealed plaintext: lib/sealed
// encodes a value with this package before encryption and decodes the
// authenticated plaintext with it after decryption. The package exists
// so that every component encodes identically without duplicating
// configuration, and so tests and callers can depend on byte-stable
// encodings.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes. Determinism is
// not required for sealing itself (a fresh nonce randomizes every
// envelope regardless), but it keeps plaintext fixtures reproducible
// and lets callers hash an encoding, bind it as associated data, and
// expect the other side to derive the same bytes.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (sockets, files of concatenated
// items):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// # Struct Tag Rules
//
// The struct tag on a payload type documents its serialization
// contract:
//
//   - `cbor` tag: the type is only ever serialized as CBOR (sealed
//     plaintext, on-disk CBOR records).
//   - `json` tag: the type serves both JSON and CBOR. fxamacker/cbor
//     v2 reads `json` tags as fallback when `cbor` tags are absent,
//     so a single `json` tag controls field naming and omitempty for
//     both formats.
//
// Never use both `cbor` and `json` tags on the same field. The tag
// choice documents the contract; doubling up obscures whether a type
// participates in JSON serialization.
package codec
