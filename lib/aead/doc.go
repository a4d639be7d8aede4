// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

// Package aead defines the cipher suites available for sealing.
//
// A [Suite] bundles an AEAD construction with its nonce size and tag
// size: [XChaCha20Poly1305] (the default), [ChaCha20Poly1305], and
// [AES256GCM]. All three take 32-byte keys and append 16-byte tags;
// they differ in nonce size and cipher core.
//
// There is no registry and no lookup by name from wire data. Suite
// choice is part of the out-of-band agreement between the parties
// that also covers the key, so an envelope can stay a bare
// nonce-plus-ciphertext concatenation.
package aead
