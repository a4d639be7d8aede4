// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope defines the binary layout of a sealed value: the
// nonce followed immediately by the AEAD ciphertext and tag.
//
//	[nonce][ciphertext+tag]
//
// The layout deliberately carries no self-description. Without the
// out-of-band suite agreement (and the key), an envelope is an opaque
// byte string that reveals only its length. [Encode] and [Decode] are
// the only operations; [MinSize] gives the smallest well-formed
// envelope for a suite's parameters.
package envelope
