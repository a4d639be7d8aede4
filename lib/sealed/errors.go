// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import "errors"

// Errors returned by Seal, Open, and the container codecs. They are
// sentinels: match with errors.Is.
var (
	// ErrEncode reports that the value could not be serialized before
	// encryption. Nothing has touched the key when this is returned.
	ErrEncode = errors.New("sealed: value encoding failed")

	// ErrFormat reports an envelope too short to contain a nonce and
	// authentication tag. It is structural: anyone holding the bytes
	// can observe it without the key.
	ErrFormat = errors.New("sealed: malformed envelope")

	// ErrAuthentication reports AEAD rejection. A wrong key, a
	// modified envelope, and mismatched associated data all produce
	// exactly this value with no further detail.
	ErrAuthentication = errors.New("sealed: authentication failed")

	// ErrDecode reports that an authenticated plaintext did not
	// deserialize into the requested type. The envelope was produced
	// by a key holder; the type, codec, or compression agreement is
	// what differs.
	ErrDecode = errors.New("sealed: plaintext decoding failed")

	// ErrKey reports an unusable key argument: nil, closed, or the
	// wrong size.
	ErrKey = errors.New("sealed: unusable key")

	// ErrNonce reports a nonce source failure: exhaustion, a short
	// yield, or an entropy error.
	ErrNonce = errors.New("sealed: nonce source failed")
)
