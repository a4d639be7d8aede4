// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"errors"
	"fmt"
)

// ErrTruncated is returned by Decode when the data cannot contain a
// full nonce and authentication tag.
var ErrTruncated = errors.New("envelope: data too short")

// Encode concatenates nonce and ciphertext into an envelope:
//
//	[nonce][ciphertext+tag]
//
// There is no version byte, magic number, or length prefix. The
// cipher suite fixes the nonce and tag sizes, and suite agreement is
// out of band.
func Encode(nonce, ciphertext []byte) []byte {
	out := make([]byte, 0, len(nonce)+len(ciphertext))
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out
}

// Decode splits an envelope into its nonce and ciphertext parts. The
// returned slices alias data and stay valid as long as data does.
// Returns ErrTruncated (wrapped with the observed and minimum sizes)
// when data is shorter than MinSize(nonceSize, overhead).
//
// Decode is purely structural: it needs no key and authenticates
// nothing.
func Decode(data []byte, nonceSize, overhead int) (nonce, ciphertext []byte, err error) {
	minimum := MinSize(nonceSize, overhead)
	if len(data) < minimum {
		return nil, nil, fmt.Errorf("%w: %d bytes, minimum is %d (nonce + tag)", ErrTruncated, len(data), minimum)
	}
	return data[:nonceSize], data[nonceSize:], nil
}

// MinSize returns the smallest well-formed envelope for the given
// nonce and tag sizes. An envelope of exactly this size carries an
// empty plaintext.
func MinSize(nonceSize, overhead int) int {
	return nonceSize + overhead
}
