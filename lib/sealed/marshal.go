// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/cachet-foundation/cachet/lib/codec"
)

// Sealed containers embed cleanly in larger structures: the envelope
// marshals as opaque bytes in binary and CBOR, and as a base64
// string in JSON. None of these reveal or require the key, and the
// type parameter is not serialized. The holder of the bytes decides
// the type on the way back in.

// MarshalBinary implements [encoding.BinaryMarshaler].
func (s Sealed[T]) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler]. Unlike
// FromBytes it accepts empty input, so a zero container survives a
// marshal round-trip through an enclosing structure.
func (s *Sealed[T]) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		s.envelope = nil
		return nil
	}
	buffer := make([]byte, len(data))
	copy(buffer, data)
	s.envelope = buffer
	return nil
}

// MarshalCBOR encodes the envelope as a CBOR byte string. A zero
// container encodes as null.
func (s Sealed[T]) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(s.envelope)
}

// UnmarshalCBOR decodes a CBOR byte string (or null, for a zero
// container) into the envelope.
func (s *Sealed[T]) UnmarshalCBOR(data []byte) error {
	var buffer []byte
	if err := codec.Unmarshal(data, &buffer); err != nil {
		return fmt.Errorf("sealed: container must be a CBOR byte string: %w", err)
	}
	s.envelope = buffer
	return nil
}

// MarshalJSON encodes the envelope as a base64 string.
func (s Sealed[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(s.envelope))
}

// UnmarshalJSON decodes a base64 string into the envelope.
func (s *Sealed[T]) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("sealed: container must be a JSON string: %w", err)
	}
	buffer, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("sealed: invalid base64 in container: %w", err)
	}
	if len(buffer) == 0 {
		buffer = nil
	}
	s.envelope = buffer
	return nil
}
