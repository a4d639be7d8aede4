// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	nonce := bytes.Repeat([]byte{0xAB}, 24)
	ciphertext := []byte("ciphertext including the 16-byte tag")

	encoded := Encode(nonce, ciphertext)
	if len(encoded) != len(nonce)+len(ciphertext) {
		t.Fatalf("Encode() length = %d, want %d", len(encoded), len(nonce)+len(ciphertext))
	}

	gotNonce, gotCiphertext, err := Decode(encoded, 24, 16)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !bytes.Equal(gotNonce, nonce) {
		t.Errorf("nonce = %x, want %x", gotNonce, nonce)
	}
	if !bytes.Equal(gotCiphertext, ciphertext) {
		t.Errorf("ciphertext = %q, want %q", gotCiphertext, ciphertext)
	}
}

func TestDecode_Truncated(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"one byte", 1},
		{"nonce only", 24},
		{"one short of minimum", 39},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := Decode(make([]byte, test.size), 24, 16)
			if err == nil {
				t.Fatalf("Decode() of %d bytes should return error", test.size)
			}
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("Decode() error = %v, want ErrTruncated", err)
			}
		})
	}
}

func TestDecode_MinimumSize(t *testing.T) {
	// An envelope of exactly nonce+tag is valid: it carries an empty
	// plaintext. The ciphertext part is the bare tag.
	data := make([]byte, MinSize(24, 16))
	nonce, ciphertext, err := Decode(data, 24, 16)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(nonce) != 24 {
		t.Errorf("nonce length = %d, want 24", len(nonce))
	}
	if len(ciphertext) != 16 {
		t.Errorf("ciphertext length = %d, want 16", len(ciphertext))
	}
}

func TestDecode_Aliasing(t *testing.T) {
	// Decode returns views into the input, not copies.
	data := Encode(bytes.Repeat([]byte{0x01}, 12), []byte("tail bytes plus tag!"))
	nonce, ciphertext, err := Decode(data, 12, 16)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	data[0] = 0xFF
	if nonce[0] != 0xFF {
		t.Error("nonce does not alias the input data")
	}
	data[12] = 0xFF
	if ciphertext[0] != 0xFF {
		t.Error("ciphertext does not alias the input data")
	}
}

func TestMinSize(t *testing.T) {
	if got := MinSize(24, 16); got != 40 {
		t.Errorf("MinSize(24, 16) = %d, want 40", got)
	}
	if got := MinSize(12, 16); got != 28 {
		t.Errorf("MinSize(12, 16) = %d, want 28", got)
	}
}

func TestEncode_Empty(t *testing.T) {
	// Encoding with an empty ciphertext still yields the nonce; the
	// degenerate all-empty call yields an empty envelope.
	nonce := bytes.Repeat([]byte{0x07}, 12)
	if got := Encode(nonce, nil); !bytes.Equal(got, nonce) {
		t.Errorf("Encode(nonce, nil) = %x, want %x", got, nonce)
	}
	if got := Encode(nil, nil); len(got) != 0 {
		t.Errorf("Encode(nil, nil) length = %d, want 0", len(got))
	}
}
