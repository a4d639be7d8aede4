// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package aead

import (
	"bytes"
	"testing"
)

func allSuites() []Suite {
	return []Suite{XChaCha20Poly1305, ChaCha20Poly1305, AES256GCM}
}

func TestSuiteParameters(t *testing.T) {
	tests := []struct {
		suite     Suite
		name      string
		nonceSize int
	}{
		{XChaCha20Poly1305, "xchacha20poly1305", 24},
		{ChaCha20Poly1305, "chacha20poly1305", 12},
		{AES256GCM, "aes256gcm", 12},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.suite.Name(); got != test.name {
				t.Errorf("Name() = %q, want %q", got, test.name)
			}
			if got := test.suite.NonceSize(); got != test.nonceSize {
				t.Errorf("NonceSize() = %d, want %d", got, test.nonceSize)
			}
			if got := test.suite.KeySize(); got != KeySize {
				t.Errorf("KeySize() = %d, want %d", got, KeySize)
			}
			if got := test.suite.Overhead(); got != TagSize {
				t.Errorf("Overhead() = %d, want %d", got, TagSize)
			}
			if !test.suite.Valid() {
				t.Error("Valid() = false for a defined suite")
			}
		})
	}
}

func TestSuiteNew_SealOpen(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, KeySize)
	plaintext := []byte("the plaintext under test")
	aad := []byte("context")

	for _, suite := range allSuites() {
		t.Run(suite.Name(), func(t *testing.T) {
			instance, err := suite.New(key)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}

			if got := instance.NonceSize(); got != suite.NonceSize() {
				t.Errorf("cipher NonceSize() = %d, suite says %d", got, suite.NonceSize())
			}
			if got := instance.Overhead(); got != suite.Overhead() {
				t.Errorf("cipher Overhead() = %d, suite says %d", got, suite.Overhead())
			}

			nonce := make([]byte, suite.NonceSize())
			nonce[0] = 0x01

			ciphertext := instance.Seal(nil, nonce, plaintext, aad)
			if len(ciphertext) != len(plaintext)+suite.Overhead() {
				t.Errorf("ciphertext length %d, want %d", len(ciphertext), len(plaintext)+suite.Overhead())
			}

			opened, err := instance.Open(nil, nonce, ciphertext, aad)
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			if !bytes.Equal(opened, plaintext) {
				t.Errorf("Open() = %q, want %q", opened, plaintext)
			}

			// Mismatched AAD must fail.
			if _, err := instance.Open(nil, nonce, ciphertext, []byte("other")); err == nil {
				t.Error("Open() with wrong AAD succeeded")
			}
		})
	}
}

func TestSuiteNew_WrongKeySize(t *testing.T) {
	for _, suite := range allSuites() {
		t.Run(suite.Name(), func(t *testing.T) {
			if _, err := suite.New(make([]byte, 16)); err == nil {
				t.Error("New() with 16-byte key should return error")
			}
			if _, err := suite.New(nil); err == nil {
				t.Error("New() with nil key should return error")
			}
		})
	}
}

func TestZeroSuite(t *testing.T) {
	var zero Suite
	if zero.Valid() {
		t.Error("zero Suite reports Valid()")
	}
	if _, err := zero.New(bytes.Repeat([]byte{0x01}, KeySize)); err == nil {
		t.Error("zero Suite New() should return error")
	}
}
