// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package nonce

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Errors returned by nonce sources.
var (
	// ErrShortNonce reports a requested nonce size too small to hold
	// a counter.
	ErrShortNonce = errors.New("nonce: requested size too small for counter")

	// ErrExhausted reports that a counter has reached the end of its
	// space. A source never wraps: wrapping would reissue nonces.
	ErrExhausted = errors.New("nonce: counter space exhausted")

	// ErrClosed reports use of a counter store after Close.
	ErrClosed = errors.New("nonce: store is closed")
)

// Source yields nonces for sealing operations. Next must return a
// fresh, never-before-used value of exactly the requested size on
// every call: the sealing layer does not inspect nonce contents and
// relies entirely on the source for uniqueness.
//
// Sources must be safe for concurrent use.
type Source interface {
	Next(size int) ([]byte, error)
}

// Random returns the default nonce source: cryptographically secure
// random bytes from crypto/rand. With a 24-byte nonce suite this is
// safe at any volume. With 12-byte nonces, birthday collisions become
// a realistic concern around 2^32 seals under one key; use a counter
// source for sustained high-volume sealing there.
func Random() Source { return randomSource{} }

type randomSource struct{}

func (randomSource) Next(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("nonce: size must be positive, got %d", size)
	}
	out := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return nil, fmt.Errorf("nonce: reading random bytes: %w", err)
	}
	return out, nil
}
