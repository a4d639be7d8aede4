// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package nonce

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"
)

// counterWidth is the number of trailing nonce bytes a counter
// occupies.
const counterWidth = 8

// formatCounter writes value big-endian into the trailing bytes of a
// fresh size-byte nonce. Leading bytes are zero.
func formatCounter(size int, value uint64) []byte {
	out := make([]byte, size)
	binary.BigEndian.PutUint64(out[size-counterWidth:], value)
	return out
}

// checkCounterSize validates that a counter fits in the requested
// nonce size.
func checkCounterSize(size int) error {
	if size < counterWidth {
		return fmt.Errorf("%w: %d bytes, counter needs %d", ErrShortNonce, size, counterWidth)
	}
	return nil
}

// Counter is a monotonic in-memory nonce source. The first nonce
// encodes 1; values never repeat and never wrap. Uniqueness holds
// only within one process lifetime and one Counter instance: for
// anything that survives restarts, use a CounterStore.
//
// Counter nonces make sealing deterministic apart from the payload,
// which suits single-writer protocol streams where both sides track
// position. The counter occupies the trailing 8 bytes of the nonce,
// big-endian, with leading bytes zero.
//
// Safe for concurrent use.
type Counter struct {
	value atomic.Uint64
}

// NewCounter returns a counter source starting at 1.
func NewCounter() *Counter { return &Counter{} }

// Next returns the next nonce in the sequence. Returns ErrShortNonce
// if size cannot hold the counter, and ErrExhausted once the counter
// space is spent (exhaustion is sticky).
func (c *Counter) Next(size int) ([]byte, error) {
	if err := checkCounterSize(size); err != nil {
		return nil, err
	}

	for {
		current := c.value.Load()
		if current == math.MaxUint64 {
			return nil, ErrExhausted
		}
		if c.value.CompareAndSwap(current, current+1) {
			return formatCounter(size, current+1), nil
		}
	}
}
