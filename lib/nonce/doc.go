// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

// Package nonce supplies nonce sources for sealing operations.
//
// A [Source] yields fresh nonces of a requested size. The sealing
// layer never inspects nonce contents; any source whose values never
// repeat for a given key is correct. Three policies are provided:
//
//   - [Random]: secure random bytes, the default. With the default
//     24-byte-nonce suite, collision probability is negligible at any
//     realistic volume.
//   - [NewCounter]: in-memory monotonic counter. Deterministic and
//     collision-free within one process, but state dies with it.
//   - [OpenCounterStore]: counter persisted in a bbolt file, for
//     counter nonces that must survive restarts and crashes.
//
// # Counter layout
//
// Counter nonces place a big-endian uint64 in the trailing 8 bytes
// and zero the rest; the first nonce encodes 1. Sources refuse sizes
// under 8 bytes ([ErrShortNonce]) and refuse to wrap ([ErrExhausted]).
//
// # Durability
//
// A counter that repeats a value after a crash re-uses a nonce, which
// destroys AEAD confidentiality for the affected key. [CounterStore]
// prevents this by reserving ahead: it persists a high-water mark
// 1024 values beyond the issued position and hands values out from
// memory, re-persisting before the mark is passed. After a crash the
// store resumes at the persisted mark. The resulting sequences skip
// values but never repeat them, which is the only property sealing
// needs.
//
// The file lock bbolt takes on the database enforces the
// single-writer rule for the sequence as a whole: two processes
// cannot issue from the same file at once.
package nonce
