// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides memory-safe buffers for key material and
// other sensitive data.
//
// [Buffer] allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock (preventing swap), and marks it
// excluded from core dumps via madvise(MADV_DONTDUMP). On Close, the
// memory is zeroed, unlocked, and unmapped. Because the memory lives
// outside the Go heap, the garbage collector cannot copy or relocate
// it, so closing a buffer genuinely erases the material.
//
// Constructors:
//
//   - [New] allocates a zero-filled buffer of a given size
//   - [NewFromBytes] copies into protected memory, zeros the source
//   - [NewFromReader] reads from an io.Reader with a size limit
//   - [NewRandom] fills a fresh buffer from crypto/rand
//   - [ReadFromPath] reads a key file (or stdin with "-"), trimming
//     surrounding whitespace
//
// Access via [Buffer.Bytes] (slice into the mmap region, valid until
// Close) or [Buffer.String] (heap copy for API boundaries).
// [Buffer.Equal] compares contents in constant time. The package-level
// [Zero] scrubs transient heap slices. After Close, any access panics;
// Close is idempotent.
//
// Depends on golang.org/x/sys/unix. No other cachet dependencies.
// Imported by lib/sealed, which keeps every sealing key in a Buffer.
package secret
