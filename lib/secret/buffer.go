// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer holds key material in memory that is locked against swapping,
// excluded from core dumps, and zeroed on close. The backing memory is
// allocated via mmap outside the Go heap, so the garbage collector
// never copies or relocates it and Close genuinely erases the
// material.
//
// A Buffer must not be copied after creation. Use Close to release the
// memory when the material is no longer needed. After Close, any
// access to the buffer's contents panics.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	length int
	closed bool
}

// New allocates a zero-filled buffer of the given size. The region is:
//   - locked into physical RAM (mlock), preventing swap
//   - excluded from core dumps (MADV_DONTDUMP)
//   - outside the Go heap, invisible to the garbage collector
//
// The caller must call Close when the material is no longer needed.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: mlock failed: %w", err)
	}

	// MADV_DONTDUMP is not supported on every kernel; treat failure as
	// fatal rather than silently keeping key memory dumpable.
	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return &Buffer{
		data:   data,
		length: size,
	}, nil
}

// NewFromBytes creates a buffer from existing material. The source
// bytes are copied into the protected region and then zeroed in
// place, so the caller's slice no longer holds the secret.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}

	buffer, err := New(len(source))
	if err != nil {
		return nil, err
	}

	copy(buffer.data, source)
	Zero(source)

	return buffer, nil
}

// NewRandom allocates a buffer of the given size filled from
// crypto/rand. This is the standard way to generate fresh symmetric
// key material: the bytes never exist outside the protected region.
func NewRandom(size int) (*Buffer, error) {
	buffer, err := New(size)
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(rand.Reader, buffer.data); err != nil {
		buffer.Close()
		return nil, fmt.Errorf("secret: reading random material: %w", err)
	}
	return buffer, nil
}

// Bytes returns the secret data. The returned slice points directly
// into the mmap region. Do not hold references to it beyond the
// lifetime of the Buffer. Panics if the buffer has been closed.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}

	return b.data[:b.length]
}

// String returns the secret data as a string. The returned string is
// backed by a heap-allocated copy (Go strings are immutable and must
// live on the heap), so this should only be used at API boundaries
// that require string arguments. Prefer Bytes when possible.
//
// Panics if the buffer has been closed.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}

	return string(b.data[:b.length])
}

// Len returns the size of the secret data.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.length
}

// Equal reports whether two buffers hold identical contents. For
// equal-length buffers the comparison is constant time. A length
// mismatch returns false immediately; lengths are not treated as
// secret. Panics if either buffer has been closed.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == other {
		return true
	}
	return subtle.ConstantTimeCompare(b.Bytes(), other.Bytes()) == 1
}

// Close zeros the buffer contents, unlocks and unmaps the memory.
// After Close, any access to the buffer's contents panics. Close is
// idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	Zero(b.data)

	// The mapping is released when the process exits regardless, and
	// the contents are already zeroed, so release failures are
	// reported but leave nothing sensitive behind.
	var firstError error
	if err := unix.Munlock(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munlock failed: %w", err)
	}
	if err := unix.Munmap(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap failed: %w", err)
	}

	b.data = nil
	return firstError
}

// Zero overwrites b with zeros. Use it to scrub transient plaintext
// or key slices on the Go heap once their contents have moved into a
// Buffer or are no longer needed. Zeroing heap memory is best effort
// (the runtime may have copied the slice during growth), but it
// shortens the exposure window to the operation itself.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
