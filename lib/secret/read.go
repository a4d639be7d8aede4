// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// maxSourceSize bounds how much material ReadFromPath and
// NewFromReader accept. Key files and tokens are tiny; anything
// larger is a misdirected path, not a secret.
const maxSourceSize = 1 << 20

// NewFromReader reads all of reader (up to limit bytes) into a
// protected buffer. The transient heap copy is zeroed before
// returning. Returns an error if the reader yields no data or more
// than limit bytes.
func NewFromReader(reader io.Reader, limit int) (*Buffer, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("secret: read limit must be positive, got %d", limit)
	}

	data, err := io.ReadAll(io.LimitReader(reader, int64(limit)+1))
	if err != nil {
		Zero(data)
		return nil, fmt.Errorf("secret: reading material: %w", err)
	}
	if len(data) > limit {
		Zero(data)
		return nil, fmt.Errorf("secret: material exceeds %d byte limit", limit)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("secret: reader produced no data")
	}

	// NewFromBytes copies into mmap-backed memory and zeros data.
	return NewFromBytes(data)
}

// ReadFromPath reads a secret from a file path, or from stdin if path
// is "-". The returned buffer is mmap-backed (locked into RAM,
// excluded from core dumps) and must be closed by the caller.
// Leading and trailing whitespace is trimmed before storing, since
// key files routinely end with a newline. Returns an error if the
// source is empty after trimming.
func ReadFromPath(path string) (*Buffer, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(io.LimitReader(os.Stdin, maxSourceSize+1))
		if err != nil {
			return nil, fmt.Errorf("secret: reading stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	if len(data) > maxSourceSize {
		Zero(data)
		return nil, fmt.Errorf("secret: source exceeds %d byte limit for secret material", maxSourceSize)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("secret: source is empty")
	}

	// NewFromBytes copies into mmap-backed memory and zeros trimmed.
	buffer, err := NewFromBytes(trimmed)
	// Zero remaining bytes (whitespace prefix/suffix) not covered by
	// trimmed.
	Zero(data)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
