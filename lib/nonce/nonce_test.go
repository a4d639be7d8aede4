// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package nonce

import (
	"testing"
)

func TestRandom_Size(t *testing.T) {
	source := Random()
	for _, size := range []int{12, 24, 32} {
		out, err := source.Next(size)
		if err != nil {
			t.Fatalf("Next(%d) error: %v", size, err)
		}
		if len(out) != size {
			t.Errorf("Next(%d) returned %d bytes", size, len(out))
		}
	}
}

func TestRandom_InvalidSize(t *testing.T) {
	source := Random()
	if _, err := source.Next(0); err == nil {
		t.Error("Next(0) should return error")
	}
	if _, err := source.Next(-4); err == nil {
		t.Error("Next(-4) should return error")
	}
}

func TestRandom_Distinct(t *testing.T) {
	source := Random()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		out, err := source.Next(24)
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		key := string(out)
		if _, duplicate := seen[key]; duplicate {
			t.Fatalf("duplicate nonce after %d draws: %x", i, out)
		}
		seen[key] = struct{}{}
	}
}
