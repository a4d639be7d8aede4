// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFromPath_File(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "plain value",
			content:  "my-sealing-key",
			expected: "my-sealing-key",
		},
		{
			name:     "trailing newline",
			content:  "my-sealing-key\n",
			expected: "my-sealing-key",
		},
		{
			name:     "trailing whitespace",
			content:  "my-sealing-key  \n",
			expected: "my-sealing-key",
		},
		{
			name:     "leading whitespace",
			content:  "  my-sealing-key",
			expected: "my-sealing-key",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(tempDir, test.name)
			if err := os.WriteFile(path, []byte(test.content), 0600); err != nil {
				t.Fatalf("writing test file: %v", err)
			}

			result, err := ReadFromPath(path)
			if err != nil {
				t.Fatalf("ReadFromPath() error: %v", err)
			}
			defer result.Close()
			if result.String() != test.expected {
				t.Errorf("ReadFromPath() = %q, want %q", result.String(), test.expected)
			}
		})
	}
}

func TestReadFromPath_FileNotFound(t *testing.T) {
	_, err := ReadFromPath("/nonexistent/path/to/secret")
	if err == nil {
		t.Error("ReadFromPath() with nonexistent file should return error")
	}
}

func TestReadFromPath_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte(""), 0600); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	_, err := ReadFromPath(path)
	if err == nil {
		t.Error("ReadFromPath() with empty file should return error")
	}
}

func TestReadFromPath_WhitespaceOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whitespace")
	if err := os.WriteFile(path, []byte("   \n\t\n"), 0600); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	_, err := ReadFromPath(path)
	if err == nil {
		t.Error("ReadFromPath() with whitespace-only file should return error")
	}
}

func TestReadFromPath_OversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oversized")
	if err := os.WriteFile(path, make([]byte, maxSourceSize+1), 0600); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	_, err := ReadFromPath(path)
	if err == nil {
		t.Error("ReadFromPath() with oversized file should return error")
	}
}

func TestNewFromReader(t *testing.T) {
	buffer, err := NewFromReader(strings.NewReader("reader material"), 64)
	if err != nil {
		t.Fatalf("NewFromReader() error: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != "reader material" {
		t.Errorf("NewFromReader() = %q, want %q", got, "reader material")
	}
}

func TestNewFromReader_ExceedsLimit(t *testing.T) {
	_, err := NewFromReader(strings.NewReader("0123456789"), 4)
	if err == nil {
		t.Error("NewFromReader() beyond limit should return error")
	}
}

func TestNewFromReader_Empty(t *testing.T) {
	_, err := NewFromReader(strings.NewReader(""), 64)
	if err == nil {
		t.Error("NewFromReader() with empty reader should return error")
	}
}

func TestNewFromReader_InvalidLimit(t *testing.T) {
	_, err := NewFromReader(strings.NewReader("data"), 0)
	if err == nil {
		t.Error("NewFromReader() with zero limit should return error")
	}
}
