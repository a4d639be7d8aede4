// Copyright 2026 The Cachet Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionPolicy selects how encoded plaintext is compressed
// before encryption. The zero value disables compression.
type CompressionPolicy uint8

const (
	// CompressionNever stores the encoded plaintext with no framing.
	// The default.
	CompressionNever CompressionPolicy = iota

	// CompressionAdaptive probes the plaintext with zstd and chooses
	// by ratio: zstd from 1.5x, LZ4 from 1.1x, raw below that.
	CompressionAdaptive

	// CompressionZstd always tries zstd (level 3), storing raw only
	// when the output would not shrink. Best for text, JSON, and
	// other structured payloads.
	CompressionZstd

	// CompressionLZ4 always tries LZ4 block compression, storing raw
	// only when the output would not shrink. Cheaper than zstd with
	// lower ratios; suits mixed binary payloads.
	CompressionLZ4
)

// String returns the policy name.
func (p CompressionPolicy) String() string {
	switch p {
	case CompressionNever:
		return "never"
	case CompressionAdaptive:
		return "adaptive"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// Frame algorithm tags. The tag is the first plaintext byte when
// compression is enabled; changing these values breaks every sealed
// envelope that used compression.
const (
	frameRaw  byte = 0
	frameLZ4  byte = 1
	frameZstd byte = 2
)

// maxDecompressedSize caps the size a compression frame may declare.
// The frame is read only after authentication, so this guards
// against mistakes (a corrupted writer), not attackers.
const maxDecompressedSize = 64 << 20

// zstdEncoder and zstdDecoder are shared across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("sealed: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("sealed: zstd decoder initialization failed: " + err.Error())
	}
}

// compressFrame compresses plaintext per the policy and wraps it in
// a frame:
//
//	[tag: 1 byte] [uncompressed size: uvarint] [body]
//
// Incompressible data falls back to a raw frame, so the worst case
// cost is the frame header, never growth of the body.
func compressFrame(plaintext []byte, policy CompressionPolicy) ([]byte, error) {
	if len(plaintext) > maxDecompressedSize {
		return nil, fmt.Errorf("plaintext is %d bytes, compression framing caps at %d", len(plaintext), maxDecompressedSize)
	}

	switch policy {
	case CompressionAdaptive:
		return compressAdaptive(plaintext)

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(plaintext, nil)
		if len(compressed) >= len(plaintext) {
			return frame(frameRaw, plaintext), nil
		}
		return frameCompressed(frameZstd, len(plaintext), compressed), nil

	case CompressionLZ4:
		compressed, err := compressLZ4(plaintext)
		if err != nil {
			return frame(frameRaw, plaintext), nil
		}
		return frameCompressed(frameLZ4, len(plaintext), compressed), nil

	default:
		return nil, fmt.Errorf("unsupported compression policy %d", policy)
	}
}

// compressAdaptive probes with zstd once and reuses the probe output
// when the ratio justifies zstd. The 1.5x and 1.1x thresholds mirror
// the cost tradeoff: strong ratios pay for zstd decode, modest ones
// only for LZ4, and anything below that is stored raw.
func compressAdaptive(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return frame(frameRaw, plaintext), nil
	}

	probe := zstdEncoder.EncodeAll(plaintext, nil)
	ratio := float64(len(plaintext)) / float64(len(probe))

	switch {
	case ratio >= 1.5:
		return frameCompressed(frameZstd, len(plaintext), probe), nil

	case ratio >= 1.1:
		compressed, err := compressLZ4(plaintext)
		if err != nil {
			// LZ4 found the data incompressible even though zstd
			// managed a modest ratio; keep the zstd output.
			return frameCompressed(frameZstd, len(plaintext), probe), nil
		}
		return frameCompressed(frameLZ4, len(plaintext), compressed), nil

	default:
		return frame(frameRaw, plaintext), nil
	}
}

// decompressFrame parses a compression frame and returns the original
// plaintext. The returned slice may alias framed (raw frames).
// Errors indicate a codec/compression agreement mismatch or a
// corrupted writer; the caller maps them to ErrDecode.
func decompressFrame(framed []byte) ([]byte, error) {
	if len(framed) < 2 {
		return nil, fmt.Errorf("compression frame is %d bytes, minimum is 2", len(framed))
	}

	tag := framed[0]
	declared, headerLen := binary.Uvarint(framed[1:])
	if headerLen <= 0 {
		return nil, fmt.Errorf("compression frame has an invalid size header")
	}
	if declared > maxDecompressedSize {
		return nil, fmt.Errorf("compression frame declares %d bytes, limit is %d", declared, maxDecompressedSize)
	}
	body := framed[1+headerLen:]

	switch tag {
	case frameRaw:
		if uint64(len(body)) != declared {
			return nil, fmt.Errorf("raw frame is %d bytes, header declares %d", len(body), declared)
		}
		return body, nil

	case frameLZ4:
		return decompressLZ4(body, int(declared))

	case frameZstd:
		return decompressZstd(body, int(declared))

	default:
		return nil, fmt.Errorf("unknown compression frame tag %d", tag)
	}
}

// frame wraps an uncompressed body.
func frame(tag byte, body []byte) []byte {
	return frameCompressed(tag, len(body), body)
}

// frameCompressed assembles [tag][uvarint uncompressedSize][body].
func frameCompressed(tag byte, uncompressedSize int, body []byte) []byte {
	var header [1 + binary.MaxVarintLen64]byte
	header[0] = tag
	n := binary.PutUvarint(header[1:], uint64(uncompressedSize))

	out := make([]byte, 0, 1+n+len(body))
	out = append(out, header[:1+n]...)
	out = append(out, body...)
	return out
}

// errIncompressible is returned by compressLZ4 when the output would
// not be smaller than the input.
var errIncompressible = fmt.Errorf("data is incompressible")

func compressLZ4(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	destination := make([]byte, bound)

	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	// CompressBlock returns 0 when it determines the data is
	// incompressible; equal-or-larger output is treated the same.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}

	return destination[:written], nil
}

func decompressLZ4(compressed []byte, uncompressedSize int) ([]byte, error) {
	destination := make([]byte, uncompressedSize)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != uncompressedSize {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
	}
	return destination, nil
}

func decompressZstd(compressed []byte, uncompressedSize int) ([]byte, error) {
	destination := make([]byte, 0, uncompressedSize)
	result, err := zstdDecoder.DecodeAll(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != uncompressedSize {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), uncompressedSize)
	}
	return result, nil
}
