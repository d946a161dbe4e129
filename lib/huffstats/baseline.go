// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffstats

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/huff0"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Baseline identifies a reference compressor.
type Baseline uint8

const (
	BaselineHuff0 Baseline = iota
	BaselineZstd
	BaselineLZ4
)

// Baselines lists every baseline in report order.
var Baselines = []Baseline{BaselineHuff0, BaselineZstd, BaselineLZ4}

// String returns the baseline's display name.
func (baseline Baseline) String() string {
	switch baseline {
	case BaselineHuff0:
		return "huff0"
	case BaselineZstd:
		return "zstd"
	case BaselineLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(baseline))
	}
}

// zstdEncoder is reused across calls. zstd.Encoder.EncodeAll is safe
// for concurrent use.
var zstdEncoder *zstd.Encoder

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("huffstats: zstd encoder initialization failed: " + err.Error())
	}
}

// compressedSize returns the size data compresses to under baseline.
// Data the baseline cannot shrink counts as its own length.
func compressedSize(data []byte, baseline Baseline) (int, error) {
	switch baseline {
	case BaselineHuff0:
		return huff0Size(data)
	case BaselineZstd:
		return min(len(zstdEncoder.EncodeAll(data, nil)), len(data)), nil
	case BaselineLZ4:
		return lz4Size(data)
	default:
		return 0, fmt.Errorf("unsupported baseline: %d", baseline)
	}
}

// huff0Size compresses data in blocks of at most huff0.BlockSizeMax
// bytes. Each block carries its own table, matching a container that
// carries one table per buffer.
func huff0Size(data []byte) (int, error) {
	scratch := &huff0.Scratch{Reuse: huff0.ReusePolicyNone}
	total := 0
	for start := 0; start < len(data); start += huff0.BlockSizeMax {
		end := min(start+huff0.BlockSizeMax, len(data))
		block := data[start:end]

		compressed, _, err := huff0.Compress1X(block, scratch)
		switch {
		case err == nil:
			total += len(compressed)
		case errors.Is(err, huff0.ErrUseRLE):
			// A single repeated symbol is stored as that one byte.
			total++
		case errors.Is(err, huff0.ErrIncompressible):
			total += len(block)
		default:
			return 0, fmt.Errorf("huff0 compress: %w", err)
		}
	}
	return total, nil
}

func lz4Size(data []byte) (int, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return 0, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock returns 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return len(data), nil
	}
	return written, nil
}
