// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package huffstats measures how well the static Huffman coder in
// lib/huffman does on a buffer and compares it against established
// compressors.
//
// [Analyze] reports the Shannon entropy of the byte distribution, the
// average and longest code lengths, and the payload and serialized
// table sizes the container would carry. It then compresses the same
// buffer with three baselines from the wider ecosystem:
//
//   - huff0 (klauspost/compress): a tuned order-0 Huffman coder, the
//     closest like-for-like comparison
//   - zstd (klauspost/compress) at the default level
//   - LZ4 block mode (pierrec/lz4)
//
// The baselines are measurements only; huffseal containers never use
// them. A baseline that declines to compress (incompressible data or a
// single-symbol run) is counted at the input size.
package huffstats
