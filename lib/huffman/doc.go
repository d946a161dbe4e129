// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package huffman implements static, per-message Huffman coding over
// bytes.
//
// A message is compressed in one pass over a frequency table: the
// table seeds a binary tree built by repeatedly merging the two
// least-frequent nodes, the tree yields a prefix-free [CodeTable], and
// the message is bit-packed MSB-first under that table. The code table
// is not recoverable from the packed bytes and must travel alongside
// them.
//
// Packed payload layout:
//
//	[padding: 1 byte, 1..8] [bits of table[b] for each input byte b] [padding zero bits]
//
// The padding count is never zero: a bit stream that already ends on a
// byte boundary gets a full byte of padding so the header is
// unambiguous.
//
// Tree construction is deterministic. Leaves are inserted in ascending
// byte order; the heap orders by frequency and breaks ties by creation
// sequence (leaves first, then merged nodes in the order they were
// made). The first node popped in a merge becomes the 0 branch. Two
// builds over the same frequencies always produce the same table.
//
// An input with a single distinct byte gets the one-bit code "0", so
// a run of N identical bytes packs into ceil(N/8) bytes plus the
// header. An empty input has no alphabet and fails with
// [ErrEmptyAlphabet].
//
// Key exports:
//
//   - [Compress] / [Decompress] -- the whole pipeline
//   - [CountFrequencies], [BuildTree], [BuildCodes] -- individual stages
//   - [Encode] / [Decode] -- bit packing under an existing table
//   - [CodeTable.Validate] -- structural and prefix-free checks for
//     tables received from untrusted sources
//
// No internal dependencies.
package huffman
