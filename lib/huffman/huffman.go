// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import "fmt"

// Compress builds a code table from data's byte frequencies and packs
// data under it. The table is required by [Decompress] and is not
// embedded in the payload. Returns [ErrEmptyAlphabet] for empty data.
func Compress(data []byte) ([]byte, CodeTable, error) {
	frequencies := CountFrequencies(data)
	root, err := BuildTree(frequencies)
	if err != nil {
		return nil, nil, err
	}
	table := BuildCodes(root)

	payload, err := Encode(data, table)
	if err != nil {
		// Unreachable: every byte in data has a leaf in the tree.
		return nil, nil, fmt.Errorf("encoding with freshly built table: %w", err)
	}
	return payload, table, nil
}

// Decompress recovers the original bytes from a payload produced by
// [Compress] with the same table.
func Decompress(payload []byte, table CodeTable) ([]byte, error) {
	return Decode(payload, table)
}
