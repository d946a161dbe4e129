// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

// FrequencyTable counts occurrences of each byte value in a buffer.
// The sum of all counts equals the length of the counted buffer.
type FrequencyTable [256]uint64

// CountFrequencies scans data once and returns its byte frequencies.
func CountFrequencies(data []byte) FrequencyTable {
	var table FrequencyTable
	for _, value := range data {
		table[value]++
	}
	return table
}

// Distinct returns the number of byte values with a non-zero count.
func (table *FrequencyTable) Distinct() int {
	distinct := 0
	for _, count := range table {
		if count > 0 {
			distinct++
		}
	}
	return distinct
}

// Total returns the sum of all counts.
func (table *FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range table {
		total += count
	}
	return total
}
