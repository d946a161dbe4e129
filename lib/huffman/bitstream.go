// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import "fmt"

// Encode packs data under table into a payload: one padding-count
// byte followed by the concatenated codes, MSB-first, zero-padded to
// a byte boundary. Every byte in data must have a code in table.
func Encode(data []byte, table CodeTable) ([]byte, error) {
	// Size the output exactly before writing any bits.
	var bitLength uint64
	for _, value := range data {
		code, ok := table[value]
		if !ok || len(code) == 0 {
			return nil, fmt.Errorf("%w: no code for byte 0x%02x", ErrInvalidTable, value)
		}
		bitLength += uint64(len(code))
	}
	padding := 8 - bitLength%8
	totalBits := bitLength + padding

	output := make([]byte, 1, 1+totalBits/8)
	output[0] = byte(padding)

	var current byte
	var filled uint
	for _, value := range data {
		code := table[value]
		for position := 0; position < len(code); position++ {
			current <<= 1
			if code[position] == '1' {
				current |= 1
			}
			filled++
			if filled == 8 {
				output = append(output, current)
				current = 0
				filled = 0
			}
		}
	}
	if filled > 0 {
		output = append(output, current<<(8-filled))
	} else {
		// Already byte-aligned: emit the full byte of padding.
		output = append(output, 0)
	}
	return output, nil
}

// Decode reverses [Encode] under the same table. Failures caused by
// the payload are [*DecodeError] values; an unusable table fails with
// an error matching both [ErrDecode] and [ErrInvalidTable].
func Decode(payload []byte, table CodeTable) ([]byte, error) {
	trie, err := newDecodeTrie(table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(payload) == 0 {
		return nil, &DecodeError{Reason: "payload is empty (missing padding header)"}
	}

	padding := int(payload[0])
	if padding < 1 || padding > 8 {
		return nil, &DecodeError{Reason: fmt.Sprintf("padding header %d outside 1..8", padding)}
	}
	body := payload[1:]
	bitLength := len(body)*8 - padding
	if bitLength < 0 {
		return nil, &DecodeError{Reason: fmt.Sprintf("padding of %d bits exceeds %d-bit stream", padding, len(body)*8)}
	}

	// Each code is at least one bit, so bitLength bounds the output.
	output := make([]byte, 0, bitLength/max(1, minCodeLength(table)))
	current := int32(0)
	codeStart := 0
	for offset := 0; offset < bitLength; offset++ {
		bit := (body[offset>>3] >> (7 - uint(offset&7))) & 1
		next := trie.nodes[current].children[bit]
		if next == 0 {
			return nil, &DecodeError{
				BitOffset: codeStart,
				Reason:    fmt.Sprintf("bits %d..%d match no code", codeStart, offset),
			}
		}
		node := &trie.nodes[next]
		if node.leaf {
			output = append(output, node.symbol)
			current = 0
			codeStart = offset + 1
			continue
		}
		current = next
	}
	if current != 0 {
		return nil, &DecodeError{
			BitOffset: codeStart,
			Reason:    "stream ended in the middle of a code",
		}
	}
	return output, nil
}

func minCodeLength(table CodeTable) int {
	shortest := 0
	for _, code := range table {
		if shortest == 0 || len(code) < shortest {
			shortest = len(code)
		}
	}
	return shortest
}
