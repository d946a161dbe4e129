// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAlphabet is returned when a buffer has no symbols to
	// code (the buffer is empty).
	ErrEmptyAlphabet = errors.New("huffman: empty alphabet")

	// ErrDecode is matched by every [DecodeError].
	ErrDecode = errors.New("huffman: decode failed")

	// ErrInvalidTable is returned when a code table is structurally
	// unusable: empty codes, non-binary characters, codes that are
	// prefixes of other codes, or symbols with no code.
	ErrInvalidTable = errors.New("huffman: invalid code table")
)

// DecodeError describes where a packed bit stream stopped resolving
// to codes under the supplied table.
type DecodeError struct {
	// BitOffset is the position in the bit stream (after the padding
	// header) at which decoding failed.
	BitOffset int

	// Reason is a short description of the failure.
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("huffman: decode failed at bit %d: %s", e.BitOffset, e.Reason)
}

// Is reports whether target is [ErrDecode].
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
