// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Size is the length in bytes of every supported digest.
const Size = 32

// Digest is a content hash under one of the supported algorithms.
type Digest [Size]byte

// Algorithm identifies a content-hash algorithm. Tags are stored in
// containers (1 byte); changing them breaks container compatibility.
type Algorithm uint8

const (
	// AlgorithmNone marks the absence of a content hash.
	AlgorithmNone Algorithm = 0

	// SHA256 is SHA-256 (FIPS 180-4).
	SHA256 Algorithm = 1

	// BLAKE3 is unkeyed BLAKE3 with 256-bit output.
	BLAKE3 Algorithm = 2
)

// String returns the configuration name of the algorithm.
func (algorithm Algorithm) String() string {
	switch algorithm {
	case AlgorithmNone:
		return "none"
	case SHA256:
		return "sha256"
	case BLAKE3:
		return "blake3"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(algorithm))
	}
}

// ParseAlgorithm parses a configuration name. The empty string selects
// [SHA256].
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", "sha256":
		return SHA256, nil
	case "blake3":
		return BLAKE3, nil
	case "none":
		return AlgorithmNone, nil
	default:
		return 0, fmt.Errorf("unknown hash algorithm: %q", name)
	}
}

// Sum hashes data under algorithm. Returns an error for
// [AlgorithmNone] and unknown tags.
func Sum(algorithm Algorithm, data []byte) (Digest, error) {
	switch algorithm {
	case SHA256:
		return sha256.Sum256(data), nil
	case BLAKE3:
		return blake3.Sum256(data), nil
	default:
		return Digest{}, fmt.Errorf("cannot hash with algorithm %s", algorithm)
	}
}

// Equal compares a digest against raw stored bytes in constant time.
// A stored value of the wrong length is never equal.
func Equal(computed Digest, stored []byte) bool {
	if len(stored) != Size {
		return false
	}
	return subtle.ConstantTimeCompare(computed[:], stored) == 1
}

// Format returns the hex-encoded representation of a digest.
func Format(value Digest) string {
	return hex.EncodeToString(value[:])
}
