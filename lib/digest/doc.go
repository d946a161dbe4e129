// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides the content-hash algorithms used in the
// integrity envelope of a huffseal container.
//
// Two 32-byte algorithms are supported, identified by an [Algorithm]
// tag that is stored next to the digest in the container:
//
//   - [SHA256] -- the default; what every pre-existing container used
//   - [BLAKE3] -- faster on large payloads (github.com/zeebo/blake3)
//
// [AlgorithmNone] marks a container packed without a content hash.
//
// The API surface:
//
//   - [Sum] -- hash a buffer under an algorithm
//   - [Equal] -- constant-time digest comparison
//   - [Format] -- canonical hex representation for logs and
//     CLI output
//
// This package has no dependencies on other huffseal packages.
package digest
