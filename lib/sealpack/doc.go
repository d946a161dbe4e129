// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealpack turns a byte buffer into a password-encrypted,
// signed, Huffman-compressed container and back.
//
// The pack path is a straight line:
//
//	compress -> sign(payload) -> sign(table) -> hash(payload)? -> serialize -> encrypt
//
// The hash is computed only in [ModeStrict]. The unpack path runs the
// stages in reverse and stops at the first failure:
//
//	decrypt -> deserialize -> integrity? -> signature? -> decompress
//
// The [Mode] chooses which checks run:
//
//   - [ModeStrict]: content hash, payload signature and table signature.
//   - [ModeSignatureOnly]: both signatures, no hash comparison.
//   - [ModeBypass]: INSECURE. No checks at all; the payload is decoded
//     under whatever table the container carries. It exists only for
//     best-effort recovery of damaged containers and returns corrupted
//     output for tampered ones.
//
// Every failure is an [*Error] carrying the [Stage] that failed. The
// package sentinels ([ErrDecryption], [ErrIntegrityMismatch], ...) match
// via errors.Is, and [Error.Reason] gives a classified message suitable
// for showing to a user.
//
// [Packer] and [Unpacker] hold only immutable key handles and options.
// The password-derived key is recomputed on every call and zeroed
// before the call returns, so both types are safe for concurrent use
// and nothing is written outside the returned buffer.
package sealpack
