// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides huffseal's CBOR encoding configuration.
//
// Every structure huffseal persists (the inner container of an
// encrypted file) is CBOR. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
//
// There is one decoder, [UnmarshalStrict], because every byte huffseal
// decodes came out of a decryption and may be attacker-controlled. It
// rejects duplicate map keys, unknown struct fields, indefinite-length
// items, CBOR tags, trailing bytes, and nesting or collection sizes
// beyond fixed limits. Decoding only ever fills the fixed Go types the
// caller passes in; there is no type registry.
//
// [Diagnose] renders CBOR diagnostic notation (RFC 8949 §8) for the
// `huffseal inspect` command.
//
// # Struct Tag Rules
//
// Persisted types use `cbor:"N,keyasint"` tags: small integer map keys
// keep the container compact and make field identity independent of
// Go field names. Renaming a Go field is safe; renumbering a key is a
// format change.
package codec
