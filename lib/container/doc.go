// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package container defines the serialized record sealed inside an
// encrypted huffseal blob: the compressed payload, its code table, an
// optional content hash, and the signatures.
//
// The record is a CBOR map with small integer keys, encoded with Core
// Deterministic Encoding via lib/codec so equal containers produce
// equal bytes. [Unmarshal] uses the strict decoder: the input must be
// exactly one map matching the [Container] schema, with no duplicate
// keys, unknown fields, indefinite lengths or tags, and no trailing
// bytes. Decoding only ever fills the fixed Go struct, so hostile input
// cannot construct arbitrary values. After decoding, [Container.Validate]
// enforces the semantic rules, and every failure from either step wraps
// [ErrMalformed].
//
// The code table travels as a list of (symbol, code) pairs sorted by
// symbol. [TableTranscript] gives the canonical byte string signed by
// the table signature, so a container whose table was swapped for
// another valid prefix-free table fails verification.
package container
