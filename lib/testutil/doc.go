// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for huffseal packages.
//
// [RSAPrivateKey] and [MLDSAPrivateKey] return process-cached signing
// keys. RSA generation at 2048 bits is slow enough to dominate the
// suite if every test paid for it, so each slot is generated once.
// Tests that need two unrelated keys ask for different slots.
//
// [RequireReceive] bounds a channel receive with a timeout so a
// deadlocked concurrency test fails instead of hanging.
//
// [UniqueID] returns distinct identifiers for concurrent workers.
//
// Helpers call t.Fatalf on failure; setup failures are not
// recoverable.
package testutil
