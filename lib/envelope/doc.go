// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope is the password layer of a huffseal container:
// deterministic password-to-key derivation and authenticated
// encryption of the serialized container.
//
// Key derivation is SHA-256 over the password bytes followed by
// HKDF-SHA256 expansion under a fixed domain-separation info string.
// There is no salt and no work factor: the same password always
// yields the same 32-byte key, and a container can be opened with
// nothing but the password. The derived key is returned in a
// [secret.Buffer] and must be closed by the caller once the
// encryption or decryption call is done.
//
// Encrypted blob layout:
//
//	[Version: 1 byte (0x01)] [Nonce: 24 bytes (random)] [Ciphertext+Tag: N+16 bytes]
//
// The cipher is XChaCha20-Poly1305. The version byte and a context
// string are bound as additional authenticated data, so changing any
// bit of the blob (header included) fails authentication.
//
// [Decrypt] reports every failure as [ErrDecryption] with no further
// detail: a wrong password, a flipped bit, a truncated blob, and an
// unknown version are indistinguishable to the caller.
package envelope
