// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package signature signs and verifies container payloads.
//
// Two schemes are supported, identified by a [Scheme] tag that travels
// in the container so a verifier can reject a container signed under a
// scheme it does not hold a key for:
//
//   - [SchemeRSAPSS] (default): RSA-PSS with SHA-256, MGF1-SHA-256 and
//     the maximum salt length the key allows. Signing is randomized;
//     two signatures over the same bytes differ and both verify.
//   - [SchemeMLDSA65]: ML-DSA-65 (FIPS 204) from cloudflare/circl,
//     signed in hedged mode with an empty context string.
//
// Keys are PEM files. RSA private keys may be PKCS#8 ("PRIVATE KEY") or
// PKCS#1 ("RSA PRIVATE KEY"); RSA public keys may be SPKI ("PUBLIC
// KEY") or PKCS#1 ("RSA PUBLIC KEY"). ML-DSA-65 keys use the block
// types "ML-DSA-65 PRIVATE KEY" and "ML-DSA-65 PUBLIC KEY" carrying
// circl's packed binary encoding. A private key file may be sealed
// under a passphrase with lib/sealed; [LoadSigner] detects the armor
// and opens it before parsing.
//
// [Verifier.Verify] returns a bool rather than an error. Every
// mismatch, whether a malformed signature, a wrong key or altered data,
// yields false.
//
// [GenerateKeyPair] and [WriteKeyPair] exist for the keygen command.
// The pack and unpack pipeline only loads keys.
package signature
