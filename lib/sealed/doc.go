// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed protects signing-key files at rest with a passphrase.
// It wraps filippo.io/age with an scrypt recipient and ASCII armor, so
// a sealed key file is a standard age file that the age CLI can also
// open:
//
//	-----BEGIN AGE ENCRYPTED FILE-----
//	...
//	-----END AGE ENCRYPTED FILE-----
//
// Key exports:
//
//   - [SealPassphrase] -- encrypt a PEM private key under a passphrase
//   - [OpenPassphrase] -- decrypt into a [secret.Buffer]
//   - [IsSealed] -- detect the armor header so loaders can tell a
//     sealed file from a plain PEM file
//
// This is unrelated to the container password: a container's key is
// derived by lib/envelope on every call, while a sealed key file is
// opened once when the signing key is loaded.
//
// Depends on lib/secret for secure memory allocation.
package sealed
