// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/bureau-foundation/huffseal/lib/secret"
)

// KeySize is the size in bytes of a derived key.
const KeySize = chacha20poly1305.KeySize

// Version is the blob format version, authenticated as AAD.
const Version byte = 0x01

// Overhead is the fixed number of bytes an encrypted blob adds to its
// plaintext: version + nonce + Poly1305 tag.
const Overhead = 1 + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

// ErrDecryption is the only error Decrypt returns.
var ErrDecryption = errors.New("envelope: decryption failed")

// Changing either of these invalidates every existing container.
var (
	hkdfInfoPasswordKey = []byte("huffseal.envelope.key.v1")
	aadContext          = []byte("huffseal.container")
)

// DeriveKey derives the container key from a password. Deterministic:
// equal passwords give equal keys. The password is not modified. The
// returned Buffer must be closed by the caller.
func DeriveKey(password []byte) (*secret.Buffer, error) {
	passwordDigest := sha256.Sum256(password)
	defer secret.Zero(passwordDigest[:])

	reader := hkdf.New(sha256.New, passwordDigest[:], nil, hkdfInfoPasswordKey)
	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, derived); err != nil {
		secret.Zero(derived)
		return nil, fmt.Errorf("HKDF key derivation failed: %w", err)
	}
	// NewFromBytes copies into mmap and zeros the heap slice.
	return secret.NewFromBytes(derived)
}

// Encrypt seals plaintext under key with a fresh random nonce. The key
// is borrowed and NOT closed. It must be exactly [KeySize] bytes.
func Encrypt(plaintext []byte, key *secret.Buffer) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}

	var nonce [chacha20poly1305.NonceSizeX]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating random nonce: %w", err)
	}

	output := make([]byte, 1+len(nonce), len(plaintext)+Overhead)
	output[0] = Version
	copy(output[1:], nonce[:])
	return aead.Seal(output, nonce[:], plaintext, buildAAD(Version)), nil
}

// Decrypt opens a blob produced by [Encrypt]. Any failure returns
// [ErrDecryption]. The key is borrowed and NOT closed.
func Decrypt(blob []byte, key *secret.Buffer) ([]byte, error) {
	if len(blob) < Overhead || blob[0] != Version {
		return nil, ErrDecryption
	}
	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, ErrDecryption
	}

	nonce := blob[1 : 1+chacha20poly1305.NonceSizeX]
	ciphertext := blob[1+chacha20poly1305.NonceSizeX:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, buildAAD(blob[0]))
	if err != nil {
		return nil, ErrDecryption
	}
	return plaintext, nil
}

func buildAAD(version byte) []byte {
	aad := make([]byte, 0, 1+len(aadContext))
	aad = append(aad, version)
	return append(aad, aadContext...)
}
