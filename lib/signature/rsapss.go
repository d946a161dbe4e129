// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
)

// MinRSABits is the smallest RSA modulus accepted for signing or
// verification.
const MinRSABits = 2048

// RSASigner signs with RSA-PSS over SHA-256.
type RSASigner struct {
	key *rsa.PrivateKey
}

// NewRSASigner wraps an RSA private key.
func NewRSASigner(key *rsa.PrivateKey) (*RSASigner, error) {
	if bits := key.N.BitLen(); bits < MinRSABits {
		return nil, fmt.Errorf("%w: RSA key is %d bits, minimum is %d", ErrUnsupportedKey, bits, MinRSABits)
	}
	return &RSASigner{key: key}, nil
}

// Sign returns an RSA-PSS signature over SHA-256(data) using the
// largest salt the modulus permits.
func (signer *RSASigner) Sign(data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)
	signature, err := rsa.SignPSS(rand.Reader, signer.key, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return nil, fmt.Errorf("signing with RSA-PSS: %w", err)
	}
	return signature, nil
}

// Scheme returns SchemeRSAPSS.
func (signer *RSASigner) Scheme() Scheme { return SchemeRSAPSS }

// Verifier returns the verifier for the signer's public half.
func (signer *RSASigner) Verifier() *RSAVerifier {
	return &RSAVerifier{key: &signer.key.PublicKey}
}

// RSAVerifier verifies RSA-PSS signatures produced by [RSASigner].
type RSAVerifier struct {
	key *rsa.PublicKey
}

// NewRSAVerifier wraps an RSA public key.
func NewRSAVerifier(key *rsa.PublicKey) (*RSAVerifier, error) {
	if bits := key.N.BitLen(); bits < MinRSABits {
		return nil, fmt.Errorf("%w: RSA key is %d bits, minimum is %d", ErrUnsupportedKey, bits, MinRSABits)
	}
	return &RSAVerifier{key: key}, nil
}

// Verify accepts any salt length on verification, so signatures made
// with an explicit maximum salt by other tools also verify.
func (verifier *RSAVerifier) Verify(data, signature []byte) bool {
	if len(signature) != verifier.key.Size() {
		return false
	}
	digest := sha256.Sum256(data)
	err := rsa.VerifyPSS(verifier.key, crypto.SHA256, digest[:], signature, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
	return err == nil
}

// Scheme returns SchemeRSAPSS.
func (verifier *RSAVerifier) Scheme() Scheme { return SchemeRSAPSS }
