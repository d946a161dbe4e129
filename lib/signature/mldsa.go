// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// MLDSASigner signs with ML-DSA-65.
type MLDSASigner struct {
	key *mldsa65.PrivateKey
}

// NewMLDSASigner wraps an ML-DSA-65 private key.
func NewMLDSASigner(key *mldsa65.PrivateKey) *MLDSASigner {
	return &MLDSASigner{key: key}
}

// Sign returns a hedged ML-DSA-65 signature over data with an empty
// context string.
func (signer *MLDSASigner) Sign(data []byte) ([]byte, error) {
	signature := make([]byte, mldsa65.SignatureSize)
	if err := mldsa65.SignTo(signer.key, data, nil, true, signature); err != nil {
		return nil, fmt.Errorf("signing with ML-DSA-65: %w", err)
	}
	return signature, nil
}

// Scheme returns SchemeMLDSA65.
func (signer *MLDSASigner) Scheme() Scheme { return SchemeMLDSA65 }

// Verifier returns the verifier for the signer's public half.
func (signer *MLDSASigner) Verifier() *MLDSAVerifier {
	return &MLDSAVerifier{key: signer.key.Public().(*mldsa65.PublicKey)}
}

// MLDSAVerifier verifies ML-DSA-65 signatures.
type MLDSAVerifier struct {
	key *mldsa65.PublicKey
}

// NewMLDSAVerifier wraps an ML-DSA-65 public key.
func NewMLDSAVerifier(key *mldsa65.PublicKey) *MLDSAVerifier {
	return &MLDSAVerifier{key: key}
}

func (verifier *MLDSAVerifier) Verify(data, signature []byte) bool {
	if len(signature) != mldsa65.SignatureSize {
		return false
	}
	return mldsa65.Verify(verifier.key, data, nil, signature)
}

// Scheme returns SchemeMLDSA65.
func (verifier *MLDSAVerifier) Scheme() Scheme { return SchemeMLDSA65 }
