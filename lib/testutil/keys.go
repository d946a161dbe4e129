// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// RSAKeyBits is the modulus size of cached RSA test keys.
const RSAKeyBits = 2048

var (
	keyMutex  sync.Mutex
	rsaKeys   = map[int]*rsa.PrivateKey{}
	mldsaKeys = map[int]*mldsa65.PrivateKey{}
)

// RSAPrivateKey returns the cached RSA key for slot, generating it on
// first use. The same slot always yields the same key within a test
// binary; different slots yield independent keys.
func RSAPrivateKey(t testing.TB, slot int) *rsa.PrivateKey {
	t.Helper()
	keyMutex.Lock()
	defer keyMutex.Unlock()
	if key, ok := rsaKeys[slot]; ok {
		return key
	}
	key, err := rsa.GenerateKey(rand.Reader, RSAKeyBits)
	if err != nil {
		t.Fatalf("generating RSA test key: %v", err)
	}
	rsaKeys[slot] = key
	return key
}

// MLDSAPrivateKey returns the cached ML-DSA-65 key for slot.
func MLDSAPrivateKey(t testing.TB, slot int) *mldsa65.PrivateKey {
	t.Helper()
	keyMutex.Lock()
	defer keyMutex.Unlock()
	if key, ok := mldsaKeys[slot]; ok {
		return key
	}
	_, key, err := mldsa65.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating ML-DSA-65 test key: %v", err)
	}
	mldsaKeys[slot] = key
	return key
}
