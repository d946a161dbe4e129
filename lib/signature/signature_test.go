// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package signature

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/huffseal/lib/secret"
	"github.com/bureau-foundation/huffseal/lib/testutil"
)

func rsaSigner(t *testing.T, slot int) *RSASigner {
	t.Helper()
	signer, err := NewRSASigner(testutil.RSAPrivateKey(t, slot))
	if err != nil {
		t.Fatalf("NewRSASigner: %v", err)
	}
	return signer
}

func TestSchemeNames(t *testing.T) {
	tests := []struct {
		name string
		want Scheme
	}{
		{"", SchemeRSAPSS},
		{"rsa-pss", SchemeRSAPSS},
		{"ml-dsa-65", SchemeMLDSA65},
	}
	for _, test := range tests {
		got, err := ParseScheme(test.name)
		if err != nil {
			t.Fatalf("ParseScheme(%q): %v", test.name, err)
		}
		if got != test.want {
			t.Errorf("ParseScheme(%q) = %v, want %v", test.name, got, test.want)
		}
		if test.name != "" && got.String() != test.name {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), test.name)
		}
	}
	if _, err := ParseScheme("ed25519"); err == nil {
		t.Error("ParseScheme(ed25519) should fail")
	}
	if got := Scheme(9).String(); got != "unknown(9)" {
		t.Errorf("Scheme(9).String() = %q", got)
	}
}

func TestRSAPSSSignVerify(t *testing.T) {
	signer := rsaSigner(t, 0)
	verifier := signer.Verifier()
	data := []byte("compressed payload bytes")

	first, err := signer.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	second, err := signer.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Error("two RSA-PSS signatures over the same data are identical; salt is not randomized")
	}
	for index, signature := range [][]byte{first, second} {
		if !verifier.Verify(data, signature) {
			t.Errorf("signature %d does not verify", index)
		}
	}
	if signer.Scheme() != SchemeRSAPSS || verifier.Scheme() != SchemeRSAPSS {
		t.Error("RSA signer/verifier report wrong scheme")
	}
}

func TestRSAPSSRejects(t *testing.T) {
	signer := rsaSigner(t, 0)
	data := []byte("compressed payload bytes")
	signature, err := signer.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	flipped := bytes.Clone(signature)
	flipped[len(flipped)/2] ^= 0x01

	otherVerifier := rsaSigner(t, 1).Verifier()

	tests := []struct {
		name      string
		verifier  Verifier
		data      []byte
		signature []byte
	}{
		{"altered data", signer.Verifier(), []byte("compressed payload bytez"), signature},
		{"altered signature", signer.Verifier(), data, flipped},
		{"wrong key", otherVerifier, data, signature},
		{"empty signature", signer.Verifier(), data, nil},
		{"truncated signature", signer.Verifier(), data, signature[:10]},
		{"oversize signature", signer.Verifier(), data, append(bytes.Clone(signature), 0)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.verifier.Verify(test.data, test.signature) {
				t.Error("Verify returned true")
			}
		})
	}
}

func TestMLDSASignVerify(t *testing.T) {
	signer := NewMLDSASigner(testutil.MLDSAPrivateKey(t, 0))
	verifier := signer.Verifier()
	data := []byte("compressed payload bytes")

	signature, err := signer.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !verifier.Verify(data, signature) {
		t.Fatal("ML-DSA-65 signature does not verify")
	}
	if verifier.Verify([]byte("other"), signature) {
		t.Error("ML-DSA-65 signature verifies over different data")
	}
	if verifier.Verify(data, signature[:len(signature)-1]) {
		t.Error("truncated ML-DSA-65 signature verifies")
	}
	other := NewMLDSASigner(testutil.MLDSAPrivateKey(t, 1)).Verifier()
	if other.Verify(data, signature) {
		t.Error("ML-DSA-65 signature verifies under an unrelated key")
	}
}

func TestCrossSchemeSignatureRejected(t *testing.T) {
	data := []byte("payload")
	rsaSignature, err := rsaSigner(t, 0).Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	mldsaVerifier := NewMLDSASigner(testutil.MLDSAPrivateKey(t, 0)).Verifier()
	if mldsaVerifier.Verify(data, rsaSignature) {
		t.Error("ML-DSA-65 verifier accepted an RSA-PSS signature")
	}
}

func TestParseRSAEncodings(t *testing.T) {
	key := testutil.RSAPrivateKey(t, 0)
	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("MarshalPKCS8PrivateKey: %v", err)
	}
	spki, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}

	privateEncodings := map[string][]byte{
		"pkcs8": pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}),
		"pkcs1": pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	}
	publicEncodings := map[string][]byte{
		"spki":  pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: spki}),
		"pkcs1": pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey)}),
	}

	data := []byte("interoperable")
	for privateName, privatePEM := range privateEncodings {
		signer, err := ParsePrivateKey(privatePEM)
		if err != nil {
			t.Fatalf("ParsePrivateKey(%s): %v", privateName, err)
		}
		signature, err := signer.Sign(data)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		for publicName, publicPEM := range publicEncodings {
			verifier, err := ParsePublicKey(publicPEM)
			if err != nil {
				t.Fatalf("ParsePublicKey(%s): %v", publicName, err)
			}
			if !verifier.Verify(data, signature) {
				t.Errorf("%s signature does not verify under %s public key", privateName, publicName)
			}
		}
	}
}

func TestParseRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name  string
		parse func([]byte) error
		data  []byte
	}{
		{"private not pem", func(data []byte) error { _, err := ParsePrivateKey(data); return err }, []byte("not a key")},
		{"public not pem", func(data []byte) error { _, err := ParsePublicKey(data); return err }, []byte("not a key")},
		{"public block as private", func(data []byte) error { _, err := ParsePrivateKey(data); return err },
			pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: []byte{1}})},
		{"private block as public", func(data []byte) error { _, err := ParsePublicKey(data); return err },
			pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1}})},
		{"certificate", func(data []byte) error { _, err := ParsePublicKey(data); return err },
			pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{1}})},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.parse(test.data)
			if !errors.Is(err, ErrUnsupportedKey) {
				t.Errorf("error = %v, want ErrUnsupportedKey", err)
			}
		})
	}
}

func TestGenerateWriteLoad(t *testing.T) {
	for _, scheme := range []Scheme{SchemeRSAPSS, SchemeMLDSA65} {
		t.Run(scheme.String(), func(t *testing.T) {
			pair, err := GenerateKeyPair(scheme, 0)
			if err != nil {
				t.Fatalf("GenerateKeyPair: %v", err)
			}
			defer pair.Close()

			dir := t.TempDir()
			if err := WriteKeyPair(dir, pair, nil); err != nil {
				t.Fatalf("WriteKeyPair: %v", err)
			}
			assertMode(t, filepath.Join(dir, PrivateKeyFile), 0600)
			assertMode(t, filepath.Join(dir, PublicKeyFile), 0644)

			signer, err := LoadSigner(filepath.Join(dir, PrivateKeyFile), nil)
			if err != nil {
				t.Fatalf("LoadSigner: %v", err)
			}
			verifier, err := LoadVerifier(filepath.Join(dir, PublicKeyFile))
			if err != nil {
				t.Fatalf("LoadVerifier: %v", err)
			}
			if signer.Scheme() != scheme || verifier.Scheme() != scheme {
				t.Fatalf("loaded schemes %v/%v, want %v", signer.Scheme(), verifier.Scheme(), scheme)
			}
			signature, err := signer.Sign([]byte("data"))
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			if !verifier.Verify([]byte("data"), signature) {
				t.Error("signature from loaded key does not verify")
			}

			if err := WriteKeyPair(dir, pair, nil); err == nil {
				t.Error("WriteKeyPair overwrote existing key files")
			}
		})
	}
}

func TestWriteKeyPairRemovesPrivateKeyOnPublicFailure(t *testing.T) {
	pair, err := GenerateKeyPair(SchemeMLDSA65, 0)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer pair.Close()

	dir := t.TempDir()
	publicPath := filepath.Join(dir, PublicKeyFile)
	if err := os.WriteFile(publicPath, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteKeyPair(dir, pair, nil); err == nil {
		t.Fatal("WriteKeyPair succeeded over an existing public key")
	}
	if _, err := os.Stat(filepath.Join(dir, PrivateKeyFile)); !os.IsNotExist(err) {
		t.Errorf("private key left behind after failed write (stat error %v)", err)
	}
	if data, err := os.ReadFile(publicPath); err != nil || string(data) != "stale" {
		t.Errorf("existing public key changed: %q, %v", data, err)
	}

	if err := os.Remove(publicPath); err != nil {
		t.Fatal(err)
	}
	if err := WriteKeyPair(dir, pair, nil); err != nil {
		t.Errorf("WriteKeyPair after clearing the conflict: %v", err)
	}
}

func TestSealedPrivateKey(t *testing.T) {
	pair, err := GenerateKeyPair(SchemeMLDSA65, 0)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	defer pair.Close()

	passphrase, err := secret.NewFromBytes([]byte("correct horse"))
	if err != nil {
		t.Fatalf("secret.NewFromBytes: %v", err)
	}
	defer passphrase.Close()

	dir := t.TempDir()
	if err := writeKeyPair(dir, pair, passphrase, 10); err != nil {
		t.Fatalf("writeKeyPair: %v", err)
	}
	privatePath := filepath.Join(dir, PrivateKeyFile)

	if _, err := LoadSigner(privatePath, nil); !errors.Is(err, ErrPassphraseRequired) {
		t.Errorf("LoadSigner without passphrase: error = %v, want ErrPassphraseRequired", err)
	}

	wrong, err := secret.NewFromBytes([]byte("wrong horse"))
	if err != nil {
		t.Fatalf("secret.NewFromBytes: %v", err)
	}
	defer wrong.Close()
	if _, err := LoadSigner(privatePath, wrong); err == nil {
		t.Error("LoadSigner with wrong passphrase succeeded")
	}

	signer, err := LoadSigner(privatePath, passphrase)
	if err != nil {
		t.Fatalf("LoadSigner: %v", err)
	}
	if signer.Scheme() != SchemeMLDSA65 {
		t.Errorf("Scheme = %v, want ml-dsa-65", signer.Scheme())
	}
}

func TestGenerateRejectsSmallRSA(t *testing.T) {
	if _, err := GenerateKeyPair(SchemeRSAPSS, 1024); !errors.Is(err, ErrUnsupportedKey) {
		t.Errorf("GenerateKeyPair(1024) error = %v, want ErrUnsupportedKey", err)
	}
	if _, err := GenerateKeyPair(SchemeNone, 0); !errors.Is(err, ErrUnsupportedKey) {
		t.Errorf("GenerateKeyPair(none) error = %v, want ErrUnsupportedKey", err)
	}
}

func assertMode(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if got := info.Mode().Perm(); got != want {
		t.Errorf("%s mode = %o, want %o", filepath.Base(path), got, want)
	}
}
